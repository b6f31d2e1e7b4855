/*
Package pool runs independent simulation trials on a bounded set of worker
goroutines. Results are delivered through a Space keyed by job ID, so a
caller can schedule now and await later.
*/
package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Q is a worker pool with a result space in front of it.
type Q struct {
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	workers    chan chan Job
	jobs       chan Job
	space      *Space
	scaler     *Scaler
	metrics    *Metrics
	config     *Config
	workerMu   sync.Mutex
	workerList []*Worker
	batches    atomic.Uint64
	closeOnce  sync.Once
	breakersMu sync.Mutex
	breakers   map[string]*CircuitBreaker
	limiter    *rate.Limiter
}

// NewQ starts a pool. A nil config uses NewConfig.
func NewQ(ctx context.Context, config *Config) *Q {
	config = config.normalize()
	ctx, cancel := context.WithCancel(ctx)

	q := &Q{
		ctx:        ctx,
		cancel:     cancel,
		workers:    make(chan chan Job),
		jobs:       make(chan Job, config.MaxWorkers*10),
		space:      NewSpace(),
		metrics:    NewMetrics(),
		config:     config,
		workerList: make([]*Worker, 0, config.MaxWorkers),
		breakers:   make(map[string]*CircuitBreaker),
	}

	if config.RateLimit > 0 {
		q.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.Burst)
	}

	for range config.MinWorkers {
		q.startWorker()
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.manage()
	}()

	q.scaler = NewScaler(q, config.MinWorkers, config.MaxWorkers, nil)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.scaler.run(config.ScaleInterval)
	}()

	errnie.Info("pool started with %d to %d workers", config.MinWorkers, config.MaxWorkers)
	return q
}

// manage hands every queued job to the next idle worker.
func (q *Q) manage() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			select {
			case <-q.ctx.Done():
				q.space.Store(job.ID, nil, ErrClosed, job.TTL)
				return
			case workerChan := <-q.workers:
				select {
				case workerChan <- job:
				case <-q.ctx.Done():
					q.space.Store(job.ID, nil, ErrClosed, job.TTL)
					return
				}
			case <-time.After(q.getSchedulingTimeout()):
				errnie.Info("no available workers for job %s", job.ID)
				q.metrics.recordSchedulingFailure()
				q.space.Store(job.ID, nil, ErrNoWorkers, job.TTL)
			}
		}
	}
}

/*
Schedule queues fn under id and returns the channel its Result arrives on.
A job that cannot be queued within the scheduling timeout fails at once.
*/
func (q *Q) Schedule(id string, fn func() (any, error), opts ...JobOption) chan Result {
	if q.ctx.Err() != nil {
		return failed(ErrClosed)
	}

	job := Job{
		ID:          id,
		Fn:          fn,
		RetryPolicy: defaultRetryPolicy(),
		StartTime:   time.Now(),
	}

	for _, opt := range opts {
		opt(&job)
	}

	cb := q.breaker(job)
	if cb != nil && !cb.Allow() {
		return failed(fmt.Errorf("job %s on circuit %s: %w", id, job.CircuitID, ErrCircuitOpen))
	}

	// A job that never reaches a worker gives its breaker slot back.
	abandon := func(err error) chan Result {
		if cb != nil {
			cb.Abandon()
		}
		return failed(err)
	}

	if err := q.admit(); err != nil {
		return abandon(fmt.Errorf("job %s: %w", id, err))
	}

	timer := time.NewTimer(q.getSchedulingTimeout())
	defer timer.Stop()

	select {
	case q.jobs <- job:
		return q.space.Await(id)
	case <-q.ctx.Done():
		return abandon(ErrClosed)
	case <-timer.C:
		q.metrics.recordSchedulingFailure()
		return abandon(fmt.Errorf("job %s scheduling timeout: %w", id, ErrNoWorkers))
	}
}

// admit waits for the rate limiter, giving up once the scheduling timeout would pass.
func (q *Q) admit() error {
	if q.limiter == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(q.ctx, q.getSchedulingTimeout())
	defer cancel()

	if err := q.limiter.Wait(ctx); err != nil {
		q.metrics.recordSchedulingFailure()
		if q.ctx.Err() != nil {
			return ErrClosed
		}
		return ErrRateLimited
	}
	return nil
}

func failed(err error) chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Error: err, CreatedAt: time.Now()}
	close(ch)
	return ch
}

/*
Map runs fn(0) through fn(n-1) on the pool and returns their values in
order. The first error cancels the rest of the batch and is returned;
trials not yet started are skipped.
*/
func (q *Q) Map(ctx context.Context, n int, fn func(i int) (any, error)) ([]any, error) {
	batch := q.batches.Add(1)
	results := make([]any, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(q.config.MaxWorkers)

	for i := range n {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			id := fmt.Sprintf("batch-%d-%d", batch, i)
			ch := q.Schedule(id, func() (any, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return fn(i)
			}, WithTTL(q.getJobTimeout()))
			defer q.space.Release(id)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case result := <-ch:
				if result.Error != nil {
					return result.Error
				}
				results[i] = result.Value
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Metrics returns a snapshot of the pool counters.
func (q *Q) Metrics() Stats {
	return q.metrics.Snapshot()
}

func (q *Q) startWorker() {
	worker := newWorker(q)

	q.workerMu.Lock()
	q.workerList = append(q.workerList, worker)
	count := len(q.workerList)
	q.workerMu.Unlock()

	q.metrics.mu.Lock()
	q.metrics.WorkerCount = count
	q.metrics.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		worker.run()
	}()
}

// stopWorkers asks up to count workers to leave and returns how many were asked.
func (q *Q) stopWorkers(count int) int {
	q.workerMu.Lock()
	removed := 0
	for ; removed < count && len(q.workerList) > 0; removed++ {
		last := len(q.workerList) - 1
		close(q.workerList[last].quit)
		q.workerList = q.workerList[:last]
	}
	remaining := len(q.workerList)
	q.workerMu.Unlock()

	q.metrics.mu.Lock()
	q.metrics.WorkerCount = remaining
	q.metrics.mu.Unlock()

	return removed
}

func (q *Q) workerCount() int {
	q.workerMu.Lock()
	defer q.workerMu.Unlock()
	return len(q.workerList)
}

func (q *Q) getSchedulingTimeout() time.Duration {
	if q.config != nil && q.config.SchedulingTimeout > 0 {
		return q.config.SchedulingTimeout
	}
	return 5 * time.Second
}

func (q *Q) getJobTimeout() time.Duration {
	if q.config != nil && q.config.JobTimeout > 0 {
		return q.config.JobTimeout
	}
	return 30 * time.Second
}

/*
Close stops every goroutine the pool started. Jobs still queued or running
resolve with ErrClosed.
*/
func (q *Q) Close() {
	if q == nil {
		return
	}

	q.closeOnce.Do(func() {
		q.cancel()
		q.wg.Wait()

		for drained := false; !drained; {
			select {
			case job := <-q.jobs:
				q.space.Store(job.ID, nil, ErrClosed, job.TTL)
			default:
				drained = true
			}
		}

		q.space.Close()
		errnie.Info("pool closed: %v", q.metrics.ExportMetrics())
	})
}
