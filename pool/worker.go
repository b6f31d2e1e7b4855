package pool

import (
	"fmt"
	"time"

	"github.com/theapemachine/errnie"
)

// Worker runs one job at a time, offering itself to the pool between jobs.
type Worker struct {
	pool *Q
	jobs chan Job
	quit chan struct{}
}

func newWorker(q *Q) *Worker {
	return &Worker{
		pool: q,
		jobs: make(chan Job),
		quit: make(chan struct{}),
	}
}

/*
run registers the worker with the pool, waits for the job it is handed,
and stores the outcome. A worker told to quit leaves only while it is
idle, never after it has been handed a job.
*/
func (w *Worker) run() {
	for {
		select {
		case <-w.quit:
			return
		case <-w.pool.ctx.Done():
			return
		case w.pool.workers <- w.jobs:
		}

		select {
		case <-w.pool.ctx.Done():
			return
		case job := <-w.jobs:
			result, err := w.processJob(job)
			w.pool.space.Store(job.ID, result, err, job.TTL)
		}
	}
}

func (w *Worker) processJob(job Job) (any, error) {
	result, err := w.executeWithRetries(job)
	w.pool.metrics.recordJobExecution(job.StartTime, err == nil)

	if cb := w.pool.breaker(job); cb != nil {
		if err != nil {
			cb.RecordFailure()
		} else {
			cb.RecordSuccess()
		}
	}
	return result, err
}

func (w *Worker) executeWithRetries(job Job) (any, error) {
	policy := job.RetryPolicy
	if policy == nil {
		policy = defaultRetryPolicy()
	}

	attempts := 0
	for job.Attempt = 0; job.Attempt < policy.MaxAttempts; job.Attempt++ {
		if job.Attempt > 0 {
			delay := policy.Strategy.NextDelay(job.Attempt)
			errnie.Info("job %s retrying attempt %d after %v", job.ID, job.Attempt+1, delay)

			select {
			case <-time.After(delay):
			case <-w.pool.ctx.Done():
				return nil, ErrClosed
			}
		}

		attempts++
		result, err := w.runWithTimeout(job)
		if err == nil {
			return result, nil
		}

		job.LastError = err
		if !policy.retryable(err) {
			break
		}
	}

	return nil, &JobError{ID: job.ID, Attempts: attempts, Err: job.LastError}
}

type outcome struct {
	value any
	err   error
}

func (w *Worker) runWithTimeout(job Job) (any, error) {
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("job %s panicked: %v", job.ID, r)}
			}
		}()
		value, err := job.Fn()
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(w.pool.getJobTimeout())
	defer timer.Stop()

	select {
	case o := <-done:
		return o.value, o.err
	case <-timer.C:
		return nil, ErrJobTimeout
	case <-w.pool.ctx.Done():
		return nil, ErrClosed
	}
}
