package pool

import (
	"sync"
	"time"
)

// Result wraps a job outcome with its metadata.
type Result struct {
	Value     any
	Error     error
	CreatedAt time.Time
	TTL       time.Duration
}

/*
Space holds job results by ID and hands them to anyone awaiting them. A
result stored before anyone awaits it is kept until its TTL runs out, or
until it is released.
*/
type Space struct {
	mu      sync.Mutex
	values  map[string]Result
	waiting map[string][]chan Result
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func NewSpace() *Space {
	return newSpace(time.Minute)
}

func newSpace(sweep time.Duration) *Space {
	s := &Space{
		values:  make(map[string]Result),
		waiting: make(map[string][]chan Result),
		done:    make(chan struct{}),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.cleanup(sweep)
	}()

	return s
}

// Store records a result and wakes every waiter for id.
func (s *Space) Store(id string, value any, err error, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := Result{
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}
	s.values[id] = result

	for _, ch := range s.waiting[id] {
		ch <- result
		close(ch)
	}
	delete(s.waiting, id)
}

// Await returns a channel that receives the result for id exactly once.
func (s *Space) Await(id string) chan Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Buffered so Store never blocks on a waiter that went away.
	ch := make(chan Result, 1)

	if result, ok := s.values[id]; ok {
		ch <- result
		close(ch)
		return ch
	}

	s.waiting[id] = append(s.waiting[id], ch)
	return ch
}

// Release drops a stored result that nobody will ask for again.
func (s *Space) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, id)
}

// Len is the number of results currently held.
func (s *Space) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

func (s *Space) cleanup(sweep time.Duration) {
	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.cleanupExpiredValues(time.Now())
			s.mu.Unlock()
		}
	}
}

func (s *Space) cleanupExpiredValues(now time.Time) {
	for id, result := range s.values {
		if result.TTL > 0 && now.Sub(result.CreatedAt) > result.TTL {
			delete(s.values, id)
		}
	}
}

/*
Close stops the sweeper and fails every outstanding Await with ErrClosed.
It is safe to call more than once.
*/
func (s *Space) Close() {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()

		s.mu.Lock()
		defer s.mu.Unlock()

		for id, channels := range s.waiting {
			for _, ch := range channels {
				ch <- Result{Error: ErrClosed, CreatedAt: time.Now()}
				close(ch)
			}
			delete(s.waiting, id)
		}
	})
}
