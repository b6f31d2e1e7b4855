package pool

import (
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// BreakerState is where a CircuitBreaker is in its open/close cycle.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

/*
CircuitBreaker stops a family of jobs from being scheduled after
maxFailures consecutive failures. Once resetTimeout has passed it lets
through up to halfOpenMax probes at a time. Each admitted probe holds a
slot until its outcome is recorded; halfOpenMax successes close the breaker
and any failure reopens it.
*/
type CircuitBreaker struct {
	mu               sync.Mutex
	name             string
	maxFailures      int
	resetTimeout     time.Duration
	halfOpenMax      int
	failureCount     int
	state            BreakerState
	openTime         time.Time
	halfOpenAttempts int
	halfOpenInFlight int
	now              func() time.Time
}

// BreakerConfig is how a job asks for a breaker; jobs naming the same circuit share one.
type BreakerConfig struct {
	MaxFailures  int
	ResetTimeout time.Duration
	HalfOpenMax  int
}

func NewCircuitBreaker(name string, config BreakerConfig) *CircuitBreaker {
	if config.MaxFailures < 1 {
		config.MaxFailures = 1
	}
	if config.HalfOpenMax < 1 {
		config.HalfOpenMax = 1
	}
	return &CircuitBreaker{
		name:         name,
		maxFailures:  config.MaxFailures,
		resetTimeout: config.ResetTimeout,
		halfOpenMax:  config.HalfOpenMax,
		state:        BreakerClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Allow reports whether another job may run, moving an expired open breaker to half-open.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		return true
	case BreakerOpen:
		if cb.now().Sub(cb.openTime) <= cb.resetTimeout {
			return false
		}
		cb.state = BreakerHalfOpen
		cb.halfOpenAttempts = 0
		cb.halfOpenInFlight = 0
		return cb.reserveProbe()
	case BreakerHalfOpen:
		return cb.reserveProbe()
	default:
		return false
	}
}

// reserveProbe takes a half-open slot if one is free.
func (cb *CircuitBreaker) reserveProbe() bool {
	if cb.halfOpenAttempts+cb.halfOpenInFlight >= cb.halfOpenMax {
		return false
	}
	cb.halfOpenInFlight++
	return true
}

func (cb *CircuitBreaker) releaseProbe() {
	if cb.halfOpenInFlight > 0 {
		cb.halfOpenInFlight--
	}
}

// Abandon gives back the slot of an admitted job that never ran.
func (cb *CircuitBreaker) Abandon() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == BreakerHalfOpen {
		cb.releaseProbe()
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	switch {
	case cb.state == BreakerHalfOpen:
		cb.trip()
		errnie.Info("circuit %s reopened from half-open", cb.name)
	case cb.state == BreakerClosed && cb.failureCount >= cb.maxFailures:
		cb.trip()
		errnie.Info("circuit %s opened after %d failures", cb.name, cb.failureCount)
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerHalfOpen:
		cb.releaseProbe()
		cb.halfOpenAttempts++
		if cb.halfOpenAttempts >= cb.halfOpenMax {
			cb.state = BreakerClosed
			cb.failureCount = 0
			cb.halfOpenAttempts = 0
			cb.halfOpenInFlight = 0
			errnie.Info("circuit %s closed", cb.name)
		}
	case BreakerClosed:
		cb.failureCount = 0
	}
}

func (cb *CircuitBreaker) trip() {
	cb.state = BreakerOpen
	cb.openTime = cb.now()
	cb.halfOpenAttempts = 0
	cb.halfOpenInFlight = 0
}

// breaker returns the shared breaker for the job's circuit, creating it on first use.
func (q *Q) breaker(job Job) *CircuitBreaker {
	if job.CircuitID == "" || job.CircuitConfig == nil {
		return nil
	}

	q.breakersMu.Lock()
	defer q.breakersMu.Unlock()

	if q.breakers == nil {
		q.breakers = make(map[string]*CircuitBreaker)
	}

	cb, ok := q.breakers[job.CircuitID]
	if !ok {
		cb = NewCircuitBreaker(job.CircuitID, *job.CircuitConfig)
		q.breakers[job.CircuitID] = cb
	}
	return cb
}
