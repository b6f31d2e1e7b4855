package pool

import "time"

// Job is one unit of work, usually a single trial of a quantum circuit.
type Job struct {
	ID          string
	Fn          func() (any, error)
	RetryPolicy *RetryPolicy
	TTL         time.Duration
	Attempt     int
	LastError   error
	StartTime   time.Time

	CircuitID     string
	CircuitConfig *BreakerConfig
}

// JobOption configures a Job at scheduling time.
type JobOption func(*Job)

// WithTTL keeps the job result in the space for ttl once stored.
func WithTTL(ttl time.Duration) JobOption {
	return func(j *Job) {
		j.TTL = ttl
	}
}

// WithRetry runs the job up to attempts times, waiting per strategy between runs.
func WithRetry(attempts int, strategy RetryStrategy) JobOption {
	return func(j *Job) {
		j.RetryPolicy = &RetryPolicy{
			MaxAttempts: attempts,
			Strategy:    strategy,
		}
	}
}

// WithRetryFilter limits retries to errors for which filter returns true.
func WithRetryFilter(filter func(error) bool) JobOption {
	return func(j *Job) {
		if j.RetryPolicy == nil {
			j.RetryPolicy = defaultRetryPolicy()
		}
		j.RetryPolicy.Filter = filter
	}
}

/*
WithCircuitBreaker puts the job behind the breaker named id. Jobs sharing
an id share the breaker; the first one to schedule decides its settings.
*/
func WithCircuitBreaker(id string, maxFailures int, resetTimeout time.Duration) JobOption {
	return func(j *Job) {
		j.CircuitID = id
		j.CircuitConfig = &BreakerConfig{
			MaxFailures:  maxFailures,
			ResetTimeout: resetTimeout,
			HalfOpenMax:  1,
		}
	}
}
