package pool

import (
	"math"
	"time"
)

// RetryPolicy defines retry behavior
type RetryPolicy struct {
	MaxAttempts int
	Strategy    RetryStrategy
	Filter      func(error) bool
}

// RetryStrategy gives the delay before a given attempt, counting from 1.
type RetryStrategy interface {
	NextDelay(attempt int) time.Duration
}

// ExponentialBackoff doubles the delay after every failed attempt.
type ExponentialBackoff struct {
	Initial time.Duration
}

func (eb *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	return eb.Initial * time.Duration(math.Pow(2, float64(attempt-1)))
}

// defaultRetryPolicy runs a job once. Circuit errors are deterministic.
func defaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: 1,
		Strategy:    &ExponentialBackoff{Initial: 10 * time.Millisecond},
	}
}

func (p *RetryPolicy) retryable(err error) bool {
	return p.Filter == nil || p.Filter(err)
}
