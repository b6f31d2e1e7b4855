package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is delivered to anything still waiting when the pool shuts down.
	ErrClosed = errors.New("pool closed")
	// ErrNoWorkers means no worker picked the job up in time.
	ErrNoWorkers = errors.New("no available workers")
	// ErrJobTimeout means the job ran longer than Config.JobTimeout.
	ErrJobTimeout = errors.New("job timed out")
	// ErrRateLimited means the job could not be admitted within the scheduling timeout.
	ErrRateLimited = errors.New("rate limited")
	// ErrCircuitOpen means the job's circuit breaker refused it.
	ErrCircuitOpen = errors.New("circuit breaker open")
)

/*
JobError carries the ID and attempt count of a job that failed every
attempt. It unwraps to the last error the job returned.
*/
type JobError struct {
	ID       string
	Attempts int
	Err      error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %s failed after %d attempts: %v", e.ID, e.Attempts, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }
