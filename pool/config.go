package pool

import (
	"runtime"
	"time"
)

/*
Config sizes the pool and bounds how long a job may wait for a worker and
how long it may run once it has one.

RateLimit caps how many jobs per second are admitted, with Burst jobs
allowed through at once. Zero means no limit.
*/
type Config struct {
	SchedulingTimeout time.Duration
	JobTimeout        time.Duration
	MinWorkers        int
	MaxWorkers        int
	ScaleInterval     time.Duration
	RateLimit         float64
	Burst             int
}

func NewConfig() *Config {
	return &Config{
		SchedulingTimeout: 10 * time.Second,
		JobTimeout:        time.Minute,
		MinWorkers:        1,
		MaxWorkers:        runtime.NumCPU(),
		ScaleInterval:     100 * time.Millisecond,
	}
}

// normalize fills in anything left at its zero value.
func (c *Config) normalize() *Config {
	defaults := NewConfig()
	if c == nil {
		return defaults
	}

	out := *c
	if out.SchedulingTimeout <= 0 {
		out.SchedulingTimeout = defaults.SchedulingTimeout
	}
	if out.JobTimeout <= 0 {
		out.JobTimeout = defaults.JobTimeout
	}
	if out.MaxWorkers <= 0 {
		out.MaxWorkers = defaults.MaxWorkers
	}
	if out.MinWorkers <= 0 {
		out.MinWorkers = defaults.MinWorkers
	}
	if out.MinWorkers > out.MaxWorkers {
		out.MinWorkers = out.MaxWorkers
	}
	if out.ScaleInterval <= 0 {
		out.ScaleInterval = defaults.ScaleInterval
	}
	if out.RateLimit > 0 && out.Burst < 1 {
		out.Burst = 1
	}
	return &out
}
