package pool

import (
	"slices"
	"sync"
	"time"
)

// latencyWindow is how many recent job durations feed the percentiles.
const latencyWindow = 1000

/*
Metrics tracks pool activity. Its fields are guarded by the mutex; read
them through Snapshot.
*/
type Metrics struct {
	mu                 sync.RWMutex
	WorkerCount        int
	JobQueueSize       int
	JobCount           int64
	FailureCount       int64
	SchedulingFailures int64
	TotalJobTime       time.Duration
	AverageJobLatency  time.Duration
	P95JobLatency      time.Duration
	P99JobLatency      time.Duration
	JobSuccessRate     float64
	LastScale          time.Time

	latencies []time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{
		latencies: make([]time.Duration, 0, latencyWindow),
	}
}

func (m *Metrics) recordJobExecution(startTime time.Time, success bool) {
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TotalJobTime += duration
	m.JobCount++
	if !success {
		m.FailureCount++
	}
	m.JobSuccessRate = float64(m.JobCount-m.FailureCount) / float64(m.JobCount)
	m.updateLatencyPercentiles(duration)
}

func (m *Metrics) recordSchedulingFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SchedulingFailures++
}

func (m *Metrics) updateLatencyPercentiles(duration time.Duration) {
	m.AverageJobLatency = m.TotalJobTime / time.Duration(m.JobCount)

	m.latencies = append(m.latencies, duration)
	if len(m.latencies) > latencyWindow {
		m.latencies = m.latencies[1:]
	}

	sorted := slices.Clone(m.latencies)
	slices.Sort(sorted)

	m.P95JobLatency = sorted[percentileIndex(len(sorted), 0.95)]
	m.P99JobLatency = sorted[percentileIndex(len(sorted), 0.99)]
}

func percentileIndex(n int, p float64) int {
	return min(int(float64(n)*p), n-1)
}

// Stats is a point in time copy of Metrics.
type Stats struct {
	WorkerCount        int
	JobQueueSize       int
	JobCount           int64
	FailureCount       int64
	SchedulingFailures int64
	TotalJobTime       time.Duration
	AverageJobLatency  time.Duration
	P95JobLatency      time.Duration
	P99JobLatency      time.Duration
	JobSuccessRate     float64
	LastScale          time.Time
}

func (m *Metrics) Snapshot() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		WorkerCount:        m.WorkerCount,
		JobQueueSize:       m.JobQueueSize,
		JobCount:           m.JobCount,
		FailureCount:       m.FailureCount,
		SchedulingFailures: m.SchedulingFailures,
		TotalJobTime:       m.TotalJobTime,
		AverageJobLatency:  m.AverageJobLatency,
		P95JobLatency:      m.P95JobLatency,
		P99JobLatency:      m.P99JobLatency,
		JobSuccessRate:     m.JobSuccessRate,
		LastScale:          m.LastScale,
	}
}

// ExportMetrics flattens the counters for logging.
func (m *Metrics) ExportMetrics() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]any{
		"worker_count":        m.WorkerCount,
		"queue_size":          m.JobQueueSize,
		"job_count":           m.JobCount,
		"failure_count":       m.FailureCount,
		"scheduling_failures": m.SchedulingFailures,
		"success_rate":        m.JobSuccessRate,
		"avg_latency":         m.AverageJobLatency.Milliseconds(),
		"p95_latency":         m.P95JobLatency.Milliseconds(),
		"p99_latency":         m.P99JobLatency.Milliseconds(),
	}
}
