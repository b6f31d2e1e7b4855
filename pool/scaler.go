package pool

import (
	"math"
	"time"

	"github.com/theapemachine/errnie"
)

// ScalerConfig sets the queue load, in jobs per worker, the scaler aims for.
type ScalerConfig struct {
	TargetLoad         float64
	ScaleUpThreshold   float64
	ScaleDownThreshold float64
	Cooldown           time.Duration
}

func defaultScalerConfig() *ScalerConfig {
	return &ScalerConfig{
		TargetLoad:         2.0,
		ScaleUpThreshold:   4.0,
		ScaleDownThreshold: 1.0,
		Cooldown:           500 * time.Millisecond,
	}
}

/*
Scaler grows the pool toward maxWorkers while jobs queue up and shrinks it
back toward minWorkers when the queue drains.
*/
type Scaler struct {
	pool               *Q
	minWorkers         int
	maxWorkers         int
	targetLoad         float64
	scaleUpThreshold   float64
	scaleDownThreshold float64
	cooldown           time.Duration
}

func NewScaler(q *Q, minWorkers, maxWorkers int, config *ScalerConfig) *Scaler {
	if config == nil {
		config = defaultScalerConfig()
	}
	return &Scaler{
		pool:               q,
		minWorkers:         minWorkers,
		maxWorkers:         maxWorkers,
		targetLoad:         config.TargetLoad,
		scaleUpThreshold:   config.ScaleUpThreshold,
		scaleDownThreshold: config.ScaleDownThreshold,
		cooldown:           config.Cooldown,
	}
}

func (s *Scaler) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.pool.ctx.Done():
			return
		case <-ticker.C:
			s.evaluate()
		}
	}
}

func (s *Scaler) evaluate() {
	queued := len(s.pool.jobs)
	workers := s.pool.workerCount()

	s.pool.metrics.mu.Lock()
	s.pool.metrics.JobQueueSize = queued
	lastScale := s.pool.metrics.LastScale
	s.pool.metrics.mu.Unlock()

	if time.Since(lastScale) < s.cooldown || workers == 0 {
		return
	}

	load := float64(queued) / float64(workers)
	needed := int(math.Ceil(float64(queued) / s.targetLoad))

	switch {
	case load > s.scaleUpThreshold && workers < s.maxWorkers:
		s.scaleUp(max(min(needed-workers, s.maxWorkers-workers), 1))
	case load < s.scaleDownThreshold && workers > s.minWorkers:
		s.scaleDown(workers - max(needed, s.minWorkers))
	default:
		return
	}

	s.pool.metrics.mu.Lock()
	s.pool.metrics.LastScale = time.Now()
	s.pool.metrics.mu.Unlock()
}

func (s *Scaler) scaleUp(count int) {
	for range count {
		s.pool.startWorker()
	}
	errnie.Info("scaled up by %d, total workers: %d", count, s.pool.workerCount())
}

func (s *Scaler) scaleDown(count int) {
	removed := s.pool.stopWorkers(count)
	if removed > 0 {
		errnie.Info("scaled down by %d, total workers: %d", removed, s.pool.workerCount())
	}
}
