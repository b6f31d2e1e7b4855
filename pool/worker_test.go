package pool

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func newTestPool(config *Config) (*Q, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	return &Q{
		ctx:     ctx,
		cancel:  cancel,
		workers: make(chan chan Job, 1),
		space:   NewSpace(),
		metrics: NewMetrics(),
		config:  config,
	}, cancel
}

func TestWorker(t *testing.T) {
	Convey("Given a worker", t, func() {
		q, cancel := newTestPool(&Config{JobTimeout: 100 * time.Millisecond})
		worker := &Worker{
			pool: q,
			jobs: make(chan Job, 1),
		}

		Reset(func() {
			cancel()
			q.space.Close()
		})

		Convey("It should process a job successfully", func() {
			job := Job{
				ID:        "job_success",
				Fn:        func() (any, error) { return "result", nil },
				StartTime: time.Now(),
				TTL:       10 * time.Second,
			}

			worker.jobs <- job
			go worker.run()

			select {
			case <-time.After(2 * time.Second):
				t.Fatal(timeoutMsg)
			case value := <-q.space.Await(job.ID):
				So(value.Error, ShouldBeNil)
				So(value.Value, ShouldEqual, "result")
			}

			stats := q.metrics.Snapshot()
			So(stats.JobCount, ShouldEqual, 1)
			So(stats.JobSuccessRate, ShouldEqual, 1.0)
		})

		Convey("It should handle job timeout", func() {
			job := Job{
				ID: "job_timeout",
				Fn: func() (any, error) {
					time.Sleep(time.Second)
					return nil, nil
				},
				StartTime: time.Now(),
			}

			worker.jobs <- job
			go worker.run()

			select {
			case <-time.After(2 * time.Second):
				t.Fatal(timeoutMsg)
			case value := <-q.space.Await(job.ID):
				So(errors.Is(value.Error, ErrJobTimeout), ShouldBeTrue)
				So(value.Error.Error(), ShouldContainSubstring, "timed out")
			}
		})

		Convey("It should turn a panic into an error", func() {
			job := Job{
				ID:        "job_panic",
				Fn:        func() (any, error) { panic("boom") },
				StartTime: time.Now(),
			}

			worker.jobs <- job
			go worker.run()

			select {
			case <-time.After(2 * time.Second):
				t.Fatal(timeoutMsg)
			case value := <-q.space.Await(job.ID):
				So(value.Error, ShouldNotBeNil)
				So(value.Error.Error(), ShouldContainSubstring, "panicked: boom")
			}
		})

		Convey("It should stop retrying errors the filter rejects", func() {
			permanent := errors.New("permanent")
			attempts := 0
			job := Job{
				ID: "job_filtered",
				Fn: func() (any, error) {
					attempts++
					return nil, permanent
				},
				RetryPolicy: &RetryPolicy{
					MaxAttempts: 5,
					Strategy:    &ExponentialBackoff{Initial: time.Millisecond},
					Filter:      func(err error) bool { return !errors.Is(err, permanent) },
				},
				StartTime: time.Now(),
			}

			worker.jobs <- job
			go worker.run()

			select {
			case <-time.After(2 * time.Second):
				t.Fatal(timeoutMsg)
			case value := <-q.space.Await(job.ID):
				var jobErr *JobError
				So(errors.As(value.Error, &jobErr), ShouldBeTrue)
				So(jobErr.Attempts, ShouldEqual, 1)
				So(errors.Is(value.Error, permanent), ShouldBeTrue)
				So(attempts, ShouldEqual, 1)
			}
		})
	})
}
