package pool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPool(t *testing.T) {
	Convey("Given a new pool", t, func(c C) {
		q := NewQ(context.Background(), &Config{
			SchedulingTimeout: time.Second,
			JobTimeout:        time.Second,
			MinWorkers:        2,
			MaxWorkers:        4,
		})

		Reset(func() {
			q.Close()
		})

		Convey("When scheduling a simple job", func(c C) {
			value := <-q.Schedule("test-job", func() (any, error) {
				return "success", nil
			})

			c.So(value.Error, ShouldBeNil)
			c.So(value.Value, ShouldEqual, "success")
		})

		Convey("When scheduling a job with retries", func(c C) {
			var attempts atomic.Int32
			value := <-q.Schedule("retry-job", func() (any, error) {
				if attempts.Add(1) < 3 {
					return nil, errors.New("temporary error")
				}
				return "success after retry", nil
			}, WithRetry(3, &ExponentialBackoff{Initial: time.Millisecond}))

			c.So(value.Error, ShouldBeNil)
			c.So(value.Value, ShouldEqual, "success after retry")
			c.So(attempts.Load(), ShouldEqual, 3)
		})

		Convey("When a job keeps failing", func(c C) {
			failure := errors.New("failure")
			value := <-q.Schedule("failing-job", func() (any, error) {
				return nil, failure
			}, WithRetry(2, &ExponentialBackoff{Initial: time.Millisecond}))

			var jobErr *JobError
			c.So(errors.As(value.Error, &jobErr), ShouldBeTrue)
			c.So(jobErr.Attempts, ShouldEqual, 2)
			c.So(errors.Is(value.Error, failure), ShouldBeTrue)
			c.So(q.Metrics().FailureCount, ShouldEqual, 1)
		})

		Convey("When mapping over a batch", func(c C) {
			values, err := q.Map(context.Background(), 20, func(i int) (any, error) {
				return i * i, nil
			})

			c.So(err, ShouldBeNil)
			c.So(values, ShouldHaveLength, 20)
			for i, value := range values {
				c.So(value, ShouldEqual, i*i)
			}
			c.So(q.space.Len(), ShouldEqual, 0)
			c.So(q.Metrics().JobCount, ShouldEqual, 20)
		})

		Convey("When one trial of a batch fails", func(c C) {
			bad := errors.New("bad trial")
			_, err := q.Map(context.Background(), 10, func(i int) (any, error) {
				if i == 3 {
					return nil, bad
				}
				return i, nil
			})

			c.So(errors.Is(err, bad), ShouldBeTrue)
		})

		Convey("When the caller cancels a batch", func(c C) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := q.Map(ctx, 5, func(i int) (any, error) { return i, nil })
			c.So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given a closed pool", t, func() {
		q := NewQ(context.Background(), nil)
		q.Close()

		Convey("Scheduling fails with ErrClosed", func() {
			select {
			case <-time.After(time.Second):
				t.Fatal(timeoutMsg)
			case value := <-q.Schedule("late", func() (any, error) { return nil, nil }):
				So(errors.Is(value.Error, ErrClosed), ShouldBeTrue)
			}
		})

		Convey("Closing again is harmless", func() {
			So(func() { q.Close() }, ShouldNotPanic)
		})
	})
}

func TestConfig(t *testing.T) {
	Convey("Given a partial config", t, func() {
		config := (&Config{MinWorkers: 8, MaxWorkers: 2}).normalize()

		Convey("Zero fields get defaults", func() {
			So(config.SchedulingTimeout, ShouldEqual, NewConfig().SchedulingTimeout)
			So(config.JobTimeout, ShouldEqual, NewConfig().JobTimeout)
		})

		Convey("MinWorkers never exceeds MaxWorkers", func() {
			So(config.MinWorkers, ShouldEqual, 2)
		})

		Convey("A nil config is the default", func() {
			So((*Config)(nil).normalize(), ShouldResemble, NewConfig())
		})
	})
}
