package queue_test

import (
	"context"
	"testing"
	"time"

	"github.com/ayush9889/score-wise/internal/adapters/mq/queue"
	"github.com/ayush9889/score-wise/internal/domain/match"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given an in-memory aggregation queue", t, func() {
		ctx := context.Background()

		Convey("When enqueueing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))

			ok := q.Enqueue(ctx, queue.Job{MatchID: "m1", Snapshot: &match.Snapshot{MatchID: "m1"}})

			Convey("Then the job is accepted", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(1))
			So(q.Enqueue(ctx, queue.Job{MatchID: "m1"}), ShouldBeTrue)

			Convey("Then further enqueues are refused without blocking", func() {
				So(q.Enqueue(ctx, queue.Job{MatchID: "m2"}), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When dequeueing", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			q.Enqueue(ctx, queue.Job{MatchID: "m1"})
			q.Enqueue(ctx, queue.Job{MatchID: "m2"})

			jobs := q.Dequeue(ctx)

			Convey("Then jobs arrive in order", func() {
				first := <-jobs
				second := <-jobs
				So(first.MatchID, ShouldEqual, "m1")
				So(second.MatchID, ShouldEqual, "m2")
			})
		})

		Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			q.Enqueue(ctx, queue.Job{MatchID: "m1"})
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueues are refused", func() {
				So(q.Enqueue(ctx, queue.Job{MatchID: "m2"}), ShouldBeFalse)
			})

			Convey("Then buffered jobs drain before the channel closes", func() {
				jobs := q.Dequeue(ctx)

				j, open := <-jobs
				So(open, ShouldBeTrue)
				So(j.MatchID, ShouldEqual, "m1")

				select {
				case _, open := <-jobs:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					So("dequeue channel did not close", ShouldBeEmpty)
				}
			})

			Convey("Then closing twice is harmless", func() {
				So(q.Close(), ShouldBeNil)
			})
		})

		Convey("When the consumer context is cancelled", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			cancelCtx, cancel := context.WithCancel(ctx)
			jobs := q.Dequeue(cancelCtx)
			cancel()

			q.Enqueue(ctx, queue.Job{MatchID: "m1"})

			Convey("Then the dequeue channel closes", func() {
				select {
				case _, open := <-jobs:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					So("dequeue channel did not close", ShouldBeEmpty)
				}
			})
		})
	})
}
