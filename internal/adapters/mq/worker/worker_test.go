package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ayush9889/score-wise/internal/adapters/mq/queue"
	"github.com/ayush9889/score-wise/internal/adapters/mq/worker"
	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/stats"
	"github.com/ayush9889/score-wise/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

type recordingMerger struct {
	mu     sync.Mutex
	merged []map[string]*stats.PlayerStats
	err    error
}

func (m *recordingMerger) Merge(ctx context.Context, deltas map[string]*stats.PlayerStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.merged = append(m.merged, deltas)
	return nil
}

func (m *recordingMerger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.merged)
}

func completedSnapshot(id string) *match.Snapshot {
	return &match.Snapshot{
		MatchID: id,
		State:   match.StateComplete,
		First: &match.Innings{
			Batting: map[string]*match.BattingCard{
				"a1": {Player: "a1", Runs: 30, Balls: 20},
			},
			Bowling:  map[string]*match.BowlingCard{},
			Fielding: map[string]*match.FieldingCard{},
		},
		Second: &match.Innings{
			Batting:  map[string]*match.BattingCard{},
			Bowling:  map[string]*match.BowlingCard{},
			Fielding: map[string]*match.FieldingCard{},
		},
	}
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestWorker(t *testing.T) {
	Convey("Given a worker consuming the aggregation queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(8))
		merger := &recordingMerger{}

		Convey("When a completed match is enqueued", func() {
			w := worker.NewWorker(q, worker.AggregatorFunc(stats.Aggregate), merger, worker.WithName("w-test"))
			go w.Run(ctx)

			q.Enqueue(ctx, queue.Job{MatchID: "m1", Snapshot: completedSnapshot("m1")})

			Convey("Then the deltas reach the merger", func() {
				So(waitFor(func() bool { return merger.count() == 1 }), ShouldBeTrue)
				So(merger.merged[0]["a1"].RunsScored, ShouldEqual, 30)

				So(w.Shutdown(ctx), ShouldBeNil)
			})
		})

		Convey("When aggregation fails", func() {
			boom := worker.AggregatorFunc(func(*match.Snapshot) (map[string]*stats.PlayerStats, error) {
				return nil, errors.New("boom")
			})
			w := worker.NewWorker(q, boom, merger)
			go w.Run(ctx)

			q.Enqueue(ctx, queue.Job{MatchID: "m1", Snapshot: completedSnapshot("m1")})
			q.Enqueue(ctx, queue.Job{MatchID: "m2", Snapshot: completedSnapshot("m2")})

			Convey("Then the worker keeps consuming", func() {
				So(waitFor(func() bool { return q.Len(ctx) == 0 }), ShouldBeTrue)
				So(merger.count(), ShouldEqual, 0)

				So(w.Shutdown(ctx), ShouldBeNil)
			})
		})

		Convey("When shutting down with a bounded context", func() {
			w := worker.NewWorker(q, worker.AggregatorFunc(stats.Aggregate), merger)
			go w.Run(ctx)

			shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
			defer cancel()

			Convey("Then shutdown returns promptly", func() {
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a worker pool", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(32))
		merger := &recordingMerger{}

		pool := worker.NewPool(3, q, worker.AggregatorFunc(stats.Aggregate), merger)
		pool.Start(ctx)

		Convey("When several matches are enqueued", func() {
			for _, id := range []string{"m1", "m2", "m3", "m4", "m5"} {
				So(q.Enqueue(ctx, queue.Job{MatchID: id, Snapshot: completedSnapshot(id)}), ShouldBeTrue)
			}

			Convey("Then every match is merged exactly once", func() {
				So(waitFor(func() bool { return merger.count() == 5 }), ShouldBeTrue)

				stopCtx, cancel := context.WithTimeout(ctx, time.Second)
				defer cancel()
				pool.Stop(stopCtx)
			})
		})
	})
}
