// Package worker runs the aggregation workers that fold completed
// matches into the career statistics store.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ayush9889/score-wise/internal/adapters/mq/queue"
	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/stats"
	"github.com/ayush9889/score-wise/pkg/logger"
	"github.com/ayush9889/score-wise/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount = 2
)

// Aggregator folds a completed match snapshot into per-player deltas.
type Aggregator interface {
	Aggregate(snap *match.Snapshot) (map[string]*stats.PlayerStats, error)
}

// AggregatorFunc adapts a function to the Aggregator interface.
type AggregatorFunc func(snap *match.Snapshot) (map[string]*stats.PlayerStats, error)

func (f AggregatorFunc) Aggregate(snap *match.Snapshot) (map[string]*stats.PlayerStats, error) {
	return f(snap)
}

// Merger accepts per-player deltas into the career store.
type Merger interface {
	Merge(ctx context.Context, deltas map[string]*stats.PlayerStats) error
}

// Worker consumes aggregation jobs until its context is cancelled.
type Worker struct {
	queue      queue.Queue
	aggregator Aggregator
	merger     Merger
	name       string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(q queue.Queue, a Aggregator, m Merger, opts ...Option) *Worker {
	w := &Worker{
		queue:      q,
		aggregator: a,
		merger:     m,
		name:       "worker",
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop until ctx is cancelled or the queue closes.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, j); err != nil {
				w.logger.Error(ctx, "aggregation failed",
					logger.String("matchID", j.MatchID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight job.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process folds one completed match into the career store.
func (w *Worker) process(ctx context.Context, j queue.Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	deltas, err := w.aggregator.Aggregate(j.Snapshot)
	if err != nil {
		metrics.RecordAggregationError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "aggregate_error")
		return fmt.Errorf("aggregate match %s: %w", j.MatchID, err)
	}

	if err := w.merger.Merge(ctx, deltas); err != nil {
		metrics.RecordAggregationError()
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "merge_error")
		return fmt.Errorf("merge stats for match %s: %w", j.MatchID, err)
	}

	metrics.RecordAggregation()
	w.logger.Info(ctx, "match aggregated",
		logger.String("matchID", j.MatchID),
		logger.Int("players", len(deltas)),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*Worker

	logger logger.Logger
}

// NewPool creates a worker pool of the given size.
func NewPool(workerCount int, q queue.Queue, a Aggregator, m Merger) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(q, a, m, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop shuts all workers down, bounded by ctx.
func (p *Pool) Stop(ctx context.Context) {
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker shutdown", logger.Error(err))
		}
	}
	metrics.UpdateWorkerCount(0)
}
