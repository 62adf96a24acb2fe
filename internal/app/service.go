// Package service provides the core business service that implements
// the dependencies required by the HTTP API. It owns the live match
// scorers and the asynchronous aggregation pipeline behind them.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	jobqueue "github.com/ayush9889/score-wise/internal/adapters/mq/queue"
	workerpool "github.com/ayush9889/score-wise/internal/adapters/mq/worker"
	repository "github.com/ayush9889/score-wise/internal/adapters/repository"
	"github.com/ayush9889/score-wise/internal/domain/dedupe"
	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/internal/domain/scorer"
	"github.com/ayush9889/score-wise/internal/domain/stats"
	"github.com/ayush9889/score-wise/pkg/logger"
	"github.com/ayush9889/score-wise/pkg/metrics"
)

// Service holds the live matches and wires the aggregation pipeline:
// completed match snapshots flow through a dedupe gate onto the queue,
// and the worker pool folds them into the career store.
type Service struct {
	mu sync.RWMutex

	// Core components
	matches map[string]*scorer.Scorer
	careers repository.Store
	deduper dedupe.Deduper
	queue   jobqueue.Queue
	pool    *workerpool.Pool

	// Configuration
	workerCount         int
	queueSize           int
	dedupeSize          int
	maxLeaderboardLimit int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of aggregation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the aggregation queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the completed-match dedupe window.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxLeaderboardLimit caps the n accepted by leaderboard queries.
func WithMaxLeaderboardLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxLeaderboardLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets a custom career statistics store.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.careers = st
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		matches:             make(map[string]*scorer.Scorer),
		workerCount:         2,
		queueSize:           1024,
		dedupeSize:          50_000,
		maxLeaderboardLimit: 100,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting scoring service...")

	if s.careers == nil {
		s.careers = repository.NewMemStore()
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(
		s.workerCount,
		s.queue,
		workerpool.AggregatorFunc(stats.Aggregate),
		s.careers,
	)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "scoring service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service. In-flight aggregations are
// given until ctx expires to finish.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(ctx, "stopping scoring service...")

	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.pool != nil {
		s.pool.Stop(ctx)
	}

	s.started = false
	s.logger.Info(ctx, "scoring service stopped")
}

// CreateMatch registers a new match from its immutable configuration.
// An empty MatchID gets a generated UUID; StartedAt defaults to now.
func (s *Service) CreateMatch(ctx context.Context, cfg model.Config) (*match.Snapshot, error) {
	if cfg.MatchID == "" {
		cfg.MatchID = uuid.NewString()
	}
	if cfg.StartedAt.IsZero() {
		cfg.StartedAt = time.Now().UTC()
	}

	sc, err := scorer.New(cfg)
	if err != nil {
		metrics.RecordValidationRejection()
		metrics.RecordErrorByComponent("service", "invalid_config")
		return nil, err
	}

	s.mu.Lock()
	if _, exists := s.matches[cfg.MatchID]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: match %s already exists", match.ErrValidation, cfg.MatchID)
	}
	s.matches[cfg.MatchID] = sc
	live := s.countLiveLocked()
	s.mu.Unlock()

	metrics.RecordMatchCreated()
	metrics.UpdateLiveMatches(live)
	s.logger.Info(ctx, "match created",
		logger.String("matchID", cfg.MatchID),
		logger.String("teamA", cfg.TeamA.Name),
		logger.String("teamB", cfg.TeamB.Name),
		logger.Int("overs", cfg.TotalOvers),
	)

	return sc.Snapshot(), nil
}

// AppendBall validates and records one delivery against a match. On the
// delivery that completes the match, the final snapshot is handed to
// the aggregation pipeline.
func (s *Service) AppendBall(ctx context.Context, matchID string, b model.Ball) (*match.Snapshot, error) {
	sc, err := s.match(matchID)
	if err != nil {
		return nil, err
	}

	snap, err := sc.AppendBall(b)
	if err != nil {
		s.rejectMetrics(err)
		return nil, err
	}

	metrics.RecordBallRecorded()
	if b.Wicket {
		metrics.RecordWicket()
	}
	recordExtraKinds(b)

	if snap.State == match.StateComplete {
		s.onCompletion(ctx, matchID, snap)
	}
	return snap, nil
}

// Undo removes the most recent delivery and returns the rewound state.
func (s *Service) Undo(ctx context.Context, matchID string) (*match.Snapshot, error) {
	sc, err := s.match(matchID)
	if err != nil {
		return nil, err
	}
	snap, err := sc.Undo()
	if err != nil {
		s.rejectMetrics(err)
		return nil, err
	}
	return snap, nil
}

// Redo re-applies the most recently undone delivery. A redo that closes
// the match goes through the same completion gate as a fresh delivery;
// the dedupe window keeps the match from being aggregated twice.
func (s *Service) Redo(ctx context.Context, matchID string) (*match.Snapshot, error) {
	sc, err := s.match(matchID)
	if err != nil {
		return nil, err
	}
	snap, err := sc.Redo()
	if err != nil {
		s.rejectMetrics(err)
		return nil, err
	}

	if snap.State == match.StateComplete {
		s.onCompletion(ctx, matchID, snap)
	}
	return snap, nil
}

// StartSecondInnings opens the chase with the named openers and bowler.
func (s *Service) StartSecondInnings(ctx context.Context, matchID string, o model.Openers) (*match.Snapshot, error) {
	sc, err := s.match(matchID)
	if err != nil {
		return nil, err
	}
	snap, err := sc.StartSecondInnings(o.Striker, o.NonStriker, o.Bowler)
	if err != nil {
		s.rejectMetrics(err)
		return nil, err
	}
	s.logger.Info(ctx, "second innings started",
		logger.String("matchID", matchID),
		logger.Int("target", snap.Target),
	)
	return snap, nil
}

// SetManOfTheMatch records the award. If the match has already been
// aggregated, the award alone is merged into the career store so the
// player's tally stays consistent.
func (s *Service) SetManOfTheMatch(ctx context.Context, matchID, player string) (*match.Snapshot, error) {
	sc, err := s.match(matchID)
	if err != nil {
		return nil, err
	}

	prev := sc.Snapshot().ManOfTheMatch
	snap, err := sc.SetManOfTheMatch(player)
	if err != nil {
		s.rejectMetrics(err)
		return nil, err
	}

	if snap.State == match.StateComplete && prev == "" && player != "" {
		award := map[string]*stats.PlayerStats{
			player: {Player: player, ManOfTheMatch: 1},
		}
		if err := s.careers.Merge(ctx, award); err != nil {
			s.logger.Error(ctx, "award merge failed",
				logger.String("matchID", matchID),
				logger.String("player", player),
				logger.Error(err),
			)
		}
	}
	return snap, nil
}

// Snapshot returns the current derived state of a match.
func (s *Service) Snapshot(ctx context.Context, matchID string) (*match.Snapshot, error) {
	sc, err := s.match(matchID)
	if err != nil {
		return nil, err
	}
	return sc.Snapshot(), nil
}

// Export returns the persisted representation of a match.
func (s *Service) Export(ctx context.Context, matchID string) (scorer.Export, error) {
	sc, err := s.match(matchID)
	if err != nil {
		return scorer.Export{}, err
	}
	return sc.Export(), nil
}

// Import registers a match from its persisted representation.
func (s *Service) Import(ctx context.Context, e scorer.Export) (*match.Snapshot, error) {
	sc, err := scorer.Restore(e)
	if err != nil {
		return nil, err
	}

	id := e.Config.MatchID
	s.mu.Lock()
	if _, exists := s.matches[id]; exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: match %s already exists", match.ErrValidation, id)
	}
	s.matches[id] = sc
	s.mu.Unlock()

	snap := sc.Snapshot()
	if snap.State == match.StateComplete {
		s.onCompletion(ctx, id, snap)
	}
	s.logger.Info(ctx, "match imported",
		logger.String("matchID", id),
		logger.Int("balls", len(e.Balls)),
	)
	return snap, nil
}

// PlayerStats returns one player's accumulated career record.
func (s *Service) PlayerStats(ctx context.Context, player string) (*stats.PlayerStats, error) {
	st, err := s.store()
	if err != nil {
		return nil, err
	}
	return st.Player(ctx, player)
}

// TopBatsmen returns the n leading run scorers.
func (s *Service) TopBatsmen(ctx context.Context, n int) ([]repository.Entry, error) {
	st, err := s.store()
	if err != nil {
		return nil, err
	}
	return st.TopBatsmen(ctx, s.clampLimit(n))
}

// TopBowlers returns the n leading wicket takers.
func (s *Service) TopBowlers(ctx context.Context, n int) ([]repository.Entry, error) {
	st, err := s.store()
	if err != nil {
		return nil, err
	}
	return st.TopBowlers(ctx, s.clampLimit(n))
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
		"matches":     len(s.matches),
	}

	if s.started {
		queueLen := s.queue.Len(ctx)
		players := s.careers.Count(ctx)
		live := s.countLiveLocked()

		out["queueLength"] = queueLen
		out["players"] = players
		out["liveMatches"] = live

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStatsPlayersTotal(players)
		metrics.UpdateLiveMatches(live)
	}

	return out
}

// onCompletion hands a completed match to the aggregation pipeline
// exactly once per match id.
func (s *Service) onCompletion(ctx context.Context, matchID string, snap *match.Snapshot) {
	if s.deduper.SeenAndRecord(ctx, matchID) {
		metrics.RecordAggregationDuplicate()
		s.logger.Debug(ctx, "match already aggregated",
			logger.String("matchID", matchID),
		)
		return
	}

	metrics.RecordMatchCompleted()
	s.mu.RLock()
	live := s.countLiveLocked()
	s.mu.RUnlock()
	metrics.UpdateLiveMatches(live)

	if !s.queue.Enqueue(ctx, jobqueue.Job{MatchID: matchID, Snapshot: snap}) {
		// Allow a retry once there is queue room again.
		s.deduper.Unrecord(ctx, matchID)
		s.logger.Error(ctx, "aggregation enqueue failed",
			logger.String("matchID", matchID),
		)
		return
	}

	s.logger.Info(ctx, "match completed",
		logger.String("matchID", matchID),
		logger.String("result", string(snap.Result.Kind)),
		logger.String("winner", snap.Result.Winner),
	)
}

// store returns the career store once the service is running.
func (s *Service) store() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	return s.careers, nil
}

// match looks up the scorer for a match id.
func (s *Service) match(matchID string) (*scorer.Scorer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	sc, ok := s.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, matchID)
	}
	return sc, nil
}

// countLiveLocked counts matches that are still in play. Callers hold s.mu.
func (s *Service) countLiveLocked() int {
	live := 0
	for _, sc := range s.matches {
		if sc.Snapshot().State != match.StateComplete {
			live++
		}
	}
	return live
}

// clampLimit applies the configured leaderboard limit cap.
func (s *Service) clampLimit(n int) int {
	if n > s.maxLeaderboardLimit {
		return s.maxLeaderboardLimit
	}
	return n
}

// rejectMetrics classifies a scoring rejection for observability.
func (s *Service) rejectMetrics(err error) {
	switch {
	case errors.Is(err, match.ErrValidation):
		metrics.RecordValidationRejection()
	case errors.Is(err, match.ErrState):
		metrics.RecordStateRejection()
	}
	metrics.RecordErrorByComponent("service", "rejected")
}

// recordExtraKinds tallies every extras category a delivery carries.
func recordExtraKinds(b model.Ball) {
	if b.Wide {
		metrics.RecordExtra("wide")
	}
	if b.NoBall {
		metrics.RecordExtra("no_ball")
	}
	if b.Bye {
		metrics.RecordExtra("bye")
	}
	if b.LegBye {
		metrics.RecordExtra("leg_bye")
	}
}
