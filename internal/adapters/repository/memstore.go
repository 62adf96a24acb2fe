package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ayush9889/score-wise/internal/domain/stats"
	"github.com/ayush9889/score-wise/pkg/metrics"
)

// MemStore is an in-memory Store implementation. Career records are held
// in a map guarded by a RWMutex; ranked queries sort on demand, which is
// fine at club scale where merges dominate reads.
type MemStore struct {
	mu   sync.RWMutex
	byID map[string]*stats.PlayerStats
}

// NewMemStore constructs an empty in-memory store.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID: make(map[string]*stats.PlayerStats),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Merge implements Store.Merge.
func (s *MemStore) Merge(ctx context.Context, deltas map[string]*stats.PlayerStats) error {
	start := time.Now()
	defer func() {
		metrics.RecordStoreMergeLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.Lock()
	for player, d := range deltas {
		cur, ok := s.byID[player]
		if !ok {
			cur = &stats.PlayerStats{Player: player}
			s.byID[player] = cur
		}
		cur.Merge(d)
	}
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateStatsPlayersTotal(count)
	return nil
}

// Player implements Store.Player. The returned record is a copy.
func (s *MemStore) Player(ctx context.Context, player string) (*stats.PlayerStats, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	s.mu.RLock()
	defer s.mu.RUnlock()

	cur, ok := s.byID[player]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, ErrNotFound
	}
	out := *cur
	return &out, nil
}

// TopBatsmen implements Store.TopBatsmen.
func (s *MemStore) TopBatsmen(ctx context.Context, n int) ([]Entry, error) {
	return s.top(n, func(a, b *stats.PlayerStats) bool {
		if a.RunsScored != b.RunsScored {
			return a.RunsScored > b.RunsScored
		}
		if a.BallsFaced != b.BallsFaced {
			return a.BallsFaced < b.BallsFaced
		}
		return a.Player < b.Player
	})
}

// TopBowlers implements Store.TopBowlers.
func (s *MemStore) TopBowlers(ctx context.Context, n int) ([]Entry, error) {
	return s.top(n, func(a, b *stats.PlayerStats) bool {
		if a.WicketsTaken != b.WicketsTaken {
			return a.WicketsTaken > b.WicketsTaken
		}
		if a.RunsConceded != b.RunsConceded {
			return a.RunsConceded < b.RunsConceded
		}
		return a.Player < b.Player
	})
}

func (s *MemStore) top(n int, less func(a, b *stats.PlayerStats) bool) ([]Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	all := make([]*stats.PlayerStats, 0, len(s.byID))
	for _, p := range s.byID {
		cp := *p
		all = append(all, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	if n > len(all) {
		n = len(all)
	}
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = Entry{Rank: i + 1, Player: all[i].Player, Stats: all[i]}
	}
	return out, nil
}

// Count implements Store.Count.
func (s *MemStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
