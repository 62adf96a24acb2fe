package repository

import "github.com/ayush9889/score-wise/internal/domain/stats"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeed preloads career records, e.g. reloaded from an external
// store on startup. The records are copied.
func WithSeed(records map[string]*stats.PlayerStats) Option {
	return func(s *MemStore) {
		for player, r := range records {
			cp := *r
			s.byID[player] = &cp
		}
	}
}
