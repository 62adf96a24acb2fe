// Package repository defines the career statistics store interface and
// errors.
package repository

import (
	"context"

	"github.com/ayush9889/score-wise/internal/domain/stats"
)

// Entry is a leaderboard row returned by ranked queries.
type Entry struct {
	Rank   int                `json:"rank"`
	Player string             `json:"player"`
	Stats  *stats.PlayerStats `json:"stats"`
}

// Store accumulates and serves per-player career statistics.
type Store interface {
	// Merge folds a set of per-match deltas into the career records.
	Merge(ctx context.Context, deltas map[string]*stats.PlayerStats) error

	// Player returns one player's career record.
	Player(ctx context.Context, player string) (*stats.PlayerStats, error)

	// TopBatsmen returns up to n players ranked by career runs scored,
	// ties broken by fewer balls faced then player id.
	TopBatsmen(ctx context.Context, n int) ([]Entry, error)

	// TopBowlers returns up to n players ranked by career wickets,
	// ties broken by fewer runs conceded then player id.
	TopBowlers(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of players with accumulated stats.
	Count(ctx context.Context) int
}
