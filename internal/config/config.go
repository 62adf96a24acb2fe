// Package config loads and validates the service configuration from
// defaults, an optional YAML file and SCOREWISE_ environment variables.
package config

import "fmt"

// Config holds every tunable of the scoring service.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// Addr is the HTTP listen address.
	Addr string `koanf:"addr"`
	// QueueSize bounds the aggregation queue.
	QueueSize int `koanf:"queue_size"`
	// WorkerCount is the number of aggregation workers.
	WorkerCount int `koanf:"worker_count"`
	// DedupeSize bounds the completed-match dedupe window.
	DedupeSize int `koanf:"dedupe_size"`
	// MaxLeaderboardLimit caps the n accepted by leaderboard queries.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.DedupeSize <= 0 {
		return fmt.Errorf("%w: dedupe_size must be positive, got %d", ErrInvalidConfig, c.DedupeSize)
	}
	if c.MaxLeaderboardLimit <= 0 {
		return fmt.Errorf("%w: max_leaderboard_limit must be positive, got %d", ErrInvalidConfig, c.MaxLeaderboardLimit)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}
