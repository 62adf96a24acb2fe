package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/ayush9889/score-wise/internal/simulator"
	"github.com/ayush9889/score-wise/pkg/logger"
)

// Default configuration constants.
const (
	defaultMatches    = 3
	defaultOvers      = 5
	defaultSeed       = 1
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9090", "Base URL of the service")
		matches = flag.Int("matches", defaultMatches, "Number of full matches to simulate")
		overs   = flag.Int("overs", defaultOvers, "Overs per innings")
		seed    = flag.Int64("seed", defaultSeed, "Seed for deterministic delivery generation")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Enable per-delivery logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	cfg := &simulator.Config{
		BaseURL: *baseURL,
		Matches: *matches,
		Overs:   *overs,
		Seed:    *seed,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if err := simulator.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
