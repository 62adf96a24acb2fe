// Package simulator drives complete matches against a running service
// over HTTP. It generates deterministic pseudo-random deliveries from a
// seed, follows the engine's state machine (innings break, new bowler
// after each over, incoming batsmen), and renders final scorecards.
package simulator

import (
	"sync/atomic"
	"time"
)

// Config controls a simulation run.
type Config struct {
	// BaseURL of the service, e.g. http://localhost:9090.
	BaseURL string

	// Matches is the number of full matches to play.
	Matches int

	// Overs per innings for the generated matches.
	Overs int

	// Seed makes the generated deliveries reproducible.
	Seed int64

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Verbose enables per-delivery logging.
	Verbose bool
}

// Stats tracks simulation counters.
type Stats struct {
	BallsSubmitted int64
	BallsRejected  int64
	MatchesPlayed  int64
	Wickets        int64
}

// addBall records one accepted delivery.
func (s *Stats) addBall() {
	atomic.AddInt64(&s.BallsSubmitted, 1)
}

// addRejected records one rejected delivery.
func (s *Stats) addRejected() {
	atomic.AddInt64(&s.BallsRejected, 1)
}

// addWicket records one wicket.
func (s *Stats) addWicket() {
	atomic.AddInt64(&s.Wickets, 1)
}

// addMatch records one completed match.
func (s *Stats) addMatch() {
	atomic.AddInt64(&s.MatchesPlayed, 1)
}
