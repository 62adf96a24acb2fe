// Package scorer is the engine boundary for one match: it owns the ball
// ledger and serves every scoring operation by replaying it. No derived
// number is stored anywhere except as a projection of the ledger.
package scorer

import (
	"fmt"
	"sync"
	"time"

	"github.com/ayush9889/score-wise/internal/domain/ledger"
	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/pkg/metrics"
)

// Scorer scores a single match. It serializes its own operations; the
// engine assumes one active scorer per match, so callers never interleave
// corrections.
type Scorer struct {
	mu      sync.Mutex
	cfg     model.Config
	second  *model.Openers
	ledger  *ledger.Ledger
	snap    *match.Snapshot
	motm    string
	endedAt time.Time
}

// New validates the configuration and returns a scorer positioned before
// the first ball.
func New(cfg model.Config) (*Scorer, error) {
	snap, err := match.Replay(cfg, nil, nil)
	if err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg, ledger: ledger.New(), snap: snap}, nil
}

// replay re-derives the snapshot from the current ledger contents.
func (s *Scorer) replay() error {
	start := time.Now()
	snap, err := match.Replay(s.cfg, s.second, s.ledger.Balls())
	metrics.RecordReplay(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return err
	}
	s.snap = snap
	return nil
}

// AppendBall validates the delivery against the current state and appends
// it to the ledger. On any error the ledger is unchanged. The returned
// snapshot reflects the accepted delivery.
func (s *Scorer) AppendBall(b model.Ball) (*match.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := append(s.ledger.Balls(), b)
	start := time.Now()
	snap, err := match.Replay(s.cfg, s.second, candidate)
	metrics.RecordReplay(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, err
	}

	s.ledger.Append(b)
	s.snap = snap
	if snap.State == match.StateComplete && s.endedAt.IsZero() {
		s.endedAt = time.Now()
	}
	return s.publish(), nil
}

// Undo truncates the last ball and re-derives the snapshot. It is a
// no-op on an empty ledger.
func (s *Scorer) Undo() (*match.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger.Undo(); !ok {
		return s.publish(), nil
	}
	if err := s.replay(); err != nil {
		return nil, err
	}
	metrics.RecordUndo()
	return s.publish(), nil
}

// Redo re-appends the most recently undone ball. It is a no-op when
// nothing has been undone, and undone balls are discarded as soon as a
// fresh ball is appended.
func (s *Scorer) Redo() (*match.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ledger.Redo(); !ok {
		return s.publish(), nil
	}
	if err := s.replay(); err != nil {
		return nil, err
	}
	metrics.RecordRedo()
	return s.publish(), nil
}

// StartSecondInnings supplies the chase openers. Valid only while the
// match sits at the first-innings break.
func (s *Scorer) StartSecondInnings(striker, nonStriker, bowler string) (*match.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap.State != match.StateInningsBreak {
		return nil, fmt.Errorf("%w: second innings can only start at the first-innings break (state %s)", match.ErrState, s.snap.State)
	}
	second := &model.Openers{Striker: striker, NonStriker: nonStriker, Bowler: bowler}
	snap, err := match.Replay(s.cfg, second, s.ledger.Balls())
	if err != nil {
		return nil, err
	}
	s.second = second
	s.snap = snap
	return s.publish(), nil
}

// SetManOfTheMatch records the externally selected award. The engine
// never computes this itself.
func (s *Scorer) SetManOfTheMatch(player string) (*match.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.TeamA.Has(player) && !s.cfg.TeamB.Has(player) {
		return nil, fmt.Errorf("%w: player %s is not in this match", match.ErrValidation, player)
	}
	s.motm = player
	return s.publish(), nil
}

// Snapshot returns a read-only copy of the current derived state.
func (s *Scorer) Snapshot() *match.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.publish()
}

// Config returns the immutable match configuration.
func (s *Scorer) Config() model.Config {
	return s.cfg
}

// Balls returns a copy of the ledger, the persisted representation an
// external store must round-trip.
func (s *Scorer) Balls() []model.Ball {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balls()
}

// publish stamps scorer-held fields onto a defensive copy. The award and
// end timestamp live outside the replay fold so the fold stays a pure
// function of the ledger.
func (s *Scorer) publish() *match.Snapshot {
	out := s.snap.Clone()
	out.ManOfTheMatch = s.motm
	if out.State == match.StateComplete {
		out.EndedAt = s.endedAt
	}
	return out
}
