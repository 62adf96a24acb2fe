package scorer

import (
	"github.com/ayush9889/score-wise/internal/domain/model"
)

// Export is the persisted representation of a match: the immutable
// configuration plus the full ball list. Any external store must
// round-trip this structure losslessly, since replay is the only way
// derived fields are reconstructed after reload.
type Export struct {
	Config        model.Config   `json:"config"`
	SecondInnings *model.Openers `json:"second_innings,omitempty"`
	Balls         []model.Ball   `json:"balls"`
	ManOfTheMatch string         `json:"man_of_the_match,omitempty"`
}

// Export captures everything needed to reconstruct the scorer.
func (s *Scorer) Export() Export {
	s.mu.Lock()
	defer s.mu.Unlock()

	var second *model.Openers
	if s.second != nil {
		cp := *s.second
		second = &cp
	}
	return Export{
		Config:        s.cfg,
		SecondInnings: second,
		Balls:         s.ledger.Balls(),
		ManOfTheMatch: s.motm,
	}
}

// Restore rebuilds a scorer from its persisted representation by
// replaying the ball list.
func Restore(e Export) (*Scorer, error) {
	s, err := New(e.Config)
	if err != nil {
		return nil, err
	}
	s.second = e.SecondInnings
	for _, b := range e.Balls {
		if _, err := s.AppendBall(b); err != nil {
			return nil, err
		}
	}
	s.motm = e.ManOfTheMatch
	return s, nil
}
