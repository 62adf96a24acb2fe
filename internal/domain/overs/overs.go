// Package overs tracks the six-ball over and strike rotation.
package overs

import "fmt"

// BallsPerOver is fixed for the supported limited-overs format.
const BallsPerOver = 6

// Overs is an overs display value, e.g. 15.3 means 15 completed overs
// and 3 legal balls into the 16th.
type Overs struct {
	Completed int `json:"completed"`
	Balls     int `json:"balls"`
}

// FromLegalBalls converts a legal-ball count into an overs value.
func FromLegalBalls(n int) Overs {
	return Overs{Completed: n / BallsPerOver, Balls: n % BallsPerOver}
}

// TotalBalls is the inverse of FromLegalBalls.
func (o Overs) TotalBalls() int {
	return o.Completed*BallsPerOver + o.Balls
}

// Float expresses the overs value as completed overs for rate math:
// 15.3 overs becomes 15.5.
func (o Overs) Float() float64 {
	return float64(o.Completed) + float64(o.Balls)/BallsPerOver
}

func (o Overs) String() string {
	return fmt.Sprintf("%d.%d", o.Completed, o.Balls)
}

// State is the within-over position of an innings.
type State struct {
	// LegalBalls is the number of legal deliveries bowled in the innings.
	LegalBalls int
}

// OnDelivery advances the state for one delivery and reports whether the
// delivery completed an over. Wides and no-balls leave the count alone.
func (s *State) OnDelivery(legal bool) (overComplete bool) {
	if !legal {
		return false
	}
	s.LegalBalls++
	return s.LegalBalls%BallsPerOver == 0
}

// Overs renders the current position as an overs value.
func (s State) Overs() Overs {
	return FromLegalBalls(s.LegalBalls)
}

// MidOver reports whether the innings is part-way through an over.
func (s State) MidOver() bool {
	return s.LegalBalls%BallsPerOver != 0
}

// RotatesOnRuns reports whether the physical runs run on a delivery swap
// the batsmen's ends. Parity of the runs run decides, for extras too:
// an odd-run bye off a wide still crosses the batsmen.
func RotatesOnRuns(runs int) bool {
	return runs%2 == 1
}
