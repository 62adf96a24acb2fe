// Package extras classifies the runs on a delivery: which runs belong to
// the batsman, which to the batting team's extras, and whether the
// delivery counts toward the six-ball over.
package extras

import "fmt"

// Penalty runs awarded to the batting team on illegal deliveries.
const (
	WidePenaltyRuns   = 1
	NoBallPenaltyRuns = 1
)

// Breakdown is the per-bucket extras contribution of a single delivery.
type Breakdown struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
}

// Total is the sum over all extras buckets.
func (b Breakdown) Total() int {
	return b.Wides + b.NoBalls + b.Byes + b.LegByes
}

// Add accumulates another breakdown into b.
func (b *Breakdown) Add(o Breakdown) {
	b.Wides += o.Wides
	b.NoBalls += o.NoBalls
	b.Byes += o.Byes
	b.LegByes += o.LegByes
}

// Classification is the scoring outcome of one delivery.
type Classification struct {
	// BatsmanRuns is credited to the striker's personal score.
	BatsmanRuns int
	// Extras is the batting team's extras contribution, by bucket.
	Extras Breakdown
	// Legal reports whether the delivery counts toward the over.
	Legal bool
	// BallFaced reports whether the striker is charged a ball faced.
	// Wides are the only deliveries that do not count as a ball faced.
	BallFaced bool
	// Four and Six are recognized only on plain deliveries.
	Four bool
	Six  bool
}

// TeamRuns is the total added to the batting team's score.
func (c Classification) TeamRuns() int {
	return c.BatsmanRuns + c.Extras.Total()
}

// Classify applies the scoring rules to a raw delivery intent.
//
//   - Wide: penalty plus all runs run go to extras; not a legal delivery.
//   - No-ball: penalty to extras; runs run go to the batsman unless the
//     delivery is also a bye/leg-bye; not a legal delivery.
//   - Bye / leg-bye: runs to extras; legal unless also a no-ball.
//   - Plain: runs to the batsman; legal.
func Classify(runs int, wide, noBall, bye, legBye bool) (Classification, error) {
	if runs < 0 {
		return Classification{}, fmt.Errorf("%w: %d", ErrNegativeRuns, runs)
	}
	if wide && (noBall || bye || legBye) {
		return Classification{}, fmt.Errorf("%w: wide combined with another extra", ErrExtraCombination)
	}
	if bye && legBye {
		return Classification{}, fmt.Errorf("%w: bye combined with leg-bye", ErrExtraCombination)
	}

	var c Classification
	switch {
	case wide:
		c.Extras.Wides = runs + WidePenaltyRuns
	case noBall && bye:
		c.Extras.NoBalls = NoBallPenaltyRuns
		c.Extras.Byes = runs
		c.BallFaced = true
	case noBall && legBye:
		c.Extras.NoBalls = NoBallPenaltyRuns
		c.Extras.LegByes = runs
		c.BallFaced = true
	case noBall:
		c.Extras.NoBalls = NoBallPenaltyRuns
		c.BatsmanRuns = runs
		c.BallFaced = true
	case bye:
		c.Extras.Byes = runs
		c.Legal = true
		c.BallFaced = true
	case legBye:
		c.Extras.LegByes = runs
		c.Legal = true
		c.BallFaced = true
	default:
		c.BatsmanRuns = runs
		c.Legal = true
		c.BallFaced = true
		c.Four = runs == 4
		c.Six = runs == 6
	}
	return c, nil
}
