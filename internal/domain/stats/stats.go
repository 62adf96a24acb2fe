// Package stats folds completed matches into per-player career totals.
package stats

import (
	"fmt"

	"github.com/ayush9889/score-wise/internal/domain/overs"
)

// BowlingFigures is a best-bowling performance: wickets taken and runs
// conceded in one match.
type BowlingFigures struct {
	Wickets int `json:"wickets"`
	Runs    int `json:"runs"`
}

// Better reports whether f beats o: more wickets, or the same wickets
// for fewer runs.
func (f BowlingFigures) Better(o BowlingFigures) bool {
	if f.Wickets != o.Wickets {
		return f.Wickets > o.Wickets
	}
	return f.Runs < o.Runs
}

func (f BowlingFigures) String() string {
	return fmt.Sprintf("%d/%d", f.Wickets, f.Runs)
}

// PlayerStats is a player's accumulated career record. Only the raw
// totals are stored; derived rates are recomputed on read so they can
// never go stale.
type PlayerStats struct {
	Player        string `json:"player"`
	MatchesPlayed int    `json:"matches_played"`

	// Batting
	RunsScored   int  `json:"runs_scored"`
	BallsFaced   int  `json:"balls_faced"`
	Fours        int  `json:"fours"`
	Sixes        int  `json:"sixes"`
	TimesOut     int  `json:"times_out"`
	HighestScore int  `json:"highest_score"`
	Fifties      int  `json:"fifties"`
	Hundreds     int  `json:"hundreds"`
	Ducks        int  `json:"ducks"`

	// Bowling
	WicketsTaken int            `json:"wickets_taken"`
	BallsBowled  int            `json:"balls_bowled"`
	RunsConceded int            `json:"runs_conceded"`
	MaidenOvers  int            `json:"maiden_overs"`
	DotBalls     int            `json:"dot_balls"`
	BestBowling  BowlingFigures `json:"best_bowling"`

	// Fielding
	Catches   int `json:"catches"`
	Stumpings int `json:"stumpings"`
	RunOuts   int `json:"run_outs"`

	ManOfTheMatch int `json:"man_of_the_match"`
}

// BattingAverage is runs per dismissal; zero before the first dismissal.
func (p *PlayerStats) BattingAverage() float64 {
	if p.TimesOut == 0 {
		return 0
	}
	return float64(p.RunsScored) / float64(p.TimesOut)
}

// StrikeRate is runs per hundred balls faced.
func (p *PlayerStats) StrikeRate() float64 {
	if p.BallsFaced == 0 {
		return 0
	}
	return float64(p.RunsScored) / float64(p.BallsFaced) * 100
}

// Economy is runs conceded per over bowled.
func (p *PlayerStats) Economy() float64 {
	o := overs.FromLegalBalls(p.BallsBowled).Float()
	if o == 0 {
		return 0
	}
	return float64(p.RunsConceded) / o
}

// Merge accumulates a per-match delta into the career record.
func (p *PlayerStats) Merge(d *PlayerStats) {
	hadBowled := p.BallsBowled > 0
	p.MatchesPlayed += d.MatchesPlayed
	p.RunsScored += d.RunsScored
	p.BallsFaced += d.BallsFaced
	p.Fours += d.Fours
	p.Sixes += d.Sixes
	p.TimesOut += d.TimesOut
	p.Fifties += d.Fifties
	p.Hundreds += d.Hundreds
	p.Ducks += d.Ducks
	p.WicketsTaken += d.WicketsTaken
	p.BallsBowled += d.BallsBowled
	p.RunsConceded += d.RunsConceded
	p.MaidenOvers += d.MaidenOvers
	p.DotBalls += d.DotBalls
	p.Catches += d.Catches
	p.Stumpings += d.Stumpings
	p.RunOuts += d.RunOuts
	p.ManOfTheMatch += d.ManOfTheMatch
	if d.HighestScore > p.HighestScore {
		p.HighestScore = d.HighestScore
	}
	if d.BallsBowled > 0 && (!hadBowled || d.BestBowling.Better(p.BestBowling)) {
		p.BestBowling = d.BestBowling
	}
}
