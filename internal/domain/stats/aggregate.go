package stats

import (
	"fmt"

	"github.com/ayush9889/score-wise/internal/domain/match"
)

// Aggregate folds one completed match snapshot into per-player deltas.
// It must be invoked exactly once per completed match; the caller gates
// re-aggregation (the snapshot itself carries no aggregation marker).
func Aggregate(snap *match.Snapshot) (map[string]*PlayerStats, error) {
	if snap == nil || snap.State != match.StateComplete {
		return nil, fmt.Errorf("%w: match is not complete", ErrNotComplete)
	}

	deltas := make(map[string]*PlayerStats)
	get := func(player string) *PlayerStats {
		if d, ok := deltas[player]; ok {
			return d
		}
		d := &PlayerStats{Player: player}
		deltas[player] = d
		return d
	}

	for _, inn := range []*match.Innings{snap.First, snap.Second} {
		if inn == nil {
			continue
		}
		for _, c := range inn.Batting {
			d := get(c.Player)
			d.RunsScored += c.Runs
			d.BallsFaced += c.Balls
			d.Fours += c.Fours
			d.Sixes += c.Sixes
			if c.Out {
				d.TimesOut++
				if c.Runs == 0 {
					d.Ducks++
				}
			}
			if c.Runs > d.HighestScore {
				d.HighestScore = c.Runs
			}
			switch {
			case c.Runs >= 100:
				d.Hundreds++
			case c.Runs >= 50:
				d.Fifties++
			}
		}
		for _, c := range inn.Bowling {
			d := get(c.Player)
			d.WicketsTaken += c.Wickets
			d.BallsBowled += c.Balls
			d.RunsConceded += c.Runs
			d.MaidenOvers += c.Maidens
			d.DotBalls += c.Dots
			// A player bowls in at most one innings per match, so the
			// match figures are simply this card's figures.
			if c.Balls > 0 {
				d.BestBowling = BowlingFigures{Wickets: c.Wickets, Runs: c.Runs}
			}
		}
		for _, c := range inn.Fielding {
			d := get(c.Player)
			d.Catches += c.Catches
			d.Stumpings += c.Stumpings
			d.RunOuts += c.RunOuts
		}
	}

	if snap.ManOfTheMatch != "" {
		get(snap.ManOfTheMatch).ManOfTheMatch++
	}
	for _, d := range deltas {
		d.MatchesPlayed = 1
	}
	return deltas, nil
}
