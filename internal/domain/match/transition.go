package match

import (
	"github.com/ayush9889/score-wise/internal/domain/overs"
)

// inningsEnded reports whether the innings just updated has reached a
// terminating condition: all out, overs complete, or (second innings)
// target reached.
func (f *fold) inningsEnded(inn *Innings) bool {
	if inn.Wickets >= len(f.batting.Players)-1 {
		return true
	}
	if inn.LegalBalls >= f.cfg.TotalOvers*overs.BallsPerOver {
		return true
	}
	if inn.Number == 2 && inn.Runs >= f.snap.Target {
		return true
	}
	return false
}

// finalizeInnings closes the current innings and advances the match state
// machine. Completing the first innings fixes the target; completing the
// second resolves the result. When the second-innings openers have
// already been supplied, the handoff happens immediately so a full
// replay passes through the break without a separate step.
func (f *fold) finalizeInnings(inn *Innings) error {
	if inn.Current.Runs > 0 || inn.Current.Balls > 0 {
		inn.Partnerships = append(inn.Partnerships, inn.Current)
	}
	inn.Current = Partnership{}
	inn.Closed = true

	f.snap.Striker = ""
	f.snap.NonStriker = ""
	f.snap.Bowler = ""
	f.snap.PrevBowler = ""
	f.snap.AwaitingBowler = false

	if inn.Number == 1 {
		f.snap.State = StateInningsBreak
		f.snap.Target = inn.Runs + 1
		if f.second != nil {
			return f.beginSecondInnings()
		}
		return nil
	}

	f.snap.State = StateComplete
	f.snap.Result = f.computeResult()
	return nil
}

// beginSecondInnings validates the supplied openers and opens the chase.
func (f *fold) beginSecondInnings() error {
	op := f.second
	bat := f.cfg.BowlingFirst()
	bowl := f.cfg.BattingFirst()

	switch {
	case op.Striker == "" || op.NonStriker == "" || op.Bowler == "":
		return invalidf("second-innings openers incomplete")
	case op.Striker == op.NonStriker:
		return invalidf("second-innings openers must be two different batsmen")
	case !bat.Has(op.Striker):
		return invalidf("striker %s is not on batting side %s", op.Striker, bat.Name)
	case !bat.Has(op.NonStriker):
		return invalidf("non-striker %s is not on batting side %s", op.NonStriker, bat.Name)
	case !bowl.Has(op.Bowler):
		return invalidf("bowler %s is not on bowling side %s", op.Bowler, bowl.Name)
	}

	f.batting = bat
	f.bowling = bowl
	f.over = overs.State{}
	f.overRuns = 0

	f.snap.Second = newInnings(2, bat.Name, bowl.Name, op.Striker, op.NonStriker)
	f.snap.InningsNumber = 2
	f.snap.State = StateSecondInnings
	f.snap.Striker = op.Striker
	f.snap.NonStriker = op.NonStriker
	f.snap.Bowler = op.Bowler
	return nil
}

// computeResult resolves the match outcome once the second innings ends.
func (f *fold) computeResult() Result {
	first := f.snap.First
	second := f.snap.Second
	if second.Runs >= f.snap.Target {
		return Result{
			Kind:   ResultWonByWickets,
			Winner: second.BattingTeam,
			Margin: len(f.batting.Players) - 1 - second.Wickets,
		}
	}
	if second.Runs == first.Runs {
		return Result{Kind: ResultTie}
	}
	return Result{
		Kind:   ResultWonByRuns,
		Winner: first.BattingTeam,
		Margin: first.Runs - second.Runs,
	}
}
