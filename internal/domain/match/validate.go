package match

import (
	"fmt"

	"github.com/ayush9889/score-wise/internal/domain/extras"
	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/internal/domain/wicket"
)

// ValidateConfig checks the immutable match configuration.
func ValidateConfig(cfg model.Config) error {
	if cfg.TeamA.Name == "" || cfg.TeamB.Name == "" {
		return invalidf("both teams must be named")
	}
	if cfg.TeamA.Name == cfg.TeamB.Name {
		return invalidf("team names must differ")
	}
	if cfg.TotalOvers < 1 {
		return invalidf("total overs must be at least 1")
	}
	if cfg.TossWinner != cfg.TeamA.Name && cfg.TossWinner != cfg.TeamB.Name {
		return invalidf("toss winner %q is not a participating team", cfg.TossWinner)
	}
	if cfg.TossDecision != model.TossBat && cfg.TossDecision != model.TossBowl {
		return invalidf("toss decision must be %q or %q", model.TossBat, model.TossBowl)
	}
	for _, t := range []model.Team{cfg.TeamA, cfg.TeamB} {
		if len(t.Players) < 2 {
			return invalidf("team %s needs at least two players", t.Name)
		}
		seen := make(map[string]bool, len(t.Players))
		for _, p := range t.Players {
			if p == "" {
				return invalidf("team %s has an empty player id", t.Name)
			}
			if seen[p] {
				return invalidf("team %s lists player %s twice", t.Name, p)
			}
			seen[p] = true
		}
	}
	for _, p := range cfg.TeamA.Players {
		if cfg.TeamB.Has(p) {
			return invalidf("player %s appears on both teams", p)
		}
	}

	bat := cfg.BattingFirst()
	bowl := cfg.BowlingFirst()
	op := cfg.Openers
	switch {
	case op.Striker == "" || op.NonStriker == "" || op.Bowler == "":
		return invalidf("first-innings openers incomplete")
	case op.Striker == op.NonStriker:
		return invalidf("openers must be two different batsmen")
	case !bat.Has(op.Striker):
		return invalidf("striker %s is not on batting side %s", op.Striker, bat.Name)
	case !bat.Has(op.NonStriker):
		return invalidf("non-striker %s is not on batting side %s", op.NonStriker, bat.Name)
	case !bowl.Has(op.Bowler):
		return invalidf("bowler %s is not on bowling side %s", op.Bowler, bowl.Name)
	}
	return nil
}

// resolve validates a delivery against the current fold state without
// mutating anything. All scoring-rule rejections surface here, wrapped
// as ErrValidation; wrong-state appends surface as ErrState.
func (f *fold) resolve(b model.Ball) (resolved, error) {
	switch f.snap.State {
	case StateInningsBreak:
		return resolved{}, statef("first innings complete; second innings not started")
	case StateComplete:
		return resolved{}, statef("match is complete")
	}
	inn := f.snap.CurrentInnings()

	if b.Innings != inn.Number {
		return resolved{}, invalidf("ball is for innings %d; innings %d in progress", b.Innings, inn.Number)
	}
	if b.BattingTeam != inn.BattingTeam {
		return resolved{}, invalidf("batting team %q does not match %q", b.BattingTeam, inn.BattingTeam)
	}

	cls, err := extras.Classify(b.Runs, b.Wide, b.NoBall, b.Bye, b.LegBye)
	if err != nil {
		return resolved{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	r := resolved{cls: cls, striker: b.Striker, nonStriker: b.NonStriker, bowler: b.Bowler}

	if err := f.resolveBatsmen(inn, b); err != nil {
		return resolved{}, err
	}

	newBowler, err := f.resolveBowler(b)
	if err != nil {
		return resolved{}, err
	}
	r.newBowler = newBowler

	if b.Wicket {
		att, out, err := f.resolveWicket(b)
		if err != nil {
			return resolved{}, err
		}
		r.att = att
		r.outBatsman = out
	} else if b.Dismissal != model.DismissalNone || b.Fielder != "" || b.OutBatsman != "" {
		return resolved{}, invalidf("dismissal fields set without the wicket flag")
	}

	return r, nil
}

func (f *fold) resolveBatsmen(inn *Innings, b model.Ball) error {
	if b.Striker == "" || b.NonStriker == "" {
		return invalidf("striker and non-striker are required")
	}
	if b.Striker == b.NonStriker {
		return invalidf("striker and non-striker must differ")
	}
	for _, p := range []string{b.Striker, b.NonStriker} {
		if !f.batting.Has(p) {
			return invalidf("batsman %s is not on batting side %s", p, f.batting.Name)
		}
		if c, ok := inn.Batting[p]; ok && c.Dismissal != model.DismissalNone {
			return invalidf("batsman %s is already dismissed", p)
		}
	}

	curS, curN := f.snap.Striker, f.snap.NonStriker
	if curS != "" && curN != "" {
		// No vacancy: the engine's rotation state is authoritative.
		if b.Striker != curS || b.NonStriker != curN {
			return invalidf("batsmen do not match the crease; expected %s facing %s", curS, curN)
		}
		return nil
	}

	// One end is vacant after a wicket; the surviving batsman must stay
	// and the other name is the incoming batsman.
	survivor := curS
	if survivor == "" {
		survivor = curN
	}
	if b.Striker != survivor && b.NonStriker != survivor {
		return invalidf("batsman %s must remain at the crease", survivor)
	}
	return nil
}

func (f *fold) resolveBowler(b model.Ball) (newBowler bool, err error) {
	if b.Bowler == "" {
		return false, invalidf("bowler is required")
	}
	if !f.bowling.Has(b.Bowler) {
		return false, invalidf("bowler %s is not on bowling side %s", b.Bowler, f.bowling.Name)
	}
	if f.snap.AwaitingBowler {
		if b.Bowler == f.snap.PrevBowler {
			return false, invalidf("bowler %s bowled the previous over", b.Bowler)
		}
		return true, nil
	}
	if b.Bowler != f.snap.Bowler {
		return false, invalidf("bowler cannot change mid-over; %s is bowling", f.snap.Bowler)
	}
	return false, nil
}

func (f *fold) resolveWicket(b model.Ball) (wicket.Attribution, string, error) {
	att, err := wicket.Resolve(b.Dismissal, b.Fielder)
	if err != nil {
		return wicket.Attribution{}, "", fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if !wicket.AllowedOnDelivery(b.Dismissal, b.Wide, b.NoBall) {
		return wicket.Attribution{}, "", invalidf("%s cannot fall on this delivery type", b.Dismissal)
	}
	if b.Fielder != "" && !f.bowling.Has(b.Fielder) {
		return wicket.Attribution{}, "", invalidf("fielder %s is not on bowling side %s", b.Fielder, f.bowling.Name)
	}

	out := b.OutBatsman
	if out == "" {
		out = b.Striker
	}
	if out != b.Striker && out != b.NonStriker {
		return wicket.Attribution{}, "", invalidf("out batsman %s is not at the crease", out)
	}
	if out != b.Striker && b.Dismissal != model.DismissalRunOut && b.Dismissal != model.DismissalRetired {
		return wicket.Attribution{}, "", invalidf("only the striker can be out %s", b.Dismissal)
	}
	return att, out, nil
}
