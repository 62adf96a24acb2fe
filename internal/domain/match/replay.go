package match

import (
	"fmt"

	"github.com/ayush9889/score-wise/internal/domain/extras"
	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/internal/domain/overs"
	"github.com/ayush9889/score-wise/internal/domain/wicket"
)

// Replay folds a ball ledger left-to-right into a match snapshot. It is
// pure and deterministic: the same configuration, second-innings openers,
// and ledger prefix always yield an identical snapshot. A nil second is
// valid until the first innings completes; once completed, further balls
// require the openers to have been supplied.
func Replay(cfg model.Config, second *model.Openers, balls []model.Ball) (*Snapshot, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	f := newFold(cfg, second)
	for i := range balls {
		if err := f.apply(balls[i]); err != nil {
			return nil, fmt.Errorf("ball %d: %w", i, err)
		}
	}
	return f.snap, nil
}

// fold is the accumulator state of a replay. Everything externally
// visible lives on snap; the rest is per-over bookkeeping.
type fold struct {
	cfg     model.Config
	second  *model.Openers
	snap    *Snapshot
	batting model.Team
	bowling model.Team
	over    overs.State
	// overRuns is the batting team's runs in the over in progress,
	// used for maiden detection.
	overRuns int
}

func newFold(cfg model.Config, second *model.Openers) *fold {
	bat := cfg.BattingFirst()
	bowl := cfg.BowlingFirst()
	f := &fold{
		cfg:     cfg,
		second:  second,
		batting: bat,
		bowling: bowl,
	}
	f.snap = &Snapshot{
		MatchID:       cfg.MatchID,
		TotalOvers:    cfg.TotalOvers,
		State:         StateFirstInnings,
		InningsNumber: 1,
		Striker:       cfg.Openers.Striker,
		NonStriker:    cfg.Openers.NonStriker,
		Bowler:        cfg.Openers.Bowler,
		First:         newInnings(1, bat.Name, bowl.Name, cfg.Openers.Striker, cfg.Openers.NonStriker),
		StartedAt:     cfg.StartedAt,
	}
	return f
}

func newInnings(number int, battingTeam, bowlingTeam, striker, nonStriker string) *Innings {
	return &Innings{
		Number:      number,
		BattingTeam: battingTeam,
		BowlingTeam: bowlingTeam,
		Current:     Partnership{Bat1: striker, Bat2: nonStriker},
		Batting:     make(map[string]*BattingCard),
		Bowling:     make(map[string]*BowlingCard),
		Fielding:    make(map[string]*FieldingCard),
	}
}

// resolved carries everything fallible about a delivery, computed before
// any state is mutated so rejection leaves the fold untouched.
type resolved struct {
	cls        extras.Classification
	att        wicket.Attribution
	striker    string
	nonStriker string
	bowler     string
	newBowler  bool // bowler adopted for a fresh over
	outBatsman string
}

// apply validates one delivery against the current state and commits it.
func (f *fold) apply(b model.Ball) error {
	r, err := f.resolve(b)
	if err != nil {
		return err
	}
	return f.commit(b, r)
}

func (f *fold) commit(b model.Ball, r resolved) error {
	inn := f.snap.CurrentInnings()

	// Adopt the stated ends; after a wicket this introduces the new
	// batsman into the vacant slot.
	f.snap.Striker = r.striker
	f.snap.NonStriker = r.nonStriker
	if r.newBowler {
		f.snap.Bowler = r.bowler
		f.snap.AwaitingBowler = false
	}

	bat := f.battingCard(inn, r.striker)
	f.battingCard(inn, r.nonStriker)
	bw := f.bowlingCard(inn, r.bowler)
	if inn.Current.Bat2 == "" {
		if inn.Current.Bat1 == r.striker {
			inn.Current.Bat2 = r.nonStriker
		} else {
			inn.Current.Bat2 = r.striker
		}
	}

	teamRuns := r.cls.TeamRuns()
	inn.Runs += teamRuns
	inn.Extras.Add(r.cls.Extras)
	bat.Runs += r.cls.BatsmanRuns
	if r.cls.BallFaced {
		bat.Balls++
	}
	if r.cls.Four {
		bat.Fours++
	}
	if r.cls.Six {
		bat.Sixes++
	}

	bw.Runs += r.cls.BatsmanRuns + r.cls.Extras.Wides + r.cls.Extras.NoBalls
	if r.cls.Legal {
		bw.Balls++
		if teamRuns == 0 {
			bw.Dots++
		}
	}

	inn.Current.Runs += teamRuns
	if r.cls.Legal {
		inn.Current.Balls++
	}
	f.overRuns += teamRuns

	overComplete := f.over.OnDelivery(r.cls.Legal)
	inn.LegalBalls = f.over.LegalBalls
	inn.Overs = f.over.Overs()

	if b.Wicket {
		f.commitWicket(inn, b, r, bw)
	}

	if overComplete {
		if f.overRuns == 0 {
			bw.Maidens++
		}
		f.overRuns = 0
	}

	if f.inningsEnded(inn) {
		if err := f.finalizeInnings(inn); err != nil {
			return err
		}
	} else {
		// Strike rotation is skipped entirely on an innings-ending ball.
		if overs.RotatesOnRuns(b.Runs) {
			f.snap.Striker, f.snap.NonStriker = f.snap.NonStriker, f.snap.Striker
		}
		if overComplete {
			f.snap.Striker, f.snap.NonStriker = f.snap.NonStriker, f.snap.Striker
			f.snap.PrevBowler = f.snap.Bowler
			f.snap.Bowler = ""
			f.snap.AwaitingBowler = true
		}
	}

	f.snap.Balls++
	return nil
}

func (f *fold) commitWicket(inn *Innings, b model.Ball, r resolved, bw *BowlingCard) {
	inn.Wickets++
	inn.FallOfWickets = append(inn.FallOfWickets, FallOfWicket{
		Wicket:  inn.Wickets,
		Score:   inn.Runs,
		Overs:   inn.Overs,
		Batsman: r.outBatsman,
		Kind:    b.Dismissal,
	})

	out := f.battingCard(inn, r.outBatsman)
	out.Dismissal = b.Dismissal
	out.Out = r.att.CountsAsOut
	if r.att.BowlerWicket {
		out.Bowler = r.bowler
		bw.Wickets++
	}
	if r.att.FielderCredit != wicket.CreditNone {
		out.Fielder = b.Fielder
		fc := f.fieldingCard(inn, b.Fielder)
		switch r.att.FielderCredit {
		case wicket.CreditCatch:
			fc.Catches++
		case wicket.CreditStumping:
			fc.Stumpings++
		case wicket.CreditRunOut:
			fc.RunOuts++
		}
	}

	// Close the partnership and open a fresh one with the survivor;
	// the incoming batsman joins on the next delivery.
	if inn.Current.Runs > 0 || inn.Current.Balls > 0 {
		inn.Partnerships = append(inn.Partnerships, inn.Current)
	}
	survivor := f.snap.NonStriker
	if r.outBatsman == f.snap.NonStriker {
		survivor = f.snap.Striker
		f.snap.NonStriker = ""
	} else {
		f.snap.Striker = ""
	}
	inn.Current = Partnership{Bat1: survivor}
}

func (f *fold) battingCard(inn *Innings, player string) *BattingCard {
	if c, ok := inn.Batting[player]; ok {
		return c
	}
	c := &BattingCard{Player: player}
	inn.Batting[player] = c
	inn.BattingOrder = append(inn.BattingOrder, player)
	return c
}

func (f *fold) bowlingCard(inn *Innings, player string) *BowlingCard {
	if c, ok := inn.Bowling[player]; ok {
		return c
	}
	c := &BowlingCard{Player: player}
	inn.Bowling[player] = c
	return c
}

func (f *fold) fieldingCard(inn *Innings, player string) *FieldingCard {
	if c, ok := inn.Fielding[player]; ok {
		return c
	}
	c := &FieldingCard{Player: player}
	inn.Fielding[player] = c
	return c
}
