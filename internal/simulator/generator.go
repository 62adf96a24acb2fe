package simulator

import (
	"fmt"
	"math/rand"

	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/model"
)

// Outcome probability thresholds, sampled from a single uniform draw.
const (
	pWide   = 0.04
	pNoBall = 0.07
	pBye    = 0.09
	pLegBye = 0.12
	pWicket = 0.165
)

var teamFalcons = model.Team{
	Name: "Falcons",
	Players: []string{
		"f_rohan", "f_dhruv", "f_kiran", "f_arjun", "f_vikram",
		"f_sameer", "f_nitin", "f_manoj", "f_rahul", "f_prakash", "f_suresh",
	},
}

var teamPanthers = model.Team{
	Name: "Panthers",
	Players: []string{
		"p_akash", "p_varun", "p_tejas", "p_harish", "p_gopal",
		"p_imran", "p_lalit", "p_naveen", "p_omkar", "p_ravi", "p_zaheer",
	},
}

// generator produces deterministic deliveries for one match.
type generator struct {
	rng *rand.Rand
	cfg model.Config

	// per-innings batting order progression
	nextIn map[int]int
	// round-robin bowler index per innings
	bowlerIdx map[int]int
}

// newGenerator builds a match configuration and its delivery source.
// Matches from the same seed and sequence number are identical.
func newGenerator(seed int64, matchNo, overs int) *generator {
	rng := rand.New(rand.NewSource(seed + int64(matchNo)))

	tossWinner := teamFalcons.Name
	if rng.Intn(2) == 1 {
		tossWinner = teamPanthers.Name
	}
	decision := model.TossBat
	if rng.Intn(2) == 1 {
		decision = model.TossBowl
	}

	cfg := model.Config{
		MatchID:      fmt.Sprintf("sim-%d-%d", seed, matchNo),
		TeamA:        teamFalcons,
		TeamB:        teamPanthers,
		TossWinner:   tossWinner,
		TossDecision: decision,
		TotalOvers:   overs,
	}
	bowling := cfg.BowlingFirst()
	batting := cfg.BattingFirst()
	cfg.Openers = model.Openers{
		Striker:    batting.Players[0],
		NonStriker: batting.Players[1],
		Bowler:     bowling.Players[len(bowling.Players)-1],
	}

	return &generator{
		rng:       rng,
		cfg:       cfg,
		nextIn:    map[int]int{1: 2, 2: 2},
		bowlerIdx: map[int]int{1: len(bowling.Players) - 1, 2: len(bowling.Players) - 1},
	}
}

// secondOpeners picks the chase openers and opening bowler.
func (g *generator) secondOpeners() model.Openers {
	batting := g.cfg.BowlingFirst()
	bowling := g.cfg.BattingFirst()
	return model.Openers{
		Striker:    batting.Players[0],
		NonStriker: batting.Players[1],
		Bowler:     bowling.Players[len(bowling.Players)-1],
	}
}

// nextBall derives a valid delivery from the current snapshot. The
// crease pair comes from the snapshot, with the next batsman in the
// order filling a vacancy left by a wicket.
func (g *generator) nextBall(snap *match.Snapshot) model.Ball {
	inn := snap.CurrentInnings()
	batting := g.teamByName(inn.BattingTeam)

	striker, nonStriker := snap.Striker, snap.NonStriker
	if striker == "" {
		striker = g.incoming(snap.InningsNumber, batting)
	}
	if nonStriker == "" {
		nonStriker = g.incoming(snap.InningsNumber, batting)
	}

	bowler := snap.Bowler
	if snap.AwaitingBowler {
		bowler = g.nextBowler(snap)
	}

	b := model.Ball{
		Innings:     snap.InningsNumber,
		BattingTeam: inn.BattingTeam,
		Striker:     striker,
		NonStriker:  nonStriker,
		Bowler:      bowler,
	}

	switch draw := g.rng.Float64(); {
	case draw < pWide:
		b.Wide = true
	case draw < pNoBall:
		b.NoBall = true
		b.Runs = g.rng.Intn(2)
	case draw < pBye:
		b.Bye = true
		b.Runs = 1
	case draw < pLegBye:
		b.LegBye = true
		b.Runs = 1
	case draw < pWicket:
		g.fillWicket(&b, snap)
	default:
		b.Runs = g.batRuns()
	}
	return b
}

// batRuns samples runs off the bat with a boundary-light distribution.
func (g *generator) batRuns() int {
	switch draw := g.rng.Float64(); {
	case draw < 0.38:
		return 0
	case draw < 0.72:
		return 1
	case draw < 0.84:
		return 2
	case draw < 0.86:
		return 3
	case draw < 0.95:
		return 4
	default:
		return 6
	}
}

// fillWicket picks a dismissal valid for a legal delivery.
func (g *generator) fillWicket(b *model.Ball, snap *match.Snapshot) {
	bowling := g.bowlingTeam(snap)
	fielder := bowling.Players[g.rng.Intn(len(bowling.Players))]

	b.Wicket = true
	switch g.rng.Intn(5) {
	case 0:
		b.Dismissal = model.DismissalBowled
	case 1:
		b.Dismissal = model.DismissalCaught
		b.Fielder = fielder
	case 2:
		b.Dismissal = model.DismissalLBW
	case 3:
		b.Dismissal = model.DismissalStumped
		b.Fielder = fielder
	case 4:
		b.Dismissal = model.DismissalRunOut
		b.Fielder = fielder
		b.Runs = g.rng.Intn(2)
	}
}

// incoming returns the next batsman in the order for an innings.
func (g *generator) incoming(inningsNo int, batting model.Team) string {
	i := g.nextIn[inningsNo]
	if i >= len(batting.Players) {
		i = len(batting.Players) - 1
	}
	g.nextIn[inningsNo] = i + 1
	return batting.Players[i]
}

// nextBowler rotates through the bowling roster, never repeating the
// previous over's bowler.
func (g *generator) nextBowler(snap *match.Snapshot) string {
	bowling := g.bowlingTeam(snap)
	i := g.bowlerIdx[snap.InningsNumber]
	for {
		i = (i + 1) % len(bowling.Players)
		if bowling.Players[i] != snap.PrevBowler {
			break
		}
	}
	g.bowlerIdx[snap.InningsNumber] = i
	return bowling.Players[i]
}

func (g *generator) teamByName(name string) model.Team {
	if g.cfg.TeamA.Name == name {
		return g.cfg.TeamA
	}
	return g.cfg.TeamB
}

func (g *generator) bowlingTeam(snap *match.Snapshot) model.Team {
	inn := snap.CurrentInnings()
	return g.teamByName(inn.BowlingTeam)
}
