// Package match derives a full match snapshot from a ball ledger. The
// replay fold is pure: the same configuration and ledger prefix always
// produce the same snapshot, which is what undo, redo, and corrections
// rely on.
package match

import (
	"time"

	"github.com/ayush9889/score-wise/internal/domain/extras"
	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/internal/domain/overs"
)

// State is the match progression state machine.
type State string

const (
	StateFirstInnings  State = "innings1_in_progress"
	StateInningsBreak  State = "innings1_complete"
	StateSecondInnings State = "innings2_in_progress"
	StateComplete      State = "match_complete"
)

// ResultKind classifies how a completed match was decided.
type ResultKind string

const (
	ResultNone         ResultKind = ""
	ResultWonByRuns    ResultKind = "won_by_runs"
	ResultWonByWickets ResultKind = "won_by_wickets"
	ResultTie          ResultKind = "tie"
)

// Result is the outcome of a completed match.
type Result struct {
	Kind   ResultKind `json:"kind"`
	Winner string     `json:"winner,omitempty"`
	Margin int        `json:"margin,omitempty"` // runs or wickets, per Kind
}

// BattingCard is one batsman's figures in an innings.
type BattingCard struct {
	Player    string              `json:"player"`
	Runs      int                 `json:"runs"`
	Balls     int                 `json:"balls"`
	Fours     int                 `json:"fours"`
	Sixes     int                 `json:"sixes"`
	Dismissal model.DismissalKind `json:"dismissal,omitempty"`
	// Out excludes retirements, which end the innings without counting
	// as a dismissal for batting statistics.
	Out     bool   `json:"out"`
	Bowler  string `json:"bowler,omitempty"`
	Fielder string `json:"fielder,omitempty"`
}

// BowlingCard is one bowler's figures in an innings.
type BowlingCard struct {
	Player  string `json:"player"`
	Balls   int    `json:"balls"`
	Maidens int    `json:"maidens"`
	Runs    int    `json:"runs"` // conceded: off the bat plus wides and no-balls
	Wickets int    `json:"wickets"`
	Dots    int    `json:"dots"`
}

// Overs renders the bowler's workload as an overs value.
func (c BowlingCard) Overs() overs.Overs {
	return overs.FromLegalBalls(c.Balls)
}

// FieldingCard is one fielder's credits in an innings.
type FieldingCard struct {
	Player    string `json:"player"`
	Catches   int    `json:"catches"`
	Stumpings int    `json:"stumpings"`
	RunOuts   int    `json:"run_outs"`
}

// FallOfWicket records the team position when a wicket fell.
type FallOfWicket struct {
	Wicket  int                 `json:"wicket"` // 1-based
	Score   int                 `json:"score"`
	Overs   overs.Overs         `json:"overs"`
	Batsman string              `json:"batsman"`
	Kind    model.DismissalKind `json:"kind"`
}

// Partnership is the runs and balls accumulated by a pair of batsmen.
type Partnership struct {
	Bat1  string `json:"bat1"`
	Bat2  string `json:"bat2,omitempty"`
	Runs  int    `json:"runs"`
	Balls int    `json:"balls"` // legal deliveries
}

// Innings is the derived scorecard of one team's turn at batting.
type Innings struct {
	Number        int                      `json:"number"`
	BattingTeam   string                   `json:"batting_team"`
	BowlingTeam   string                   `json:"bowling_team"`
	Runs          int                      `json:"runs"`
	Wickets       int                      `json:"wickets"`
	LegalBalls    int                      `json:"legal_balls"`
	Overs         overs.Overs              `json:"overs"`
	Extras        extras.Breakdown         `json:"extras"`
	FallOfWickets []FallOfWicket           `json:"fall_of_wickets,omitempty"`
	Partnerships  []Partnership            `json:"partnerships,omitempty"`
	Current       Partnership              `json:"current_partnership"`
	BattingOrder  []string                 `json:"batting_order,omitempty"`
	Batting       map[string]*BattingCard  `json:"batting"`
	Bowling       map[string]*BowlingCard  `json:"bowling"`
	Fielding      map[string]*FieldingCard `json:"fielding,omitempty"`
	Closed        bool                     `json:"closed"`
}

// RunRate is the innings run rate per over; zero before any legal ball.
func (i *Innings) RunRate() float64 {
	o := overs.FromLegalBalls(i.LegalBalls).Float()
	if o == 0 {
		return 0
	}
	return float64(i.Runs) / o
}

// Snapshot is the derived state of a match: a deterministic projection of
// the configuration plus the ball ledger. Callers must treat a returned
// snapshot as immutable.
type Snapshot struct {
	MatchID       string      `json:"match_id"`
	TotalOvers    int         `json:"total_overs"`
	State         State       `json:"state"`
	InningsNumber int         `json:"innings_number"`
	Striker       string      `json:"striker,omitempty"`
	NonStriker    string      `json:"non_striker,omitempty"`
	Bowler        string      `json:"bowler,omitempty"`
	PrevBowler    string      `json:"prev_bowler,omitempty"`
	// AwaitingBowler is set between overs: the next delivery must name a
	// bowler other than PrevBowler.
	AwaitingBowler bool      `json:"awaiting_bowler,omitempty"`
	First          *Innings  `json:"first_innings,omitempty"`
	Second         *Innings  `json:"second_innings,omitempty"`
	Target         int       `json:"target,omitempty"`
	Result         Result    `json:"result"`
	ManOfTheMatch  string    `json:"man_of_the_match,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at,omitempty"`
	Balls          int       `json:"balls"` // ledger length this snapshot derives from
}

// CurrentInnings returns the innings currently being batted, or nil
// during the innings break and after completion.
func (s *Snapshot) CurrentInnings() *Innings {
	switch s.State {
	case StateFirstInnings:
		return s.First
	case StateSecondInnings:
		return s.Second
	}
	return nil
}

// Clone returns a deep copy of the snapshot so callers can never mutate
// engine-owned state through a returned value.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.First = s.First.clone()
	out.Second = s.Second.clone()
	return &out
}

func (i *Innings) clone() *Innings {
	if i == nil {
		return nil
	}
	out := *i
	out.FallOfWickets = append([]FallOfWicket(nil), i.FallOfWickets...)
	out.Partnerships = append([]Partnership(nil), i.Partnerships...)
	out.BattingOrder = append([]string(nil), i.BattingOrder...)
	out.Batting = make(map[string]*BattingCard, len(i.Batting))
	for k, v := range i.Batting {
		c := *v
		out.Batting[k] = &c
	}
	out.Bowling = make(map[string]*BowlingCard, len(i.Bowling))
	for k, v := range i.Bowling {
		c := *v
		out.Bowling[k] = &c
	}
	out.Fielding = make(map[string]*FieldingCard, len(i.Fielding))
	for k, v := range i.Fielding {
		c := *v
		out.Fielding[k] = &c
	}
	return &out
}
