// Package model contains domain models passed between layers.
package model

// DismissalKind identifies how a batsman's innings ended.
type DismissalKind string

// Closed set of dismissal kinds.
const (
	DismissalNone      DismissalKind = ""
	DismissalBowled    DismissalKind = "bowled"
	DismissalCaught    DismissalKind = "caught"
	DismissalLBW       DismissalKind = "lbw"
	DismissalRunOut    DismissalKind = "run_out"
	DismissalStumped   DismissalKind = "stumped"
	DismissalHitWicket DismissalKind = "hit_wicket"
	DismissalRetired   DismissalKind = "retired"
)

// Valid reports whether k is one of the recognized dismissal kinds.
func (k DismissalKind) Valid() bool {
	switch k {
	case DismissalBowled, DismissalCaught, DismissalLBW, DismissalRunOut,
		DismissalStumped, DismissalHitWicket, DismissalRetired:
		return true
	}
	return false
}

// Ball is one delivery and its outcome. A Ball is immutable once appended
// to a ledger; corrections truncate the ledger and re-append.
type Ball struct {
	Seq         int           `json:"seq"`
	Innings     int           `json:"innings"`
	BattingTeam string        `json:"batting_team"`
	Striker     string        `json:"striker"`
	NonStriker  string        `json:"non_striker"`
	Bowler      string        `json:"bowler"`
	Runs        int           `json:"runs"` // runs physically run (or boundary runs)
	Wide        bool          `json:"wide,omitempty"`
	NoBall      bool          `json:"no_ball,omitempty"`
	Bye         bool          `json:"bye,omitempty"`
	LegBye      bool          `json:"leg_bye,omitempty"`
	Wicket      bool          `json:"wicket,omitempty"`
	Dismissal   DismissalKind `json:"dismissal,omitempty"`
	Fielder     string        `json:"fielder,omitempty"`
	OutBatsman  string        `json:"out_batsman,omitempty"` // empty means the striker
}

// IsExtra reports whether any extra flag is set on the delivery.
func (b Ball) IsExtra() bool {
	return b.Wide || b.NoBall || b.Bye || b.LegBye
}
