package model

import "time"

// TossDecision is what the toss winner elected to do.
type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// Team is a named, ordered roster of player identifiers.
type Team struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

// Has reports whether the player id is on the roster.
func (t Team) Has(player string) bool {
	for _, p := range t.Players {
		if p == player {
			return true
		}
	}
	return false
}

// Openers names the batting pair and opening bowler for an innings.
type Openers struct {
	Striker    string `json:"striker"`
	NonStriker string `json:"non_striker"`
	Bowler     string `json:"bowler"`
}

// Config is the immutable match configuration. Together with the ball
// ledger (and the second-innings openers once supplied) it fully
// determines every derived number in a match.
type Config struct {
	MatchID      string       `json:"match_id"`
	TeamA        Team         `json:"team_a"`
	TeamB        Team         `json:"team_b"`
	TossWinner   string       `json:"toss_winner"`   // team name
	TossDecision TossDecision `json:"toss_decision"` // bat or bowl
	TotalOvers   int          `json:"total_overs"`
	Openers      Openers      `json:"openers"` // first-innings openers
	StartedAt    time.Time    `json:"started_at"`
}

// BattingFirst resolves which team bats the first innings from the toss.
func (c Config) BattingFirst() Team {
	winnerIsA := c.TossWinner == c.TeamA.Name
	if (winnerIsA && c.TossDecision == TossBat) || (!winnerIsA && c.TossDecision == TossBowl) {
		return c.TeamA
	}
	return c.TeamB
}

// BowlingFirst resolves which team bowls the first innings.
func (c Config) BowlingFirst() Team {
	if c.BattingFirst().Name == c.TeamA.Name {
		return c.TeamB
	}
	return c.TeamA
}

// TeamByName returns the roster for a team name.
func (c Config) TeamByName(name string) (Team, bool) {
	switch name {
	case c.TeamA.Name:
		return c.TeamA, true
	case c.TeamB.Name:
		return c.TeamB, true
	}
	return Team{}, false
}
