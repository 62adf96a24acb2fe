package simulator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ayush9889/score-wise/internal/domain/match"
)

// Scorecard renders a completed (or in-progress) match snapshot as a
// printable scorecard.
func Scorecard(snap *match.Snapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Match %s (%d overs)\n", snap.MatchID, snap.TotalOvers)
	if snap.First != nil {
		b.WriteString(inningsCard(snap.First))
	}
	if snap.Second != nil {
		b.WriteString(inningsCard(snap.Second))
	}
	if snap.Result.Kind != match.ResultNone {
		switch snap.Result.Kind {
		case match.ResultTie:
			b.WriteString("Result: match tied\n")
		case match.ResultWonByRuns:
			fmt.Fprintf(&b, "Result: %s won by %d runs\n", snap.Result.Winner, snap.Result.Margin)
		case match.ResultWonByWickets:
			fmt.Fprintf(&b, "Result: %s won by %d wickets\n", snap.Result.Winner, snap.Result.Margin)
		}
	}
	if snap.ManOfTheMatch != "" {
		fmt.Fprintf(&b, "Man of the match: %s\n", snap.ManOfTheMatch)
	}
	return b.String()
}

func inningsCard(inn *match.Innings) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s innings: %d/%d in %s overs (RR %.2f)\n",
		inn.BattingTeam, inn.Runs, inn.Wickets, inn.Overs, inn.RunRate())

	bat := table.NewWriter()
	bat.SetStyle(table.StyleLight)
	bat.AppendHeader(table.Row{"Batsman", "R", "B", "4s", "6s", "SR", "Dismissal"})
	for _, player := range inn.BattingOrder {
		card, ok := inn.Batting[player]
		if !ok {
			continue
		}
		sr := 0.0
		if card.Balls > 0 {
			sr = float64(card.Runs) / float64(card.Balls) * 100
		}
		bat.AppendRow(table.Row{
			card.Player, card.Runs, card.Balls, card.Fours, card.Sixes,
			fmt.Sprintf("%.1f", sr), dismissalText(card),
		})
	}
	bat.AppendFooter(table.Row{"Extras", inn.Extras.Total(), "", "", "", "", ""})
	b.WriteString(bat.Render())
	b.WriteString("\n")

	bowl := table.NewWriter()
	bowl.SetStyle(table.StyleLight)
	bowl.AppendHeader(table.Row{"Bowler", "O", "M", "R", "W", "Econ"})
	for _, card := range sortedBowling(inn) {
		overs := card.Overs()
		econ := 0.0
		if card.Balls > 0 {
			econ = float64(card.Runs) / overs.Float()
		}
		bowl.AppendRow(table.Row{
			card.Player, overs.String(), card.Maidens, card.Runs, card.Wickets,
			fmt.Sprintf("%.2f", econ),
		})
	}
	b.WriteString(bowl.Render())
	b.WriteString("\n")

	if len(inn.FallOfWickets) > 0 {
		parts := make([]string, 0, len(inn.FallOfWickets))
		for _, fw := range inn.FallOfWickets {
			parts = append(parts, fmt.Sprintf("%d-%d (%s, %s)", fw.Wicket, fw.Score, fw.Batsman, fw.Overs))
		}
		fmt.Fprintf(&b, "Fall of wickets: %s\n", strings.Join(parts, ", "))
	}
	return b.String()
}

func dismissalText(card *match.BattingCard) string {
	if !card.Out {
		if card.Balls == 0 && card.Runs == 0 && card.Dismissal == "" {
			return "did not bat"
		}
		if card.Dismissal != "" {
			return string(card.Dismissal)
		}
		return "not out"
	}
	switch {
	case card.Fielder != "" && card.Bowler != "":
		return fmt.Sprintf("%s (%s b %s)", card.Dismissal, card.Fielder, card.Bowler)
	case card.Bowler != "":
		return fmt.Sprintf("%s b %s", card.Dismissal, card.Bowler)
	case card.Fielder != "":
		return fmt.Sprintf("%s (%s)", card.Dismissal, card.Fielder)
	default:
		return string(card.Dismissal)
	}
}

// sortedBowling returns bowling cards in the order bowlers appeared.
func sortedBowling(inn *match.Innings) []*match.BowlingCard {
	cards := make([]*match.BowlingCard, 0, len(inn.Bowling))
	for _, c := range inn.Bowling {
		cards = append(cards, c)
	}
	// Map order is random; sort by name for stable output.
	sort.Slice(cards, func(i, j int) bool { return cards[i].Player < cards[j].Player })
	return cards
}
