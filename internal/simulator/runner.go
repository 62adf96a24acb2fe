package simulator

import (
	"context"
	"fmt"
	"os"

	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/pkg/logger"
)

// safety bound: a 50-over match has well under 800 deliveries even with
// a pathological extras rate.
const maxDeliveriesPerMatch = 2000

// Run plays Config.Matches full matches against the service and prints
// a scorecard for each.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("simulator")
	c := newClient(cfg.BaseURL, cfg.Timeout)
	stats := &Stats{}

	log.Info(ctx, "starting simulation",
		logger.Int("matches", cfg.Matches),
		logger.Int("overs", cfg.Overs),
		logger.Any("seed", cfg.Seed),
	)

	for i := 0; i < cfg.Matches; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulation cancelled: %w", err)
		}
		snap, err := playMatch(ctx, c, cfg, i, stats)
		if err != nil {
			return fmt.Errorf("match %d: %w", i, err)
		}
		stats.addMatch()
		fmt.Fprintln(os.Stdout, Scorecard(snap))
	}

	log.Info(ctx, "simulation finished",
		logger.Any("matches", stats.MatchesPlayed),
		logger.Any("balls", stats.BallsSubmitted),
		logger.Any("wickets", stats.Wickets),
		logger.Any("rejected", stats.BallsRejected),
	)
	return nil
}

// playMatch drives one match from creation to completion.
func playMatch(ctx context.Context, c *client, cfg *Config, matchNo int, stats *Stats) (*match.Snapshot, error) {
	log := logger.Get().Named("simulator")
	gen := newGenerator(cfg.Seed, matchNo, cfg.Overs)

	snap, err := c.createMatch(ctx, gen.cfg)
	if err != nil {
		return nil, fmt.Errorf("create match: %w", err)
	}
	log.Info(ctx, "match created", logger.String("matchID", snap.MatchID))

	for i := 0; snap.State != match.StateComplete; i++ {
		if i > maxDeliveriesPerMatch {
			return nil, fmt.Errorf("match %s did not finish after %d deliveries", snap.MatchID, i)
		}

		if snap.State == match.StateInningsBreak {
			snap, err = c.startSecondInnings(ctx, snap.MatchID, gen.secondOpeners())
			if err != nil {
				return nil, fmt.Errorf("start second innings: %w", err)
			}
			continue
		}

		ball := gen.nextBall(snap)
		next, err := c.recordBall(ctx, snap.MatchID, ball)
		if err != nil {
			stats.addRejected()
			return nil, fmt.Errorf("ball %d: %w", i, err)
		}
		stats.addBall()
		if ball.Wicket {
			stats.addWicket()
		}
		if cfg.Verbose {
			log.Debug(ctx, "ball recorded",
				logger.String("matchID", snap.MatchID),
				logger.Int("runs", ball.Runs),
				logger.String("dismissal", string(ball.Dismissal)),
			)
		}
		snap = next
	}

	if motm := pickManOfTheMatch(snap); motm != "" {
		snap, err = c.setManOfTheMatch(ctx, snap.MatchID, motm)
		if err != nil {
			return nil, fmt.Errorf("set man of the match: %w", err)
		}
	}
	return snap, nil
}

// pickManOfTheMatch awards the highest scorer on the winning side, or
// overall on a tie.
func pickManOfTheMatch(snap *match.Snapshot) string {
	best, bestRuns := "", -1
	for _, inn := range []*match.Innings{snap.First, snap.Second} {
		if inn == nil {
			continue
		}
		if snap.Result.Winner != "" && inn.BattingTeam != snap.Result.Winner {
			continue
		}
		for _, card := range inn.Batting {
			if card.Runs > bestRuns || (card.Runs == bestRuns && card.Player < best) {
				best, bestRuns = card.Player, card.Runs
			}
		}
	}
	return best
}
