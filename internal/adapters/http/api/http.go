// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	repository "github.com/ayush9889/score-wise/internal/adapters/repository"
	"github.com/ayush9889/score-wise/internal/domain/match"
	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/internal/domain/scorer"
	"github.com/ayush9889/score-wise/internal/domain/stats"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateMatch(ctx context.Context, cfg model.Config) (*match.Snapshot, error)
	AppendBall(ctx context.Context, matchID string, b model.Ball) (*match.Snapshot, error)
	Undo(ctx context.Context, matchID string) (*match.Snapshot, error)
	Redo(ctx context.Context, matchID string) (*match.Snapshot, error)
	StartSecondInnings(ctx context.Context, matchID string, o model.Openers) (*match.Snapshot, error)
	SetManOfTheMatch(ctx context.Context, matchID, player string) (*match.Snapshot, error)
	Snapshot(ctx context.Context, matchID string) (*match.Snapshot, error)
	Export(ctx context.Context, matchID string) (scorer.Export, error)
	Import(ctx context.Context, e scorer.Export) (*match.Snapshot, error)
	PlayerStats(ctx context.Context, player string) (*stats.PlayerStats, error)
	TopBatsmen(ctx context.Context, n int) ([]Entry, error)
	TopBowlers(ctx context.Context, n int) ([]Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = repository.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	matchesHandler     *MatchesHandler
	playersHandler     *PlayersHandler
	leaderboardHandler *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		matchesHandler:     NewMatchesHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/matches", MetricsMiddleware(s.matchesHandler.HandleMatches, "matches"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.matchesHandler.HandleMatch, "matches"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "players"))
	mux.HandleFunc("/leaderboard/batting", MetricsMiddleware(s.leaderboardHandler.HandleBatting, "leaderboard_batting"))
	mux.HandleFunc("/leaderboard/bowling", MetricsMiddleware(s.leaderboardHandler.HandleBowling, "leaderboard_bowling"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates the engine's error taxonomy to HTTP:
// malformed deliveries are 400, wrong-state operations are 409,
// unknown matches or players are 404, everything else is 500.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, match.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", Wrap(op, err))
	case errors.Is(err, match.ErrState):
		writeError(w, http.StatusConflict, "state_error", Wrap(op, err))
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// The string check stays generic to avoid coupling to every upstream package.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
