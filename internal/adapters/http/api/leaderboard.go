package api

import (
	"context"
	"net/http"
	"strconv"
)

// LeaderboardHandler serves the batting and bowling career leaderboards.
type LeaderboardHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps Dependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleBatting handles GET /leaderboard/batting?limit=N requests.
func (h *LeaderboardHandler) HandleBatting(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.leaderboard_batting", h.deps.TopBatsmen)
}

// HandleBowling handles GET /leaderboard/bowling?limit=N requests.
func (h *LeaderboardHandler) HandleBowling(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.leaderboard_bowling", h.deps.TopBowlers)
}

func (h *LeaderboardHandler) handle(w http.ResponseWriter, r *http.Request, op string, top func(context.Context, int) ([]Entry, error)) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := top(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
