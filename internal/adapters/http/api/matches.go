package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayush9889/score-wise/internal/domain/model"
	"github.com/ayush9889/score-wise/internal/domain/scorer"
)

// MatchesHandler handles match lifecycle and scoring requests.
type MatchesHandler struct {
	deps Dependencies
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies) *MatchesHandler {
	return &MatchesHandler{deps: deps}
}

// inningsRequest mirrors POST /matches/{id}/innings.
type inningsRequest struct {
	Striker    string `json:"striker"`
	NonStriker string `json:"non_striker"`
	Bowler     string `json:"bowler"`
}

// awardRequest mirrors POST /matches/{id}/motm.
type awardRequest struct {
	Player string `json:"player"`
}

// HandleMatches handles the collection routes: POST /matches creates a
// match from its configuration, GET /matches is not served.
func (h *MatchesHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var cfg model.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, err := h.deps.CreateMatch(r.Context(), cfg)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// HandleMatch dispatches the per-match routes:
//
//	GET  /matches/{id}          current snapshot
//	GET  /matches/{id}/export   persisted representation
//	POST /matches/{id}/balls    record a delivery
//	POST /matches/{id}/undo     rewind the last delivery
//	POST /matches/{id}/redo     re-apply the last undone delivery
//	POST /matches/{id}/innings  start the second innings
//	POST /matches/{id}/motm     set the man of the match
//	POST /matches/import        register a persisted match
func (h *MatchesHandler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/matches/")
	if path == "import" {
		h.handleImport(w, r)
		return
	}

	id, action, _ := strings.Cut(path, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch action {
	case "":
		h.handleSnapshot(w, r, id)
	case "export":
		h.handleExport(w, r, id)
	case "balls":
		h.handleBall(w, r, id)
	case "undo":
		h.handleUndo(w, r, id)
	case "redo":
		h.handleRedo(w, r, id)
	case "innings":
		h.handleInnings(w, r, id)
	case "motm":
		h.handleAward(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *MatchesHandler) handleSnapshot(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.get_match"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Snapshot(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *MatchesHandler) handleExport(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.export_match"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	export, err := h.deps.Export(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, export)
}

func (h *MatchesHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var export scorer.Export
	if err := json.NewDecoder(r.Body).Decode(&export); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, err := h.deps.Import(r.Context(), export)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (h *MatchesHandler) handleBall(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.record_ball"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var ball model.Ball
	if err := json.NewDecoder(r.Body).Decode(&ball); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, err := h.deps.AppendBall(r.Context(), id, ball)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *MatchesHandler) handleUndo(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.undo"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Undo(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *MatchesHandler) handleRedo(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.redo"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Redo(r.Context(), id)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *MatchesHandler) handleInnings(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.start_second_innings"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req inningsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, err := h.deps.StartSecondInnings(r.Context(), id, model.Openers{
		Striker:    req.Striker,
		NonStriker: req.NonStriker,
		Bowler:     req.Bowler,
	})
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *MatchesHandler) handleAward(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.set_man_of_the_match"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req awardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	snap, err := h.deps.SetManOfTheMatch(r.Context(), id, req.Player)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
