// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/langkah/internal/domain/model"
)

// ScoresDependencies defines the interface for ledger operations.
type ScoresDependencies interface {
	SubmitScore(ctx context.Context, submitter model.User, e model.ScoreEntry) (bool, error)
	ResetScores(ctx context.Context, submitter model.User) error
}

// ScoresHandler handles score submission and ledger reset requests.
type ScoresHandler struct {
	deps ScoresDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoresDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// scoreRequest mirrors the wire shape for POST /scores.
type scoreRequest struct {
	TeamID  string         `json:"teamId" validate:"required"`
	PostID  string         `json:"postId" validate:"required"`
	JudgeID string         `json:"judgeId" validate:"required"`
	Scores  map[string]int `json:"scores" validate:"required"`
	Notes   string         `json:"notes"`
}

// HandleScores handles POST /scores (submit) and DELETE /scores (reset).
func (h *ScoresHandler) HandleScores(w http.ResponseWriter, r *http.Request, user model.User) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r, user)
	case http.MethodDelete:
		h.handleReset(w, r, user)
	default:
		http.NotFound(w, r)
	}
}

func (h *ScoresHandler) handleSubmit(w http.ResponseWriter, r *http.Request, user model.User) {
	const op = "api.submit_score"

	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	entry := model.ScoreEntry{
		TeamID:  req.TeamID,
		PostID:  req.PostID,
		JudgeID: req.JudgeID,
		Scores:  req.Scores,
		Notes:   req.Notes,
	}

	replaced, err := h.deps.SubmitScore(r.Context(), user, entry)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "ok", Replaced: replaced})
}

func (h *ScoresHandler) handleReset(w http.ResponseWriter, r *http.Request, user model.User) {
	const op = "api.reset_scores"

	if err := h.deps.ResetScores(r.Context(), user); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "all scores have been reset"})
}
