// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/langkah/internal/domain/model"
)

// TeamsDependencies defines the interface for team reference operations.
type TeamsDependencies interface {
	Teams(ctx context.Context) []model.Team
	CreateTeam(ctx context.Context, t model.Team) (model.Team, error)
	UpdateTeam(ctx context.Context, t model.Team) (model.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

// TeamsHandler handles team reference requests.
type TeamsHandler struct {
	deps TeamsDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamsDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

type teamRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name" validate:"required"`
	Number string `json:"number" validate:"required"`
	Level  string `json:"level" validate:"required"`
	Gender string `json:"gender" validate:"required"`
}

// HandleTeams routes /teams by method. GET is public, mutations reach
// this handler only for administrators.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request, _ model.User) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	case http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *TeamsHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Teams(r.Context()))
}

func (h *TeamsHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_team"
	t, ok := h.decode(w, r, op)
	if !ok {
		return
	}

	created, err := h.deps.CreateTeam(r.Context(), t)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *TeamsHandler) update(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_team"
	t, ok := h.decode(w, r, op)
	if !ok {
		return
	}
	if t.ID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	updated, err := h.deps.UpdateTeam(r.Context(), t)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *TeamsHandler) delete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_team"
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.DeleteTeam(r.Context(), id); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
}

func (h *TeamsHandler) decode(w http.ResponseWriter, r *http.Request, op string) (model.Team, bool) {
	var req teamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.Team{}, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.Team{}, false
	}
	level, err := model.ParseLevel(req.Level)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.Team{}, false
	}
	gender, err := model.ParseGender(req.Gender)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.Team{}, false
	}

	return model.Team{
		ID:     req.ID,
		Name:   req.Name,
		Number: req.Number,
		Level:  level,
		Gender: gender,
	}, true
}
