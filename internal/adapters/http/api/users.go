// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/langkah/internal/domain/model"
)

// UsersDependencies defines the interface for user reference operations.
type UsersDependencies interface {
	Users(ctx context.Context) []model.User
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	UpdateUser(ctx context.Context, u model.User) (model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// UsersHandler handles user reference requests.
type UsersHandler struct {
	deps UsersDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UsersDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

type userRequest struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name" validate:"required"`
	Role                string   `json:"role" validate:"required"`
	Password            string   `json:"password"`
	AssignedPostID      string   `json:"assignedPostId"`
	AssignedCriteriaIDs []string `json:"assignedCriteriaIds"`
	RovingJudge         bool     `json:"rovingJudge"`
}

// HandleUsers routes /users by method. GET lists users without their
// passwords; mutations reach this handler only for administrators.
func (h *UsersHandler) HandleUsers(w http.ResponseWriter, r *http.Request, _ model.User) {
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

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Users(r.Context()))
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_user"
	u, ok := h.decode(w, r, op)
	if !ok {
		return
	}

	created, err := h.deps.CreateUser(r.Context(), u)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *UsersHandler) update(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_user"
	u, ok := h.decode(w, r, op)
	if !ok {
		return
	}
	if u.ID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	updated, err := h.deps.UpdateUser(r.Context(), u)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *UsersHandler) delete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_user"
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.DeleteUser(r.Context(), id); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
}

func (h *UsersHandler) decode(w http.ResponseWriter, r *http.Request, op string) (model.User, bool) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.User{}, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.User{}, false
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.User{}, false
	}

	return model.User{
		ID:                  req.ID,
		Name:                req.Name,
		Role:                role,
		Password:            req.Password,
		AssignedPostID:      req.AssignedPostID,
		AssignedCriteriaIDs: req.AssignedCriteriaIDs,
		RovingJudge:         req.RovingJudge,
	}, true
}
