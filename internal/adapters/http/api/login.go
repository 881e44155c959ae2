// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/langkah/internal/domain/model"
)

// LoginDependencies defines the interface for authentication operations.
type LoginDependencies interface {
	Login(ctx context.Context, role model.Role, name, password string) (model.User, error)
}

// LoginHandler handles credential exchange requests.
type LoginHandler struct {
	deps LoginDependencies
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(deps LoginDependencies) *LoginHandler {
	return &LoginHandler{deps: deps}
}

type loginRequest struct {
	Role     string `json:"role" validate:"required,oneof=ADMIN JUDGE"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// HandleLogin handles POST /login requests. The returned token is the
// user identifier and doubles as the bearer credential for later calls.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	user, err := h.deps.Login(r.Context(), role, req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", WrapKind(op, ErrUnauthorized, err))
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: user.ID, User: user})
}
