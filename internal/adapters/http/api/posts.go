// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/langkah/internal/domain/model"
)

// PostsDependencies defines the interface for post reference operations.
type PostsDependencies interface {
	Posts(ctx context.Context) []model.Post
	CreatePost(ctx context.Context, p model.Post) (model.Post, error)
	UpdatePost(ctx context.Context, p model.Post) (model.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// PostsHandler handles scoring post reference requests.
type PostsHandler struct {
	deps PostsDependencies
}

// NewPostsHandler creates a new posts handler.
func NewPostsHandler(deps PostsDependencies) *PostsHandler {
	return &PostsHandler{deps: deps}
}

type criterionRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	MaxScore int    `json:"maxScore" validate:"gt=0"`
}

type postRequest struct {
	ID       string             `json:"id"`
	Name     string             `json:"name" validate:"required"`
	Criteria []criterionRequest `json:"criteria" validate:"required,min=1,dive"`
}

// HandlePosts routes /posts by method. GET is public, mutations reach
// this handler only for administrators.
func (h *PostsHandler) HandlePosts(w http.ResponseWriter, r *http.Request, _ model.User) {
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

func (h *PostsHandler) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Posts(r.Context()))
}

func (h *PostsHandler) create(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_post"
	p, ok := h.decode(w, r, op)
	if !ok {
		return
	}

	created, err := h.deps.CreatePost(r.Context(), p)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *PostsHandler) update(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_post"
	p, ok := h.decode(w, r, op)
	if !ok {
		return
	}
	if p.ID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	updated, err := h.deps.UpdatePost(r.Context(), p)
	if err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *PostsHandler) delete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_post"
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	if err := h.deps.DeletePost(r.Context(), id); err != nil {
		writeDomainError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "deleted"})
}

func (h *PostsHandler) decode(w http.ResponseWriter, r *http.Request, op string) (model.Post, bool) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.Post{}, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return model.Post{}, false
	}

	criteria := make([]model.Criterion, 0, len(req.Criteria))
	for _, c := range req.Criteria {
		criteria = append(criteria, model.Criterion{ID: c.ID, Name: c.Name, MaxScore: c.MaxScore})
	}
	return model.Post{ID: req.ID, Name: req.Name, Criteria: criteria}, true
}
