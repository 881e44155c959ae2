// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/langkah/internal/domain/model"
)

// DataDependencies defines the interface for the combined data dump.
type DataDependencies interface {
	Teams(ctx context.Context) []model.Team
	Users(ctx context.Context) []model.User
	Posts(ctx context.Context) []model.Post
	ScoreEntries(ctx context.Context) []model.ScoreEntry
}

// DataHandler serves the combined application state in one response,
// which is how dashboards bootstrap without four round trips.
type DataHandler struct {
	deps DataDependencies
}

// NewDataHandler creates a new data handler.
func NewDataHandler(deps DataDependencies) *DataHandler {
	return &DataHandler{deps: deps}
}

type dataResponse struct {
	Teams  []model.Team       `json:"teams"`
	Users  []model.User       `json:"users"`
	Posts  []model.Post       `json:"posts"`
	Scores []model.ScoreEntry `json:"scores"`
}

// HandleGetData handles GET /data requests.
func (h *DataHandler) HandleGetData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()
	writeJSON(w, http.StatusOK, dataResponse{
		Teams:  h.deps.Teams(ctx),
		Users:  h.deps.Users(ctx),
		Posts:  h.deps.Posts(ctx),
		Scores: h.deps.ScoreEntries(ctx),
	})
}
