// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/internal/domain/types"
)

// RankingDependencies defines the interface for ranking operations.
type RankingDependencies interface {
	CategoryRanking(ctx context.Context, level model.Level, gender model.Gender) []types.TeamTotalScore
}

// RankingHandler handles category ranking requests.
type RankingHandler struct {
	deps RankingDependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps RankingDependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleGetRanking handles GET /ranking?level=SD&gender=Putra requests.
func (h *RankingHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_ranking"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	level, err := model.ParseLevel(r.URL.Query().Get("level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	gender, err := model.ParseGender(r.URL.Query().Get("gender"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	out := h.deps.CategoryRanking(r.Context(), level, gender)
	writeJSON(w, http.StatusOK, rankingList(out))
}
