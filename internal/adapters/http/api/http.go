// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	repository "github.com/okian/langkah/internal/adapters/repository"
	"github.com/okian/langkah/internal/domain/ledger"
	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/internal/domain/types"
)

// validate checks inbound payloads before they become domain records.
var validate = validator.New() //nolint:gochecknoglobals // shared, concurrency-safe validator

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	AuthDependencies
	LoginDependencies
	ScoresDependencies
	RankingDependencies
	TeamsDependencies
	UsersDependencies
	PostsDependencies
	DataDependencies
}

// AuthDependencies resolves bearer tokens to users.
type AuthDependencies interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	auth           *authMiddleware
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	loginHandler   *LoginHandler
	scoresHandler  *ScoresHandler
	rankingHandler *RankingHandler
	teamsHandler   *TeamsHandler
	usersHandler   *UsersHandler
	postsHandler   *PostsHandler
	dataHandler    *DataHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	auth := newAuthMiddleware(deps)
	return &Server{
		auth:           auth,
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		loginHandler:   NewLoginHandler(deps),
		scoresHandler:  NewScoresHandler(deps),
		rankingHandler: NewRankingHandler(deps),
		teamsHandler:   NewTeamsHandler(deps),
		usersHandler:   NewUsersHandler(deps),
		postsHandler:   NewPostsHandler(deps),
		dataHandler:    NewDataHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/login", MetricsMiddleware(s.loginHandler.HandleLogin, "login"))
	mux.HandleFunc("/ranking", MetricsMiddleware(s.rankingHandler.HandleGetRanking, "ranking"))
	mux.HandleFunc("/data", MetricsMiddleware(s.dataHandler.HandleGetData, "data"))

	// Score submission and reset require a judge or administrator.
	mux.HandleFunc("/scores", MetricsMiddleware(
		s.auth.require(s.scoresHandler.HandleScores, model.RoleJudge, model.RoleAdmin), "scores"))

	// Reference mutations are administrator-only; reads are public.
	mux.HandleFunc("/teams", MetricsMiddleware(s.adminMutable(s.teamsHandler.HandleTeams), "teams"))
	mux.HandleFunc("/users", MetricsMiddleware(s.adminMutable(s.usersHandler.HandleUsers), "users"))
	mux.HandleFunc("/posts", MetricsMiddleware(s.adminMutable(s.postsHandler.HandlePosts), "posts"))
}

// adminMutable lets GET through without auth and gates every other
// method behind the administrator role.
func (s *Server) adminMutable(next authedHandlerFunc) http.HandlerFunc {
	authed := s.auth.require(next, model.RoleAdmin)
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			next(w, r, model.User{Role: model.RolePublic})
			return
		}
		authed(w, r)
	}
}

// ackResponse acknowledges a score submission.
type ackResponse struct {
	Status   string `json:"status"`
	Replaced bool   `json:"replaced"`
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

// writeDomainError translates core error kinds to HTTP statuses.
func writeDomainError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", Wrap(op, err))
	case errors.Is(err, ledger.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "forbidden", Wrap(op, err))
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// rankingList guarantees a JSON array even when empty.
func rankingList(in []types.TeamTotalScore) []types.TeamTotalScore {
	if in == nil {
		return []types.TeamTotalScore{}
	}
	return in
}
