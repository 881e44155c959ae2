// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	repository "github.com/okian/langkah/internal/adapters/repository"
	"github.com/okian/langkah/internal/domain/ledger"
	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/internal/domain/ranking"
	"github.com/okian/langkah/internal/domain/types"
	"github.com/okian/langkah/pkg/logger"
	"github.com/okian/langkah/pkg/metrics"
)

// Service wires the ledger, the reference store, and the ranking engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	refs        repository.ReferenceStore
	ledgerStore repository.LedgerStore
	scores      *ledger.Ledger

	// Configuration
	rovingMax int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithRovingMaxScore sets the per-criterion cap for roving judges.
func WithRovingMaxScore(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.rovingMax = max
		}
	}
}

// WithReferenceStore injects a reference store, mainly for tests.
func WithReferenceStore(store repository.ReferenceStore) Option {
	return func(s *Service) {
		if store != nil {
			s.refs = store
		}
	}
}

// WithLedgerStore injects a ledger store, mainly for tests.
func WithLedgerStore(store repository.LedgerStore) Option {
	return func(s *Service) {
		if store != nil {
			s.ledgerStore = store
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		rovingMax: ledger.DefaultRovingMaxScore,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting scoring service...")

	if s.refs == nil {
		s.refs = repository.NewMemoryReference()
	}
	if s.ledgerStore == nil {
		s.ledgerStore = repository.NewMemoryLedger()
	}
	s.scores = ledger.New(s.ledgerStore,
		ledger.WithRovingMaxScore(s.rovingMax),
		ledger.WithLogger(s.logger.Named("ledger")),
	)

	s.started = true
	s.logger.Info(ctx, "scoring service started",
		logger.Int("rovingMaxScore", s.rovingMax),
	)

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped")
}

// Authenticate resolves a bearer token to its user. Tokens are the user
// id itself, matching the original deployment model.
func (s *Service) Authenticate(ctx context.Context, token string) (model.User, error) {
	u, err := s.refs.User(ctx, token)
	if err != nil {
		return model.User{}, fmt.Errorf("authenticate: %w", err)
	}
	return u, nil
}

// Login checks name and password for the given role and returns the user.
// Passwords are stored and compared in plain text, as the source system does.
func (s *Service) Login(ctx context.Context, role model.Role, name, password string) (model.User, error) {
	if name == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: name and password are required", ErrInvalidCredentials)
	}
	if role != model.RoleAdmin && role != model.RoleJudge {
		return model.User{}, fmt.Errorf("%w: role %s cannot log in", ErrInvalidCredentials, role)
	}

	for _, u := range s.refs.Users(ctx) {
		if u.Name != name || u.Role != role {
			continue
		}
		if u.Password == "" {
			return model.User{}, fmt.Errorf("%w: account has no password set", ErrInvalidCredentials)
		}
		if u.Password != password {
			return model.User{}, fmt.Errorf("%w: wrong name or password", ErrInvalidCredentials)
		}
		return u, nil
	}
	return model.User{}, fmt.Errorf("%w: wrong name or password", ErrInvalidCredentials)
}

// SubmitScore records one judge's submission. Returns true when an
// existing entry was replaced.
func (s *Service) SubmitScore(ctx context.Context, submitter model.User, e model.ScoreEntry) (bool, error) {
	return s.scores.Upsert(ctx, submitter, e)
}

// ResetScores clears the whole ledger. Administrator only.
func (s *Service) ResetScores(ctx context.Context, submitter model.User) error {
	return s.scores.Reset(ctx, submitter)
}

// CategoryRanking computes the ranked totals for one category from the
// current stores. Recomputed from scratch on every call; nothing is cached.
func (s *Service) CategoryRanking(ctx context.Context, level model.Level, gender model.Gender) []types.TeamTotalScore {
	start := time.Now()

	in := ranking.Input{
		Teams:   s.refs.Teams(ctx),
		Users:   s.refs.Users(ctx),
		Posts:   s.refs.Posts(ctx),
		Entries: s.scores.Snapshot(ctx),
	}
	out := ranking.ComputeCategoryRanking(in, level, gender)

	metrics.RecordRankingComputation()
	metrics.RecordRankingLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.UpdateRankingTeams(string(level), string(gender), len(out))
	return out
}

// CreateTeam stores a new team under a fresh id.
func (s *Service) CreateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	t.ID = uuid.NewString()
	if err := s.refs.PutTeam(ctx, t); err != nil {
		return model.Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

// UpdateTeam replaces an existing team.
func (s *Service) UpdateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	if _, err := s.refs.Team(ctx, t.ID); err != nil {
		return model.Team{}, fmt.Errorf("update team: %w", err)
	}
	if err := s.refs.PutTeam(ctx, t); err != nil {
		return model.Team{}, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

// DeleteTeam removes a team by id.
func (s *Service) DeleteTeam(ctx context.Context, id string) error {
	if err := s.refs.DeleteTeam(ctx, id); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

// Teams lists teams sorted by competition number.
func (s *Service) Teams(ctx context.Context) []model.Team {
	return s.refs.Teams(ctx)
}

// CreateUser stores a new user under a fresh id.
func (s *Service) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	u.ID = uuid.NewString()
	if err := s.refs.PutUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// UpdateUser replaces an existing user. A blank password keeps the
// stored one so admins can edit assignments without re-entering it.
func (s *Service) UpdateUser(ctx context.Context, u model.User) (model.User, error) {
	prev, err := s.refs.User(ctx, u.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	if u.Password == "" {
		u.Password = prev.Password
	}
	if err := s.refs.PutUser(ctx, u); err != nil {
		return model.User{}, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user by id.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.refs.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// Users lists users sorted by name.
func (s *Service) Users(ctx context.Context) []model.User {
	return s.refs.Users(ctx)
}

// CreatePost stores a new post under a fresh id. Criteria without ids
// get one assigned.
func (s *Service) CreatePost(ctx context.Context, p model.Post) (model.Post, error) {
	p.ID = uuid.NewString()
	for i := range p.Criteria {
		if p.Criteria[i].ID == "" {
			p.Criteria[i].ID = uuid.NewString()
		}
	}
	if err := s.refs.PutPost(ctx, p); err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// UpdatePost replaces an existing post.
func (s *Service) UpdatePost(ctx context.Context, p model.Post) (model.Post, error) {
	if _, err := s.refs.Post(ctx, p.ID); err != nil {
		return model.Post{}, fmt.Errorf("update post: %w", err)
	}
	for i := range p.Criteria {
		if p.Criteria[i].ID == "" {
			p.Criteria[i].ID = uuid.NewString()
		}
	}
	if err := s.refs.PutPost(ctx, p); err != nil {
		return model.Post{}, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// DeletePost removes a post by id.
func (s *Service) DeletePost(ctx context.Context, id string) error {
	if err := s.refs.DeletePost(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Posts lists posts sorted by name.
func (s *Service) Posts(ctx context.Context) []model.Post {
	return s.refs.Posts(ctx)
}

// ScoreEntries returns the current ledger snapshot.
func (s *Service) ScoreEntries(ctx context.Context) []model.ScoreEntry {
	return s.scores.Snapshot(ctx)
}

// ReferenceEmpty reports whether the store has no reference data yet.
func (s *Service) ReferenceEmpty(ctx context.Context) bool {
	return s.refs.Empty(ctx)
}

// InstallTeam stores a team as-is, preserving its id. Used by seeding.
func (s *Service) InstallTeam(ctx context.Context, t model.Team) error {
	return s.refs.PutTeam(ctx, t)
}

// InstallUser stores a user as-is, preserving its id. Used by seeding.
func (s *Service) InstallUser(ctx context.Context, u model.User) error {
	return s.refs.PutUser(ctx, u)
}

// InstallPost stores a post as-is, preserving its id. Used by seeding.
func (s *Service) InstallPost(ctx context.Context, p model.Post) error {
	return s.refs.PutPost(ctx, p)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"rovingMaxScore": s.rovingMax,
	}

	if s.started {
		stats["ledgerEntries"] = s.scores.Len(ctx)
		stats["teams"] = len(s.refs.Teams(ctx))
		stats["users"] = len(s.refs.Users(ctx))
		stats["posts"] = len(s.refs.Posts(ctx))
	}

	return stats
}
