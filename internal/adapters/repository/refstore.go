package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/pkg/metrics"
)

// MemoryReference implements ReferenceStore with mutex-guarded maps.
// Listings are sorted (teams by number, users and posts by name, id as
// the final key) so reads are deterministic regardless of write order.
type MemoryReference struct {
	mu      sync.RWMutex
	teams   map[string]model.Team
	users   map[string]model.User
	posts   map[string]model.Post
	metrics bool
}

// ReferenceOption applies a configuration option to the MemoryReference.
type ReferenceOption func(*MemoryReference)

// WithReferenceMetrics toggles gauge updates on reference mutations.
func WithReferenceMetrics(enabled bool) ReferenceOption {
	return func(s *MemoryReference) {
		s.metrics = enabled
	}
}

// NewMemoryReference creates an empty reference store.
func NewMemoryReference(opts ...ReferenceOption) *MemoryReference {
	s := &MemoryReference{
		teams:   make(map[string]model.Team),
		users:   make(map[string]model.User),
		posts:   make(map[string]model.Post),
		metrics: true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *MemoryReference) updateMetrics() {
	if !s.metrics {
		return
	}
	metrics.UpdateReferenceRecords("team", len(s.teams))
	metrics.UpdateReferenceRecords("user", len(s.users))
	metrics.UpdateReferenceRecords("post", len(s.posts))
}

// PutTeam inserts or replaces a team by id.
func (s *MemoryReference) PutTeam(_ context.Context, t model.Team) error {
	if t.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = t
	s.updateMetrics()
	return nil
}

// Team looks up a team by id.
func (s *MemoryReference) Team(_ context.Context, id string) (model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return model.Team{}, ErrNotFound
	}
	return t, nil
}

// Teams lists all teams sorted by number, then id.
func (s *MemoryReference) Teams(_ context.Context) []model.Team {
	s.mu.RLock()
	out := make([]model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		out = append(out, t)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DeleteTeam removes a team by id.
func (s *MemoryReference) DeleteTeam(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[id]; !ok {
		return ErrNotFound
	}
	delete(s.teams, id)
	s.updateMetrics()
	return nil
}

// PutUser inserts or replaces a user by id.
func (s *MemoryReference) PutUser(_ context.Context, u model.User) error {
	if u.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	s.updateMetrics()
	return nil
}

// User looks up a user by id.
func (s *MemoryReference) User(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// Users lists all users sorted by name, then id.
func (s *MemoryReference) Users(_ context.Context) []model.User {
	s.mu.RLock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DeleteUser removes a user by id.
func (s *MemoryReference) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	s.updateMetrics()
	return nil
}

// PutPost inserts or replaces a post by id.
func (s *MemoryReference) PutPost(_ context.Context, p model.Post) error {
	if p.ID == "" {
		return ErrMissingID
	}
	stored := p
	stored.Criteria = append([]model.Criterion(nil), p.Criteria...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = stored
	s.updateMetrics()
	return nil
}

// Post looks up a post by id.
func (s *MemoryReference) Post(_ context.Context, id string) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return model.Post{}, ErrNotFound
	}
	out := p
	out.Criteria = append([]model.Criterion(nil), p.Criteria...)
	return out, nil
}

// Posts lists all posts sorted by name, then id.
func (s *MemoryReference) Posts(_ context.Context) []model.Post {
	s.mu.RLock()
	out := make([]model.Post, 0, len(s.posts))
	for _, p := range s.posts {
		cp := p
		cp.Criteria = append([]model.Criterion(nil), p.Criteria...)
		out = append(out, cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// DeletePost removes a post by id.
func (s *MemoryReference) DeletePost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	s.updateMetrics()
	return nil
}

// Empty reports whether no reference data exists at all.
func (s *MemoryReference) Empty(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.teams) == 0 && len(s.users) == 0 && len(s.posts) == 0
}
