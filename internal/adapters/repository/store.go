// Package repository defines the ledger and reference store interfaces and errors.
package repository

import (
	"context"

	"github.com/okian/langkah/internal/domain/model"
)

// LedgerStore provides atomic per-key access to raw score entries.
type LedgerStore interface {
	// Upsert replaces the entry stored under e's natural key, inserting
	// when absent. Returns true when an existing entry was replaced.
	// The replace is atomic; last write wins.
	Upsert(ctx context.Context, e model.ScoreEntry) (bool, error)

	// Reset deletes every entry unconditionally.
	Reset(ctx context.Context) error

	// Snapshot returns a copy of all entries in deterministic order:
	// first-insertion order per key, replacements keep their position.
	Snapshot(ctx context.Context) []model.ScoreEntry

	// Len returns the number of entries in the ledger.
	Len(ctx context.Context) int
}

// ReferenceStore holds the team/user/post read models the ranking
// engine consumes and the admin CRUD mutates.
type ReferenceStore interface {
	PutTeam(ctx context.Context, t model.Team) error
	Team(ctx context.Context, id string) (model.Team, error)
	Teams(ctx context.Context) []model.Team
	DeleteTeam(ctx context.Context, id string) error

	PutUser(ctx context.Context, u model.User) error
	User(ctx context.Context, id string) (model.User, error)
	Users(ctx context.Context) []model.User
	DeleteUser(ctx context.Context, id string) error

	PutPost(ctx context.Context, p model.Post) error
	Post(ctx context.Context, id string) (model.Post, error)
	Posts(ctx context.Context) []model.Post
	DeletePost(ctx context.Context, id string) error

	// Empty reports whether no reference data has been installed yet.
	Empty(ctx context.Context) bool
}
