// Package seed installs the initial reference records on first run so a
// fresh deployment is usable without manual setup.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/pkg/logger"
)

// Installer is the surface the seeder needs from the service.
type Installer interface {
	ReferenceEmpty(ctx context.Context) bool
	InstallUser(ctx context.Context, u model.User) error
	InstallPost(ctx context.Context, p model.Post) error
}

// Post ids are fixed strings referenced from the judge records, keeping
// the judge-to-post assignment stable across installs.
const (
	post1ID = "665f12a3b4c5d6e7f8a9b0d1"
	post2ID = "665f12a3b4c5d6e7f8a9b0d2"
	post3ID = "665f12a3b4c5d6e7f8a9b0d3"
)

func initialPosts() []model.Post {
	return []model.Post{
		{
			ID:   post1ID,
			Name: "Pos Keberangkatan",
			Criteria: []model.Criterion{
				{ID: "c1", Name: "Kerapihan Barisan", MaxScore: 100},
				{ID: "c2", Name: "Semangat", MaxScore: 100},
			},
		},
		{
			ID:   post2ID,
			Name: "Pos Tengah",
			Criteria: []model.Criterion{
				{ID: "c3", Name: "Kekompakan Gerak", MaxScore: 100},
				{ID: "c4", Name: "Variasi Formasi", MaxScore: 100},
			},
		},
		{
			ID:   post3ID,
			Name: "Pos Finish",
			Criteria: []model.Criterion{
				{ID: "c5", Name: "Ketahanan Fisik", MaxScore: 100},
				{ID: "c6", Name: "Ketepatan Waktu", MaxScore: 100},
			},
		},
	}
}

func initialUsers() []model.User {
	return []model.User{
		{
			ID:       uuid.NewString(),
			Name:     "admin",
			Role:     model.RoleAdmin,
			Password: "Cipeng55",
		},
		{
			ID:                  uuid.NewString(),
			Name:                "Ahmad Fauzi",
			Role:                model.RoleJudge,
			AssignedPostID:      post1ID,
			AssignedCriteriaIDs: []string{"c1", "c2"},
		},
		{
			ID:                  uuid.NewString(),
			Name:                "Siti Aminah",
			Role:                model.RoleJudge,
			AssignedPostID:      post2ID,
			AssignedCriteriaIDs: []string{"c3", "c4"},
		},
		{
			ID:                  uuid.NewString(),
			Name:                "Budi Santoso",
			Role:                model.RoleJudge,
			AssignedPostID:      post3ID,
			AssignedCriteriaIDs: []string{"c5", "c6"},
		},
		{
			ID:                  uuid.NewString(),
			Name:                "Rina Marlina",
			Role:                model.RoleJudge,
			AssignedPostID:      post1ID,
			AssignedCriteriaIDs: []string{"c1", "c2"},
		},
	}
}

// Install writes the initial posts and users when the reference store is
// empty. A non-empty store is left untouched so restarts never clobber
// live data.
func Install(ctx context.Context, into Installer, lg logger.Logger) error {
	if lg == nil {
		lg = logger.Get()
	}

	if !into.ReferenceEmpty(ctx) {
		lg.Debug(ctx, "reference store not empty, skipping seed")
		return nil
	}

	posts := initialPosts()
	for _, p := range posts {
		if err := into.InstallPost(ctx, p); err != nil {
			return fmt.Errorf("seed post %s: %w", p.Name, err)
		}
	}

	users := initialUsers()
	for _, u := range users {
		if err := into.InstallUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Name, err)
		}
	}

	lg.Info(ctx, "seeded initial reference data",
		logger.Int("posts", len(posts)),
		logger.Int("users", len(users)),
	)
	return nil
}
