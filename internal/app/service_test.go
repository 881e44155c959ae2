package service_test

import (
	"context"
	"testing"

	service "github.com/okian/langkah/internal/app"
	"github.com/okian/langkah/internal/domain/ledger"
	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func startedService() *service.Service {
	svc := service.New()
	_ = svc.Start(context.Background())
	return svc
}

// installFixtures loads a small competition: one admin, two judges on
// one post, and two SD Putra teams.
func installFixtures(ctx context.Context, svc *service.Service) {
	_ = svc.InstallPost(ctx, model.Post{
		ID:   "p1",
		Name: "Pos Keberangkatan",
		Criteria: []model.Criterion{
			{ID: "c1", Name: "Kerapihan Barisan", MaxScore: 100},
			{ID: "c2", Name: "Semangat", MaxScore: 100},
		},
	})
	_ = svc.InstallUser(ctx, model.User{
		ID: "admin-1", Name: "admin", Role: model.RoleAdmin, Password: "rahasia",
	})
	_ = svc.InstallUser(ctx, model.User{
		ID: "j1", Name: "Ahmad Fauzi", Role: model.RoleJudge, Password: "juri123",
		AssignedPostID: "p1", AssignedCriteriaIDs: []string{"c1"},
	})
	_ = svc.InstallUser(ctx, model.User{
		ID: "j2", Name: "Siti Aminah", Role: model.RoleJudge, Password: "juri456",
		AssignedPostID: "p1", AssignedCriteriaIDs: []string{"c2"},
	})
	_ = svc.InstallTeam(ctx, model.Team{
		ID: "t1", Name: "Regu Satu", Number: "1", Level: model.LevelSD, Gender: model.GenderPutra,
	})
	_ = svc.InstallTeam(ctx, model.Team{
		ID: "t2", Name: "Regu Dua", Number: "2", Level: model.LevelSD, Gender: model.GenderPutra,
	})
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithRovingMaxScore(5))

		Convey("When starting it", func() {
			err := svc.Start(ctx)

			Convey("Then it should start cleanly", func() {
				So(err, ShouldBeNil)
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And the reference store should begin empty", func() {
				So(svc.ReferenceEmpty(ctx), ShouldBeTrue)
			})

			Convey("And stats should reflect the running state", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["rovingMaxScore"], ShouldEqual, 5)
			})
		})
	})
}

func TestServiceLogin(t *testing.T) {
	Convey("Given a service with installed users", t, func() {
		ctx := context.Background()
		svc := startedService()
		installFixtures(ctx, svc)

		Convey("When logging in with correct judge credentials", func() {
			u, err := svc.Login(ctx, model.RoleJudge, "Ahmad Fauzi", "juri123")

			Convey("Then the judge should be returned", func() {
				So(err, ShouldBeNil)
				So(u.ID, ShouldEqual, "j1")
			})
		})

		Convey("When the password is wrong", func() {
			_, err := svc.Login(ctx, model.RoleJudge, "Ahmad Fauzi", "salah")
			So(err, ShouldWrap, service.ErrInvalidCredentials)
		})

		Convey("When the role does not match the account", func() {
			_, err := svc.Login(ctx, model.RoleAdmin, "Ahmad Fauzi", "juri123")
			So(err, ShouldWrap, service.ErrInvalidCredentials)
		})

		Convey("When the public role tries to log in", func() {
			_, err := svc.Login(ctx, model.RolePublic, "Ahmad Fauzi", "juri123")
			So(err, ShouldWrap, service.ErrInvalidCredentials)
		})

		Convey("When authenticating a known token", func() {
			u, err := svc.Authenticate(ctx, "j2")
			So(err, ShouldBeNil)
			So(u.Name, ShouldEqual, "Siti Aminah")
		})

		Convey("When authenticating an unknown token", func() {
			_, err := svc.Authenticate(ctx, "nope")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestServiceScoringFlow(t *testing.T) {
	Convey("Given a service with fixtures", t, func() {
		ctx := context.Background()
		svc := startedService()
		installFixtures(ctx, svc)

		judge, _ := svc.Authenticate(ctx, "j1")
		admin, _ := svc.Authenticate(ctx, "admin-1")

		entry := model.ScoreEntry{
			TeamID: "t1", PostID: "p1", JudgeID: "j1",
			Scores: map[string]int{"c1": 80},
		}

		Convey("When a judge submits a score", func() {
			replaced, err := svc.SubmitScore(ctx, judge, entry)

			Convey("Then the entry should be recorded fresh", func() {
				So(err, ShouldBeNil)
				So(replaced, ShouldBeFalse)
				So(svc.ScoreEntries(ctx), ShouldHaveLength, 1)
			})

			Convey("And resubmitting replaces the previous entry", func() {
				entry.Scores = map[string]int{"c1": 95}
				replaced, err := svc.SubmitScore(ctx, judge, entry)
				So(err, ShouldBeNil)
				So(replaced, ShouldBeTrue)
				So(svc.ScoreEntries(ctx), ShouldHaveLength, 1)
				So(svc.ScoreEntries(ctx)[0].Scores["c1"], ShouldEqual, 95)
			})
		})

		Convey("When a judge submits for another judge", func() {
			other := entry
			other.JudgeID = "j2"
			_, err := svc.SubmitScore(ctx, judge, other)
			So(err, ShouldWrap, ledger.ErrUnauthorized)
		})

		Convey("When the ranking is computed", func() {
			_, _ = svc.SubmitScore(ctx, judge, entry)
			j2, _ := svc.Authenticate(ctx, "j2")
			_, _ = svc.SubmitScore(ctx, j2, model.ScoreEntry{
				TeamID: "t2", PostID: "p1", JudgeID: "j2",
				Scores: map[string]int{"c2": 90},
			})

			out := svc.CategoryRanking(ctx, model.LevelSD, model.GenderPutra)

			Convey("Then both teams should rank by total", func() {
				So(out, ShouldHaveLength, 2)
				So(out[0].TeamID, ShouldEqual, "t2")
				So(out[0].TotalScore, ShouldEqual, 90)
				So(out[1].TeamID, ShouldEqual, "t1")
				So(out[1].TotalScore, ShouldEqual, 80)
			})
		})

		Convey("When an administrator resets the ledger", func() {
			_, _ = svc.SubmitScore(ctx, judge, entry)
			So(svc.ResetScores(ctx, admin), ShouldBeNil)
			So(svc.ScoreEntries(ctx), ShouldBeEmpty)
		})

		Convey("When a judge tries to reset the ledger", func() {
			err := svc.ResetScores(ctx, judge)
			So(err, ShouldWrap, ledger.ErrUnauthorized)
		})
	})
}

func TestServiceReferenceCRUD(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService()

		Convey("When creating a team", func() {
			created, err := svc.CreateTeam(ctx, model.Team{
				Name: "Regu Baru", Number: "7", Level: model.LevelSMP, Gender: model.GenderPutri,
			})

			Convey("Then it should receive a fresh id", func() {
				So(err, ShouldBeNil)
				So(created.ID, ShouldNotBeEmpty)
				So(svc.Teams(ctx), ShouldHaveLength, 1)
			})

			Convey("And updating it should persist changes", func() {
				created.Name = "Regu Diganti"
				updated, err := svc.UpdateTeam(ctx, created)
				So(err, ShouldBeNil)
				So(updated.Name, ShouldEqual, "Regu Diganti")
				So(svc.Teams(ctx)[0].Name, ShouldEqual, "Regu Diganti")
			})

			Convey("And deleting it should empty the store", func() {
				So(svc.DeleteTeam(ctx, created.ID), ShouldBeNil)
				So(svc.Teams(ctx), ShouldBeEmpty)
			})
		})

		Convey("When updating a missing team", func() {
			_, err := svc.UpdateTeam(ctx, model.Team{ID: "ghost", Name: "x"})
			So(err, ShouldNotBeNil)
		})

		Convey("When updating a user with a blank password", func() {
			created, err := svc.CreateUser(ctx, model.User{
				Name: "Juri Baru", Role: model.RoleJudge, Password: "asli",
			})
			So(err, ShouldBeNil)

			created.Password = ""
			created.Name = "Juri Diganti"
			updated, err := svc.UpdateUser(ctx, created)

			Convey("Then the stored password should survive", func() {
				So(err, ShouldBeNil)
				So(updated.Password, ShouldEqual, "asli")
			})
		})

		Convey("When creating a post with unidentified criteria", func() {
			created, err := svc.CreatePost(ctx, model.Post{
				Name: "Pos Baru",
				Criteria: []model.Criterion{
					{Name: "Kekompakan", MaxScore: 100},
				},
			})

			Convey("Then criterion ids should be assigned", func() {
				So(err, ShouldBeNil)
				So(created.Criteria[0].ID, ShouldNotBeEmpty)
			})
		})
	})
}
