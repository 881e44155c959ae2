package ranking_test

import (
	"testing"

	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func fixtureInput() ranking.Input {
	return ranking.Input{
		Teams: []model.Team{
			{ID: "T1", Name: "Tunas Muda", Number: "101", Level: model.LevelSD, Gender: model.GenderPutra},
			{ID: "T2", Name: "Garuda", Number: "102", Level: model.LevelSD, Gender: model.GenderPutra},
			{ID: "T3", Name: "Melati", Number: "201", Level: model.LevelSD, Gender: model.GenderPutri},
			{ID: "T4", Name: "Rajawali", Number: "301", Level: model.LevelSMA, Gender: model.GenderPutra},
		},
		Users: []model.User{
			{ID: "J1", Name: "Ahmad", Role: model.RoleJudge, AssignedPostID: "P1", AssignedCriteriaIDs: []string{"c1"}},
			{ID: "J2", Name: "Siti", Role: model.RoleJudge, AssignedPostID: "P1"},
		},
		Posts: []model.Post{
			{ID: "P1", Name: "Pos 1", Criteria: []model.Criterion{
				{ID: "c1", Name: "Kekompakan", MaxScore: 100},
				{ID: "c2", Name: "Kerapian", MaxScore: 100},
			}},
		},
	}
}

func TestComputeCategoryRanking_Scoping(t *testing.T) {
	Convey("Given a judge assigned a single criterion", t, func() {
		in := fixtureInput()
		in.Entries = []model.ScoreEntry{
			{TeamID: "T1", PostID: "P1", JudgeID: "J1", Scores: map[string]int{"c1": 70, "c2": 99}},
		}

		Convey("When computing the SD Putra ranking", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)

			Convey("Then only the assigned criterion counts", func() {
				So(out[0].TeamID, ShouldEqual, "T1")
				So(out[0].TotalScore, ShouldEqual, 70)
				So(out[0].JudgeScores, ShouldHaveLength, 1)
				So(out[0].JudgeScores[0].JudgeID, ShouldEqual, "J1")
				So(out[0].JudgeScores[0].Score, ShouldEqual, 70)
			})
		})
	})

	Convey("Given a judge with no criterion assignment", t, func() {
		in := fixtureInput()
		in.Entries = []model.ScoreEntry{
			{TeamID: "T1", PostID: "P1", JudgeID: "J2", Scores: map[string]int{"c1": 40, "c2": 60}},
		}

		Convey("Then every submitted criterion counts", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)
			So(out[0].TotalScore, ShouldEqual, 100)
		})
	})

	Convey("Given an entry with a criterion outside the judge's scope only", t, func() {
		in := fixtureInput()
		in.Entries = []model.ScoreEntry{
			{TeamID: "T1", PostID: "P1", JudgeID: "J1", Scores: map[string]int{"c2": 99}},
		}

		Convey("Then the contribution is zero, not an error", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)
			So(out[0].TotalScore, ShouldEqual, 0)
			So(out[0].JudgeScores[0].Score, ShouldEqual, 0)
		})
	})
}

func TestComputeCategoryRanking_CategoryIsolation(t *testing.T) {
	Convey("Given scores for teams across categories", t, func() {
		in := fixtureInput()
		in.Entries = []model.ScoreEntry{
			{TeamID: "T1", PostID: "P1", JudgeID: "J2", Scores: map[string]int{"c1": 50}},
			{TeamID: "T4", PostID: "P1", JudgeID: "J2", Scores: map[string]int{"c1": 90}},
		}

		Convey("When computing SD Putra", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)

			Convey("Then only SD Putra teams appear, scored or not", func() {
				So(out, ShouldHaveLength, 2)
				for _, total := range out {
					So(total.TeamID, ShouldBeIn, []string{"T1", "T2"})
				}
			})
		})

		Convey("When computing SD Putri", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutri)

			Convey("Then the SMA team's scores never leak in", func() {
				So(out, ShouldHaveLength, 1)
				So(out[0].TeamID, ShouldEqual, "T3")
				So(out[0].TotalScore, ShouldEqual, 0)
			})
		})

		Convey("When computing an empty category", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelUmum, model.GenderPutri)

			Convey("Then the result is empty, not nil-panicking", func() {
				So(out, ShouldBeEmpty)
			})
		})
	})
}

func TestComputeCategoryRanking_UnknownReferences(t *testing.T) {
	Convey("Given entries whose judge and post no longer resolve", t, func() {
		in := fixtureInput()
		in.Entries = []model.ScoreEntry{
			{TeamID: "T1", PostID: "gone", JudgeID: "gone", Scores: map[string]int{"c1": 30, "c2": 12}},
		}

		Convey("When computing the ranking", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)

			Convey("Then the contribution is kept under sentinel labels", func() {
				So(out[0].TeamID, ShouldEqual, "T1")
				So(out[0].TotalScore, ShouldEqual, 42)
				So(out[0].JudgeScores[0].JudgeID, ShouldEqual, ranking.UnknownJudgeID)
				So(out[0].JudgeScores[0].JudgeName, ShouldEqual, ranking.UnknownJudgeName)
				So(out[0].JudgeScores[0].PostName, ShouldEqual, ranking.UnknownPostName)
			})

			Convey("And an unknown judge has full-post scope", func() {
				// No assignment can be resolved, so every criterion counts.
				So(out[0].JudgeScores[0].Score, ShouldEqual, 42)
			})
		})
	})
}

func TestComputeCategoryRanking_OrderingAndDeterminism(t *testing.T) {
	Convey("Given several scored teams", t, func() {
		in := fixtureInput()
		in.Teams = append(in.Teams, model.Team{ID: "T5", Name: "Cendrawasih", Number: "100", Level: model.LevelSD, Gender: model.GenderPutra})
		in.Entries = []model.ScoreEntry{
			{TeamID: "T1", PostID: "P1", JudgeID: "J2", Scores: map[string]int{"c1": 50}},
			{TeamID: "T2", PostID: "P1", JudgeID: "J2", Scores: map[string]int{"c1": 80}},
			{TeamID: "T5", PostID: "P1", JudgeID: "J2", Scores: map[string]int{"c1": 50}},
		}

		Convey("When computing the ranking", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)

			Convey("Then teams sort by total descending", func() {
				So(out[0].TeamID, ShouldEqual, "T2")
			})

			Convey("Then equal totals break ties by team number ascending", func() {
				So(out[1].TeamID, ShouldEqual, "T5") // number 100
				So(out[2].TeamID, ShouldEqual, "T1") // number 101
			})

			Convey("Then consecutive computations agree exactly", func() {
				again := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)
				So(again, ShouldResemble, out)
			})
		})
	})

	Convey("Given a team with multiple judge entries", t, func() {
		in := fixtureInput()
		in.Entries = []model.ScoreEntry{
			{TeamID: "T1", PostID: "P1", JudgeID: "J1", Scores: map[string]int{"c1": 70, "c2": 99}},
			{TeamID: "T1", PostID: "P1", JudgeID: "J2", Scores: map[string]int{"c1": 40, "c2": 60}},
		}

		Convey("Then judge contributions sum into the total", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)
			So(out[0].TotalScore, ShouldEqual, 170)
			So(out[0].JudgeScores, ShouldHaveLength, 2)

			Convey("And details follow snapshot order", func() {
				So(out[0].JudgeScores[0].JudgeID, ShouldEqual, "J1")
				So(out[0].JudgeScores[1].JudgeID, ShouldEqual, "J2")
			})
		})
	})
}

func TestComputeCategoryRanking_ZeroScoreDefault(t *testing.T) {
	Convey("Given a category with no ledger entries at all", t, func() {
		in := fixtureInput()

		Convey("When computing the ranking", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)

			Convey("Then every team ranks with a zero total and empty details", func() {
				So(out, ShouldHaveLength, 2)
				for _, total := range out {
					So(total.TotalScore, ShouldEqual, 0)
					So(total.JudgeScores, ShouldBeEmpty)
					So(total.JudgeScores, ShouldNotBeNil)
				}
			})

			Convey("Then zero-total teams order by number", func() {
				So(out[0].TeamNumber, ShouldEqual, "101")
				So(out[1].TeamNumber, ShouldEqual, "102")
			})
		})
	})
}

func TestComputeCategoryRanking_SpecExample(t *testing.T) {
	Convey("Given the canonical single-team example", t, func() {
		in := ranking.Input{
			Teams: []model.Team{{ID: "T1", Number: "101", Level: model.LevelSD, Gender: model.GenderPutra}},
			Users: []model.User{{ID: "J1", Role: model.RoleJudge, AssignedPostID: "P1", AssignedCriteriaIDs: []string{"c1"}}},
			Posts: []model.Post{{ID: "P1", Criteria: []model.Criterion{{ID: "c1"}, {ID: "c2"}}}},
			Entries: []model.ScoreEntry{
				{TeamID: "T1", PostID: "P1", JudgeID: "J1", Scores: map[string]int{"c1": 90, "c2": 100}},
			},
		}

		Convey("Then the ranking credits only the scoped criterion", func() {
			out := ranking.ComputeCategoryRanking(in, model.LevelSD, model.GenderPutra)
			So(out, ShouldHaveLength, 1)
			So(out[0].TeamID, ShouldEqual, "T1")
			So(out[0].TotalScore, ShouldEqual, 90)
			So(out[0].JudgeScores, ShouldHaveLength, 1)
			So(out[0].JudgeScores[0].JudgeID, ShouldEqual, "J1")
			So(out[0].JudgeScores[0].Score, ShouldEqual, 90)
		})
	})
}
