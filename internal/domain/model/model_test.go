package model_test

import (
	"testing"

	"github.com/okian/langkah/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseEnums(t *testing.T) {
	Convey("Given the level enumeration", t, func() {
		Convey("Then every tier parses", func() {
			for _, s := range []string{"SD", "SMP", "SMA", "UMUM"} {
				lvl, err := model.ParseLevel(s)
				So(err, ShouldBeNil)
				So(string(lvl), ShouldEqual, s)
			}
		})

		Convey("Then unknown tiers are rejected", func() {
			_, err := model.ParseLevel("TK")
			So(err, ShouldNotBeNil)
		})

		Convey("Then parsing is case sensitive", func() {
			_, err := model.ParseLevel("sd")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given the gender enumeration", t, func() {
		Convey("Then both divisions parse", func() {
			for _, s := range []string{"Putra", "Putri"} {
				g, err := model.ParseGender(s)
				So(err, ShouldBeNil)
				So(string(g), ShouldEqual, s)
			}
		})

		Convey("Then anything else is rejected", func() {
			_, err := model.ParseGender("putra")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given the role enumeration", t, func() {
		Convey("Then all three roles parse", func() {
			for _, s := range []string{"ADMIN", "JUDGE", "PUBLIC"} {
				r, err := model.ParseRole(s)
				So(err, ShouldBeNil)
				So(string(r), ShouldEqual, s)
			}
		})

		Convey("Then unknown roles are rejected", func() {
			_, err := model.ParseRole("GUEST")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestUserRoleHelpers(t *testing.T) {
	Convey("Given users of each role", t, func() {
		admin := model.User{ID: "a1", Role: model.RoleAdmin}
		judge := model.User{ID: "j1", Role: model.RoleJudge}
		viewer := model.User{ID: "p1", Role: model.RolePublic}

		Convey("Then the helpers report the right role", func() {
			So(admin.IsAdmin(), ShouldBeTrue)
			So(admin.IsJudge(), ShouldBeFalse)
			So(judge.IsJudge(), ShouldBeTrue)
			So(judge.IsAdmin(), ShouldBeFalse)
			So(viewer.IsAdmin(), ShouldBeFalse)
			So(viewer.IsJudge(), ShouldBeFalse)
		})
	})
}

func TestScoreEntry(t *testing.T) {
	Convey("Given a score entry", t, func() {
		entry := model.ScoreEntry{
			TeamID:  "T1",
			PostID:  "P1",
			JudgeID: "J1",
			Scores:  map[string]int{"c1": 80, "c2": 90},
			Notes:   "rapi",
		}

		Convey("Then its natural key carries the triple", func() {
			key := entry.Key()
			So(key.TeamID, ShouldEqual, "T1")
			So(key.PostID, ShouldEqual, "P1")
			So(key.JudgeID, ShouldEqual, "J1")
		})

		Convey("Then entries with the same triple share a key", func() {
			other := model.ScoreEntry{TeamID: "T1", PostID: "P1", JudgeID: "J1", Scores: map[string]int{"c1": 10}}
			So(other.Key(), ShouldEqual, entry.Key())
		})

		Convey("Then Clone detaches the scores map", func() {
			clone := entry.Clone()
			clone.Scores["c1"] = 5
			So(entry.Scores["c1"], ShouldEqual, 80)
			So(clone.Notes, ShouldEqual, "rapi")
		})
	})
}
