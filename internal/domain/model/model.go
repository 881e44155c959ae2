// Package model contains domain models passed between layers.
package model

import "fmt"

// Level is the competition tier a team competes in.
type Level string

// Competition tiers.
const (
	LevelSD   Level = "SD"
	LevelSMP  Level = "SMP"
	LevelSMA  Level = "SMA"
	LevelUmum Level = "UMUM"
)

// ParseLevel validates a raw level string.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case LevelSD, LevelSMP, LevelSMA, LevelUmum:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown level: %q", s)
}

// Gender is the two-value competition gender division.
type Gender string

// Gender divisions.
const (
	GenderPutra Gender = "Putra"
	GenderPutri Gender = "Putri"
)

// ParseGender validates a raw gender string.
func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderPutra, GenderPutri:
		return Gender(s), nil
	}
	return "", fmt.Errorf("unknown gender: %q", s)
}

// Role describes what a user may do.
type Role string

// User roles. PUBLIC is a no-auth viewer, never a ledger participant.
const (
	RoleAdmin  Role = "ADMIN"
	RoleJudge  Role = "JUDGE"
	RolePublic Role = "PUBLIC"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleJudge, RolePublic:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Team is a competing unit. Number orders teams lexically on listings;
// (Level, Gender) is the ranking category.
type Team struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number string `json:"number"`
	Level  Level  `json:"level"`
	Gender Gender `json:"gender"`
}

// Category returns the ranking category the team currently declares.
func (t Team) Category() (Level, Gender) {
	return t.Level, t.Gender
}

// User is an administrator, judge, or public viewer. Judges carry their
// post assignment and, optionally, the subset of criteria they own there;
// an empty criteria list means the judge scores the whole post.
type User struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Role                Role     `json:"role"`
	Password            string   `json:"-"`
	AssignedPostID      string   `json:"assignedPostId,omitempty"`
	AssignedCriteriaIDs []string `json:"assignedCriteriaIds,omitempty"`
	RovingJudge         bool     `json:"rovingJudge,omitempty"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsJudge reports whether the user holds the judge role.
func (u User) IsJudge() bool { return u.Role == RoleJudge }

// Criterion is a single scorable dimension at a post. MaxScore is
// nominal; the server does not clamp submissions against it.
type Criterion struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MaxScore int    `json:"maxScore"`
}

// Post is a physical judging station with its own criteria.
type Post struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Criteria []Criterion `json:"criteria"`
}

// ScoreEntry is the atomic unit of the ledger, keyed by
// (TeamID, PostID, JudgeID). Scores maps criterion id to an integer
// value. A resubmission under the same key replaces Scores and Notes
// wholesale; there is no per-criterion merge and no history.
type ScoreEntry struct {
	TeamID  string         `json:"teamId"`
	PostID  string         `json:"postId"`
	JudgeID string         `json:"judgeId"`
	Scores  map[string]int `json:"scores"`
	Notes   string         `json:"notes,omitempty"`
}

// Key identifies a ledger entry by its natural composite key.
type Key struct {
	TeamID  string
	PostID  string
	JudgeID string
}

// Key returns the entry's natural key.
func (e ScoreEntry) Key() Key {
	return Key{TeamID: e.TeamID, PostID: e.PostID, JudgeID: e.JudgeID}
}

// Clone returns a deep copy so stored entries never alias caller maps.
func (e ScoreEntry) Clone() ScoreEntry {
	out := e
	out.Scores = make(map[string]int, len(e.Scores))
	for id, v := range e.Scores {
		out.Scores[id] = v
	}
	return out
}
