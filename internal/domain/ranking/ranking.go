// Package ranking derives ranked category totals from ledger snapshots.
//
// ComputeCategoryRanking is a pure function over the reference data and
// a ledger snapshot. It never errors: unresolvable judges and posts are
// substituted with sentinels so a leaderboard always renders, and a team
// without entries still ranks with a zero total.
package ranking

import (
	"sort"

	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/internal/domain/types"
)

// Sentinels substituted when reference data no longer resolves.
const (
	UnknownJudgeID   = "unknown-judge"
	UnknownJudgeName = "Unknown Judge"
	UnknownPostName  = "Unknown Post"
)

// Input bundles the read models one computation consumes. Slices are
// read, never mutated.
type Input struct {
	Teams   []model.Team
	Users   []model.User
	Posts   []model.Post
	Entries []model.ScoreEntry
}

// ComputeCategoryRanking ranks the teams of one (level, gender) category
// by total score descending. Ties break on team number ascending, then
// team id, so identical inputs always produce identical output.
func ComputeCategoryRanking(in Input, level model.Level, gender model.Gender) []types.TeamTotalScore {
	usersByID := make(map[string]model.User, len(in.Users))
	for _, u := range in.Users {
		usersByID[u.ID] = u
	}
	postsByID := make(map[string]model.Post, len(in.Posts))
	for _, p := range in.Posts {
		postsByID[p.ID] = p
	}

	entriesByTeam := make(map[string][]model.ScoreEntry, len(in.Teams))
	for _, e := range in.Entries {
		entriesByTeam[e.TeamID] = append(entriesByTeam[e.TeamID], e)
	}

	totals := make([]types.TeamTotalScore, 0, len(in.Teams))
	for _, team := range in.Teams {
		if team.Level != level || team.Gender != gender {
			continue
		}

		details := []types.JudgeScoreDetail{}
		total := 0
		for _, e := range entriesByTeam[team.ID] {
			detail := scoreEntry(e, usersByID, postsByID)
			total += detail.Score
			details = append(details, detail)
		}

		totals = append(totals, types.TeamTotalScore{
			TeamID:      team.ID,
			TeamName:    team.Name,
			TeamNumber:  team.Number,
			TotalScore:  total,
			JudgeScores: details,
		})
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].TotalScore != totals[j].TotalScore {
			return totals[i].TotalScore > totals[j].TotalScore
		}
		if totals[i].TeamNumber != totals[j].TeamNumber {
			return totals[i].TeamNumber < totals[j].TeamNumber
		}
		return totals[i].TeamID < totals[j].TeamID
	})
	return totals
}

// scoreEntry reduces one ledger entry to the submitting judge's scoped
// contribution. Criterion scope is resolved against the judge's current
// assignment, so a re-assignment retroactively changes historic totals
// on the next computation.
func scoreEntry(e model.ScoreEntry, usersByID map[string]model.User, postsByID map[string]model.Post) types.JudgeScoreDetail {
	detail := types.JudgeScoreDetail{
		JudgeID:   UnknownJudgeID,
		JudgeName: UnknownJudgeName,
		PostName:  UnknownPostName,
	}

	judge, judgeKnown := usersByID[e.JudgeID]
	if judgeKnown {
		detail.JudgeID = judge.ID
		detail.JudgeName = judge.Name
	}
	if post, ok := postsByID[e.PostID]; ok {
		detail.PostName = post.Name
	}

	scope := map[string]bool{}
	if judgeKnown {
		for _, id := range judge.AssignedCriteriaIDs {
			scope[id] = true
		}
	}

	sum := 0
	for criterionID, value := range e.Scores {
		// Empty scope means the judge owns every criterion at the post.
		if len(scope) == 0 || scope[criterionID] {
			sum += value
		}
	}
	detail.Score = sum
	return detail
}
