// Package types contains common read shapes used across the application
package types

// JudgeScoreDetail is one judge's scoped contribution to a team's total.
// Judge and post names fall back to sentinels when the reference data no
// longer resolves; the score still counts.
type JudgeScoreDetail struct {
	JudgeID   string `json:"judgeId"`
	JudgeName string `json:"judgeName"`
	PostName  string `json:"postName"`
	Score     int    `json:"score"`
}

// TeamTotalScore is the ranking unit for one category.
type TeamTotalScore struct {
	TeamID      string             `json:"teamId"`
	TeamName    string             `json:"teamName"`
	TeamNumber  string             `json:"teamNumber"`
	TotalScore  int                `json:"totalScore"`
	JudgeScores []JudgeScoreDetail `json:"judgeScores"`
}
