package simulate

import (
	"time"

	"github.com/okian/langkah/internal/domain/model"
)

// Config holds configuration for the scoring simulation
type Config struct {
	BaseURL       string        // Base URL of the service
	NumTeams      int           // Number of teams to create per category
	Workers       int           // Number of concurrent workers
	Timeout       time.Duration // HTTP request timeout
	OutputFile    string        // Output file for submissions
	LogFile       string        // Log file for simulation output
	AdminName     string        // Administrator login name
	AdminPassword string        // Administrator password
	Verbose       bool          // Enable verbose logging
}

// Submission represents one score submission on the wire
type Submission struct {
	TeamID  string         `json:"teamId"`
	PostID  string         `json:"postId"`
	JudgeID string         `json:"judgeId"`
	Scores  map[string]int `json:"scores"`
	Notes   string         `json:"notes,omitempty"`
}

// RankedTeam represents one row of a category ranking response
type RankedTeam struct {
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName"`
	TeamNumber string `json:"teamNumber"`
	TotalScore int    `json:"totalScore"`
}

// AckResponse represents the response from a score submission
type AckResponse struct {
	Status   string `json:"status"`
	Replaced bool   `json:"replaced"`
}

// Category pairs a level with a gender.
type Category struct {
	Level  model.Level
	Gender model.Gender
}

// Stats holds simulation statistics
type Stats struct {
	TeamsCreated         int
	SubmissionsGenerated int
	SubmissionsSent      int
	SubmissionsOK        int
	SubmissionsReplaced  int
	SubmissionsFailed    int
	CategoriesRetrieved  int
	RankedTeams          int
	StartTime            time.Time
	EndTime              time.Time
	Duration             time.Duration
}
