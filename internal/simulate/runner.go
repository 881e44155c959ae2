package simulate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/langkah/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete scoring simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting scoring simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("teamsPerCategory", config.NumTeams),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config, client); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Authenticate as administrator
	token, err := login(ctx, config, client)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	// Step 3: Create teams in every category
	teams, err := createTeams(ctx, config, client, token, stats)
	if err != nil {
		return fmt.Errorf("team creation failed: %w", err)
	}

	// Step 4: Discover judges and posts
	users, err := fetchUsers(ctx, config, client)
	if err != nil {
		return fmt.Errorf("user discovery failed: %w", err)
	}
	posts, err := fetchPosts(ctx, config, client)
	if err != nil {
		return fmt.Errorf("post discovery failed: %w", err)
	}

	// Step 5: Generate submissions
	submissions := generateSubmissions(ctx, teams, users, posts, stats)
	if len(submissions) == 0 {
		return fmt.Errorf("no submissions generated: no judges with post assignments")
	}

	// Step 6: Submit scores concurrently. The admin token may submit on
	// behalf of any judge.
	if err := submitScores(ctx, config, token, submissions, stats); err != nil {
		return fmt.Errorf("score submission failed: %w", err)
	}

	// Step 7: Retrieve rankings per category
	rankings, err := retrieveRankings(ctx, config, client, stats)
	if err != nil {
		return fmt.Errorf("ranking retrieval failed: %w", err)
	}

	// Step 8: Verify results
	if err := verifyResults(rankings, submissions, config.Verbose); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 9: Save submissions to file
	if err := saveSubmissionsToFile(ctx, config, submissions); err != nil {
		logger.Get().Warn(ctx, "failed to save submissions to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config, client *HTTPClient) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// login exchanges the administrator credentials for a bearer token.
func login(ctx context.Context, config *Config, client *HTTPClient) (string, error) {
	body := map[string]string{
		"role":     "ADMIN",
		"username": config.AdminName,
		"password": config.AdminPassword,
	}

	resp, err := client.Post(ctx, config.BaseURL+"/login", "", body)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	respBody, err := readResponseBody(resp)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := unmarshalJSON(respBody, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("empty token in login response")
	}

	logger.Get().Info(ctx, "logged in as administrator", logger.String("name", config.AdminName))
	return out.Token, nil
}

// saveSubmissionsToFile saves the generated submissions to a JSON file.
func saveSubmissionsToFile(ctx context.Context, config *Config, submissions []Submission) error {
	if len(submissions) == 0 {
		return fmt.Errorf("no submissions to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "submissions_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, sub := range submissions {
		jsonData, err := marshalJSON(sub)
		if err != nil {
			return fmt.Errorf("failed to marshal submission %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write submission %d: %w", i, err)
		}

		if i < len(submissions)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var successRate, submissionsPerSecond float64

	if stats.SubmissionsSent > 0 {
		successRate = float64(stats.SubmissionsOK+stats.SubmissionsReplaced) /
			float64(stats.SubmissionsSent) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		submissionsPerSecond = float64(stats.SubmissionsSent) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("teamsCreated", stats.TeamsCreated),
		logger.Int("submissionsGenerated", stats.SubmissionsGenerated),
		logger.Int("submissionsSent", stats.SubmissionsSent),
		logger.Int("submissionsOK", stats.SubmissionsOK),
		logger.Int("submissionsReplaced", stats.SubmissionsReplaced),
		logger.Int("submissionsFailed", stats.SubmissionsFailed),
		logger.Int("categoriesRetrieved", stats.CategoriesRetrieved),
		logger.Int("rankedTeams", stats.RankedTeams),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("submissionsPerSecond", submissionsPerSecond))
}
