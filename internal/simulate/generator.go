package simulate

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"

	"github.com/okian/langkah/internal/domain/model"
	"github.com/okian/langkah/pkg/logger"
)

// allCategories enumerates every level and gender combination.
func allCategories() []Category {
	var out []Category
	for _, level := range []model.Level{model.LevelSD, model.LevelSMP, model.LevelSMA, model.LevelUmum} {
		for _, gender := range []model.Gender{model.GenderPutra, model.GenderPutri} {
			out = append(out, Category{Level: level, Gender: gender})
		}
	}
	return out
}

// randomInt returns a random int in [0, max] using crypto/rand.
func randomInt(max int) int {
	if max <= 0 {
		return 0
	}
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max+1)))
	return int(n.Int64())
}

type teamRequest struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Level  string `json:"level"`
	Gender string `json:"gender"`
}

// createTeams registers NumTeams teams in every category and returns
// the created records.
func createTeams(ctx context.Context, config *Config, client *HTTPClient, token string, stats *Stats) ([]model.Team, error) {
	categories := allCategories()
	total := config.NumTeams * len(categories)
	logger.Get().Info(ctx, "creating teams", logger.Int("perCategory", config.NumTeams), logger.Int("total", total))

	url := config.BaseURL + "/teams"
	teams := make([]model.Team, 0, total)
	number := 1

	for _, cat := range categories {
		for i := 0; i < config.NumTeams; i++ {
			req := teamRequest{
				Name:   fmt.Sprintf("Regu %s %s %02d", cat.Level, cat.Gender, i+1),
				Number: fmt.Sprintf("%03d", number),
				Level:  string(cat.Level),
				Gender: string(cat.Gender),
			}
			number++

			resp, err := client.Post(ctx, url, token, req)
			if err != nil {
				return nil, fmt.Errorf("create team %q: %w", req.Name, err)
			}
			body, err := readResponseBody(resp)
			if err != nil {
				return nil, fmt.Errorf("create team %q: %w", req.Name, err)
			}
			if resp.StatusCode != StatusCreated {
				return nil, fmt.Errorf("create team %q: HTTP %d: %s", req.Name, resp.StatusCode, string(body))
			}

			var created model.Team
			if err := unmarshalJSON(body, &created); err != nil {
				return nil, fmt.Errorf("create team %q: parse response: %w", req.Name, err)
			}
			teams = append(teams, created)
		}
	}

	stats.TeamsCreated = len(teams)
	logger.Get().Info(ctx, "teams created", logger.Int("count", len(teams)))
	return teams, nil
}

// fetchUsers retrieves the registered users.
func fetchUsers(ctx context.Context, config *Config, client *HTTPClient) ([]model.User, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/users")
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("fetch users: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var users []model.User
	if err := unmarshalJSON(body, &users); err != nil {
		return nil, fmt.Errorf("fetch users: parse response: %w", err)
	}
	return users, nil
}

// fetchPosts retrieves the scoring posts.
func fetchPosts(ctx context.Context, config *Config, client *HTTPClient) ([]model.Post, error) {
	resp, err := client.Get(ctx, config.BaseURL+"/posts")
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("fetch posts: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var posts []model.Post
	if err := unmarshalJSON(body, &posts); err != nil {
		return nil, fmt.Errorf("fetch posts: parse response: %w", err)
	}
	return posts, nil
}

// generateSubmissions builds one submission per team and judge, scoring
// the judge's assigned criteria at their post. Judges without a post
// assignment are skipped.
func generateSubmissions(ctx context.Context, teams []model.Team, users []model.User, posts []model.Post, stats *Stats) []Submission {
	postsByID := make(map[string]model.Post, len(posts))
	for _, p := range posts {
		postsByID[p.ID] = p
	}

	var subs []Submission
	for _, u := range users {
		if u.Role != model.RoleJudge || u.AssignedPostID == "" {
			continue
		}
		post, ok := postsByID[u.AssignedPostID]
		if !ok {
			log.Printf("judge %s assigned to unknown post %s, skipping", u.Name, u.AssignedPostID)
			continue
		}

		// Empty assignment means the judge scores every criterion.
		criteria := post.Criteria
		if len(u.AssignedCriteriaIDs) > 0 {
			assigned := make(map[string]bool, len(u.AssignedCriteriaIDs))
			for _, id := range u.AssignedCriteriaIDs {
				assigned[id] = true
			}
			scoped := criteria[:0:0]
			for _, c := range criteria {
				if assigned[c.ID] {
					scoped = append(scoped, c)
				}
			}
			criteria = scoped
		}

		for _, t := range teams {
			scores := make(map[string]int, len(criteria))
			for _, c := range criteria {
				scores[c.ID] = randomInt(c.MaxScore)
			}
			subs = append(subs, Submission{
				TeamID:  t.ID,
				PostID:  post.ID,
				JudgeID: u.ID,
				Scores:  scores,
			})
		}
	}

	stats.SubmissionsGenerated = len(subs)
	logger.Get().Info(ctx, "generated submissions", logger.Int("count", len(subs)))
	return subs
}
