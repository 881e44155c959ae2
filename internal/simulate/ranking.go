package simulate

import (
	"context"
	"fmt"
	"log"
	"net/url"
)

// retrieveRankings fetches the ranking for every category.
func retrieveRankings(ctx context.Context, config *Config, client *HTTPClient, stats *Stats) (map[Category][]RankedTeam, error) {
	categories := allCategories()
	log.Printf("Retrieving rankings for %d categories...", len(categories))

	out := make(map[Category][]RankedTeam, len(categories))
	for _, cat := range categories {
		ranked, err := retrieveSingleRanking(ctx, client, config.BaseURL, cat)
		if err != nil {
			return nil, fmt.Errorf("ranking %s %s: %w", cat.Level, cat.Gender, err)
		}
		out[cat] = ranked
		stats.CategoriesRetrieved++
		stats.RankedTeams += len(ranked)

		if config.Verbose {
			log.Printf("Category %s %s: %d ranked teams", cat.Level, cat.Gender, len(ranked))
		}
	}

	log.Printf("Retrieved %d categories with %d ranked teams", stats.CategoriesRetrieved, stats.RankedTeams)
	return out, nil
}

// retrieveSingleRanking fetches the ranking for one category.
func retrieveSingleRanking(ctx context.Context, client *HTTPClient, baseURL string, cat Category) ([]RankedTeam, error) {
	u := fmt.Sprintf("%s/ranking?level=%s&gender=%s",
		baseURL, url.QueryEscape(string(cat.Level)), url.QueryEscape(string(cat.Gender)))

	resp, err := client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var ranked []RankedTeam
	if err := unmarshalJSON(body, &ranked); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return ranked, nil
}
