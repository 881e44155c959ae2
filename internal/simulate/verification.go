package simulate

import (
	"fmt"
	"log"
)

// verifyResults checks the retrieved rankings against totals computed
// locally from the submissions that were actually sent.
func verifyResults(rankings map[Category][]RankedTeam, submissions []Submission, verbose bool) error {
	log.Println("Verifying results...")

	expected := expectedTotals(submissions)

	var mismatches int
	for cat, ranked := range rankings {
		if err := verifyOrdering(ranked); err != nil {
			return fmt.Errorf("category %s %s: %w", cat.Level, cat.Gender, err)
		}

		for _, row := range ranked {
			want, ok := expected[row.TeamID]
			if !ok {
				continue
			}
			if row.TotalScore != want {
				mismatches++
				log.Printf("Mismatch in %s %s: team %s has total %d, expected %d",
					cat.Level, cat.Gender, row.TeamName, row.TotalScore, want)
			}
		}
	}

	if mismatches > 0 {
		return fmt.Errorf("%d teams with mismatched totals", mismatches)
	}

	displayTopTeams(rankings, verbose)
	log.Println("Result verification completed")
	return nil
}

// expectedTotals sums each team's submitted scores. Later submissions
// for the same (team, post, judge) key replace earlier ones, matching
// the ledger's upsert semantics.
func expectedTotals(submissions []Submission) map[string]int {
	type key struct {
		teamID  string
		postID  string
		judgeID string
	}

	latest := make(map[key]Submission, len(submissions))
	for _, sub := range submissions {
		latest[key{sub.TeamID, sub.PostID, sub.JudgeID}] = sub
	}

	totals := make(map[string]int)
	for _, sub := range latest {
		sum := 0
		for _, v := range sub.Scores {
			sum += v
		}
		totals[sub.TeamID] += sum
	}
	return totals
}

// verifyOrdering checks totals are non-increasing down the list.
func verifyOrdering(ranked []RankedTeam) error {
	for i := 1; i < len(ranked); i++ {
		if ranked[i].TotalScore > ranked[i-1].TotalScore {
			return fmt.Errorf("ranking not sorted: position %d outranks position %d", i, i-1)
		}
	}
	return nil
}

// displayTopTeams shows the leader of every category.
func displayTopTeams(rankings map[Category][]RankedTeam, verbose bool) {
	for cat, ranked := range rankings {
		if len(ranked) == 0 {
			continue
		}
		top := ranked[0]
		log.Printf("Leader %s %s: #%s %s with %d points",
			cat.Level, cat.Gender, top.TeamNumber, top.TeamName, top.TotalScore)

		if verbose {
			limit := 5
			if len(ranked) < limit {
				limit = len(ranked)
			}
			for i := 1; i < limit; i++ {
				log.Printf("   %d. %s - %d points", i+1, ranked[i].TeamName, ranked[i].TotalScore)
			}
		}
	}
}
