package manager

import (
	"math"
	"sort"
)

// CalculatedScore is the fallback ranking value used when no review has
// set an average rating yet: round((productivity+teamwork+creativity)/3).
func CalculatedScore(productivity, teamwork, creativity int) int {
	return int(math.Round(float64(productivity+teamwork+creativity) / 3))
}

// RankTopEmployees fills in calculated and effective scores, orders by
// calculated score desc, then average rating desc, then name asc, and
// returns at most limit entries.
func RankTopEmployees(members []RankedEmployee, limit int) []RankedEmployee {
	ranked := make([]RankedEmployee, len(members))
	copy(ranked, members)

	for i := range ranked {
		ranked[i].CalculatedScore = CalculatedScore(ranked[i].Productivity, ranked[i].Teamwork, ranked[i].Creativity)
		if ranked[i].AverageRating > 0 {
			ranked[i].Score = ranked[i].AverageRating
		} else {
			ranked[i].Score = ranked[i].CalculatedScore
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CalculatedScore != ranked[j].CalculatedScore {
			return ranked[i].CalculatedScore > ranked[j].CalculatedScore
		}
		if ranked[i].AverageRating != ranked[j].AverageRating {
			return ranked[i].AverageRating > ranked[j].AverageRating
		}
		return ranked[i].Name < ranked[j].Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
