package mood

import "github.com/sakif/mood-lantern/internal/model"

// PickRecommendations draws up to limit distinct recommendations for color.
//
// Entries for other colors are ignored. The draw is a partial Fisher-Yates
// shuffle over a copy of the eligible entries, so every eligible entry can
// be picked and none is returned twice. No eligible entries, or limit <= 0,
// yields an empty (non-nil) slice.
func PickRecommendations(pool []model.Recommendation, color model.Color, limit int, rnd Rand) []model.Recommendation {
	eligible := make([]model.Recommendation, 0, len(pool))
	for _, r := range pool {
		if r.Color == color {
			eligible = append(eligible, r)
		}
	}

	n := min(limit, len(eligible))
	if n <= 0 {
		return []model.Recommendation{}
	}

	for i := 0; i < n; i++ {
		j := i + rnd.IntN(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]
	}
	return eligible[:n]
}
