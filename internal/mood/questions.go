package mood

import (
	"slices"

	"github.com/sakif/mood-lantern/internal/model"
)

// SelectDailyQuestions draws one question per category.
//
// Categories are visited in ascending id order so the result is ordered by
// category. A category with no questions is skipped, so the result can be
// shorter than the number of keys in byCategory.
func SelectDailyQuestions(byCategory map[int64][]model.Question, rnd Rand) []model.Question {
	categoryIDs := make([]int64, 0, len(byCategory))
	for id := range byCategory {
		categoryIDs = append(categoryIDs, id)
	}
	slices.Sort(categoryIDs)

	selected := make([]model.Question, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		pool := byCategory[id]
		if len(pool) == 0 {
			continue
		}
		selected = append(selected, pool[rnd.IntN(len(pool))])
	}
	return selected
}
