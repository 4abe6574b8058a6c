package mood

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sakif/mood-lantern/internal/model"
)

// scriptedRand returns the queued values in order (each taken modulo n) and
// then keeps returning 0. It lets tests pin exactly which element is drawn.
type scriptedRand struct {
	values []int
	calls  int
}

func (r *scriptedRand) IntN(n int) int {
	r.calls++
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func answers(choices ...int) []model.Answer {
	out := make([]model.Answer, len(choices))
	for i, c := range choices {
		out[i] = model.Answer{QuestionID: int64(i + 1), Choice: c}
	}
	return out
}

// =========================================================================
// SCORE
// =========================================================================

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		choices []int
		want    model.Color
	}{
		{"empty is neutral", nil, model.ColorCloud},
		{"all fives", []int{5, 5, 5, 5, 5}, model.ColorRainbow},
		{"mean exactly 4.5", []int{5, 4}, model.ColorRainbow},
		{"mean 4.4", []int{5, 5, 4, 4, 4}, model.ColorSun},
		{"mean exactly 3.5", []int{4, 3}, model.ColorSun},
		{"mean exactly 2.5", []int{3, 2}, model.ColorCloud},
		{"mean exactly 1.5", []int{2, 1}, model.ColorRain},
		{"mean 1.4", []int{2, 2, 1, 1, 1}, model.ColorStorm},
		{"all ones", []int{1, 1, 1, 1, 1}, model.ColorStorm},
		{"single three", []int{3}, model.ColorCloud},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(answers(tt.choices...)); got != tt.want {
				t.Errorf("Score(%v) = %d, want %d", tt.choices, got, tt.want)
			}
		})
	}
}

func TestColorForMean_Boundaries(t *testing.T) {
	tests := []struct {
		mean float64
		want model.Color
	}{
		{5.0, model.ColorRainbow},
		{4.5, model.ColorRainbow},
		{4.49999, model.ColorSun},
		{3.5, model.ColorSun},
		{3.49999, model.ColorCloud},
		{2.5, model.ColorCloud},
		{2.49999, model.ColorRain},
		{1.5, model.ColorRain},
		{1.49999, model.ColorStorm},
		{1.0, model.ColorStorm},
	}

	for _, tt := range tests {
		if got := colorForMean(tt.mean); got != tt.want {
			t.Errorf("colorForMean(%v) = %d, want %d", tt.mean, got, tt.want)
		}
	}
}

func TestScore_OrderIndependent(t *testing.T) {
	a := Score(answers(1, 5, 3, 4, 2))
	b := Score(answers(5, 4, 3, 2, 1))
	if a != b {
		t.Errorf("Score depends on order: %d vs %d", a, b)
	}
}

// =========================================================================
// DAILY QUESTIONS
// =========================================================================

func catalog() map[int64][]model.Question {
	return map[int64][]model.Question{
		5: {{ID: 22, CategoryID: 5}, {ID: 23, CategoryID: 5}},
		1: {{ID: 1, CategoryID: 1}, {ID: 2, CategoryID: 1}, {ID: 3, CategoryID: 1}},
		3: {{ID: 12, CategoryID: 3}},
		2: {{ID: 6, CategoryID: 2}, {ID: 7, CategoryID: 2}},
		4: {{ID: 17, CategoryID: 4}, {ID: 18, CategoryID: 4}},
	}
}

func TestSelectDailyQuestions_OnePerCategoryInOrder(t *testing.T) {
	rnd := &scriptedRand{values: []int{2, 1, 0, 1, 0}}

	got := SelectDailyQuestions(catalog(), rnd)

	wantIDs := []int64{3, 7, 12, 18, 22}
	if len(got) != len(wantIDs) {
		t.Fatalf("got %d questions, want %d", len(got), len(wantIDs))
	}
	for i, q := range got {
		if q.ID != wantIDs[i] {
			t.Errorf("question[%d].ID = %d, want %d", i, q.ID, wantIDs[i])
		}
		if q.CategoryID != int64(i+1) {
			t.Errorf("question[%d].CategoryID = %d, want %d", i, q.CategoryID, i+1)
		}
	}
}

func TestSelectDailyQuestions_SkipsEmptyCategory(t *testing.T) {
	c := catalog()
	c[3] = nil

	got := SelectDailyQuestions(c, &scriptedRand{})

	if len(got) != 4 {
		t.Fatalf("got %d questions, want 4", len(got))
	}
	for _, q := range got {
		if q.CategoryID == 3 {
			t.Errorf("empty category 3 contributed question %d", q.ID)
		}
	}
}

func TestSelectDailyQuestions_FreshDrawEachCall(t *testing.T) {
	rnd := &scriptedRand{}

	SelectDailyQuestions(catalog(), rnd)
	SelectDailyQuestions(catalog(), rnd)

	if rnd.calls != 10 {
		t.Errorf("Rand called %d times over two calls, want 10", rnd.calls)
	}
}

func TestSelectDailyQuestions_AtMostOnePerCategory(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		got := SelectDailyQuestions(catalog(), rnd)
		if len(got) > 5 {
			t.Fatalf("got %d questions, want at most 5", len(got))
		}
		seen := map[int64]bool{}
		for _, q := range got {
			if seen[q.CategoryID] {
				t.Fatalf("category %d drawn twice", q.CategoryID)
			}
			seen[q.CategoryID] = true
		}
	}
}

func TestSelectDailyQuestions_EmptyCatalog(t *testing.T) {
	got := SelectDailyQuestions(map[int64][]model.Question{}, &scriptedRand{})
	if len(got) != 0 {
		t.Errorf("got %d questions from an empty catalog", len(got))
	}
}

// =========================================================================
// RECOMMENDATIONS
// =========================================================================

func recommendationPool() []model.Recommendation {
	return []model.Recommendation{
		{ID: 1, Color: model.ColorStorm, Action: "rest"},
		{ID: 2, Color: model.ColorCloud, Action: "walk"},
		{ID: 3, Color: model.ColorCloud, Action: "tea"},
		{ID: 4, Color: model.ColorSun, Action: "call a friend"},
		{ID: 5, Color: model.ColorCloud, Action: "stretch"},
	}
}

func TestPickRecommendations_DistinctAndMatchingColor(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		got := PickRecommendations(recommendationPool(), model.ColorCloud, 2, rnd)
		if len(got) != 2 {
			t.Fatalf("got %d recommendations, want 2", len(got))
		}
		if got[0].ID == got[1].ID {
			t.Fatalf("duplicate recommendation %d", got[0].ID)
		}
		for _, r := range got {
			if r.Color != model.ColorCloud {
				t.Fatalf("recommendation %d has color %d, want 3", r.ID, r.Color)
			}
		}
	}
}

func TestPickRecommendations_Scripted(t *testing.T) {
	// eligible order is [2, 3, 5]; draw index 2 then index 0 of the rest.
	rnd := &scriptedRand{values: []int{2, 0}}

	got := PickRecommendations(recommendationPool(), model.ColorCloud, 2, rnd)

	if len(got) != 2 || got[0].ID != 5 || got[1].ID != 3 {
		t.Errorf("got %+v, want IDs [5 3]", got)
	}
}

func TestPickRecommendations_EveryEntryReachable(t *testing.T) {
	rnd := rand.New(rand.NewPCG(3, 4))
	seen := map[int64]bool{}
	for i := 0; i < 300; i++ {
		for _, r := range PickRecommendations(recommendationPool(), model.ColorCloud, 1, rnd) {
			seen[r.ID] = true
		}
	}
	for _, id := range []int64{2, 3, 5} {
		if !seen[id] {
			t.Errorf("recommendation %d never drawn", id)
		}
	}
}

func TestPickRecommendations_NoEligible(t *testing.T) {
	got := PickRecommendations(recommendationPool(), model.ColorRainbow, 3, &scriptedRand{})
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty non-nil slice", got)
	}
}

func TestPickRecommendations_LimitAboveEligible(t *testing.T) {
	got := PickRecommendations(recommendationPool(), model.ColorCloud, 10, &scriptedRand{})
	if len(got) != 3 {
		t.Errorf("got %d recommendations, want all 3 eligible", len(got))
	}
}

func TestPickRecommendations_DoesNotMutatePool(t *testing.T) {
	pool := recommendationPool()
	PickRecommendations(pool, model.ColorCloud, 3, &scriptedRand{values: []int{2, 1}})
	for i, r := range recommendationPool() {
		if pool[i] != r {
			t.Fatalf("pool[%d] changed to %+v", i, pool[i])
		}
	}
}

// =========================================================================
// WEEK + LANTERN
// =========================================================================

func TestWeekWindow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	asOf := time.Date(2026, 10, 17, 23, 30, 0, 0, tokyo)

	from, to := WeekWindow(asOf)

	wantFrom := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", from, wantFrom)
	}
	if !to.Equal(wantTo) {
		t.Errorf("to = %v, want %v", to, wantTo)
	}
}

func TestLanternColor(t *testing.T) {
	tests := []struct {
		name   string
		colors []model.Color
		want   model.Color
	}{
		{"mean 4.67 rounds up", []model.Color{5, 5, 4}, 5},
		{"mean 1.5 rounds to even 2", []model.Color{1, 2}, 2},
		{"mean 2.5 rounds to even 2", []model.Color{2, 3}, 2},
		{"mean 3.5 rounds to even 4", []model.Color{3, 4}, 4},
		{"mean 4.5 rounds to even 4", []model.Color{4, 5}, 4},
		{"single color", []model.Color{1}, 1},
		{"full week", []model.Color{3, 3, 4, 2, 5, 3, 3}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LanternColor(tt.colors)
			if !ok {
				t.Fatal("LanternColor() ok = false, want true")
			}
			if got != tt.want {
				t.Errorf("LanternColor(%v) = %d, want %d", tt.colors, got, tt.want)
			}
		})
	}
}

func TestLanternColor_Empty(t *testing.T) {
	if _, ok := LanternColor(nil); ok {
		t.Error("LanternColor(nil) ok = true, want false")
	}
}
