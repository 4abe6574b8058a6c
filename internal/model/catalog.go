package model

// QuestionCategory partitions the question catalog (sleep, emotion, ...).
type QuestionCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Question is a single Likert-style prompt. The catalog is seeded by
// migrations and read-only at runtime.
type Question struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"categoryId"`
	Text       string `json:"text"`
}

// Recommendation is a suggested action for a given color.
type Recommendation struct {
	ID     int64  `json:"id"`
	Color  Color  `json:"color"`
	Action string `json:"action"`
	Detail string `json:"detail"`
}
