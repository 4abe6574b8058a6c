package model

import "time"

// Lantern condenses a week of check-ins into one color. Lanterns are
// append-only: every release creates a new row and rows are never updated.
type Lantern struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Color      Color     `json:"color"`
	ReleasedAt time.Time `json:"releasedAt"`
}
