package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-date format used in URLs and in the database.
const DateLayout = "2006-01-02"

// Answer is one submitted choice. It only exists as part of a check-in
// submission and is persisted as a DailyAnswer.
type Answer struct {
	QuestionID int64 `json:"questionId" validate:"required,gt=0"`
	Choice     int   `json:"choice"     validate:"required,min=1,max=5"`
}

// CheckIn is a user's record for one calendar day.
//
// There is at most one CheckIn per (UserID, Date). Submitting again on the
// same day overwrites Color and replaces Answers.
//
// Date is a calendar date: midnight UTC of the day it represents, regardless
// of the zone that was used to decide what "today" is.
type CheckIn struct {
	ID               string        `json:"id"`
	UserID           string        `json:"userId"`
	Date             time.Time     `json:"-"`
	Color            Color         `json:"color"`
	RecommendationID *int64        `json:"recommendationId,omitempty"`
	Answers          []DailyAnswer `json:"answers,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// DateString formats Date as YYYY-MM-DD.
func (c CheckIn) DateString() string {
	return c.Date.Format(DateLayout)
}

// MarshalJSON renders Date as "YYYY-MM-DD" instead of a full timestamp.
func (c CheckIn) MarshalJSON() ([]byte, error) {
	type alias CheckIn
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(c),
		Date:  c.DateString(),
	})
}

// DailyAnswer is a persisted answer belonging to exactly one CheckIn.
// QuestionText is filled in by reads that join the catalog.
type DailyAnswer struct {
	ID           string `json:"id"`
	CheckInID    string `json:"checkInId"`
	QuestionID   int64  `json:"questionId"`
	QuestionText string `json:"questionText,omitempty"`
	Choice       int    `json:"choice"`
}

// CalendarDate truncates t to its calendar day in t's own location and
// returns that day as midnight UTC.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
