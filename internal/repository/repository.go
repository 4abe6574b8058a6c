// Package repository declares the storage interfaces the services depend on.
//
// Implementations live in sub-packages (sqlstore). Every method takes a
// context so a cancelled request also cancels its queries. Missing rows are
// reported as apperror.ErrNotFound and driver failures as apperror.ErrStorage.
package repository

import (
	"context"
	"time"

	"github.com/sakif/mood-lantern/internal/model"
)

type UserRepository interface {
	// CreateUser assigns ID and timestamps. A duplicate email is ErrConflict.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type CheckInRepository interface {
	// FindCheckIn returns the user's record for date with its answers.
	FindCheckIn(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error)

	// SaveCheckIn upserts the (UserID, Date) record and replaces its answers
	// in a single transaction. On return checkIn carries the persisted ID and
	// timestamps. If any write fails nothing is changed.
	SaveCheckIn(ctx context.Context, checkIn *model.CheckIn, answers []model.Answer) error

	// ListCheckIns returns records with from <= date <= to, oldest first.
	// Answers are not loaded.
	ListCheckIns(ctx context.Context, userID string, from, to time.Time) ([]model.CheckIn, error)
}

type CatalogRepository interface {
	ListQuestionsByCategory(ctx context.Context) (map[int64][]model.Question, error)
	// MissingQuestionIDs returns the ids from ids that have no question.
	MissingQuestionIDs(ctx context.Context, ids []int64) ([]int64, error)
	ListRecommendations(ctx context.Context, color model.Color) ([]model.Recommendation, error)
}

type LanternRepository interface {
	// CreateLantern assigns ID. ReleasedAt is set by the caller.
	CreateLantern(ctx context.Context, lantern *model.Lantern) error
	// ListLanterns returns the user's lanterns, newest first.
	ListLanterns(ctx context.Context, userID string, limit int) ([]model.Lantern, error)
}
