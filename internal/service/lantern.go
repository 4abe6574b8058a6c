package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/mood"
	"github.com/sakif/mood-lantern/internal/repository"
)

// WeeklyAggregator is the slice of CheckInService the lantern flow needs.
type WeeklyAggregator interface {
	WeeklyColors(ctx context.Context, userID string, asOf time.Time) ([]model.Color, error)
}

// LanternService turns the trailing week of check-ins into a lantern.
type LanternService struct {
	users    repository.UserRepository
	weekly   WeeklyAggregator
	lanterns repository.LanternRepository
	cal      calendar
	logger   *slog.Logger
}

func NewLanternService(
	users repository.UserRepository,
	weekly WeeklyAggregator,
	lanterns repository.LanternRepository,
	clock Clock,
	loc *time.Location,
	logger *slog.Logger,
) *LanternService {
	return &LanternService{
		users:    users,
		weekly:   weekly,
		lanterns: lanterns,
		cal:      newCalendar(clock, loc),
		logger:   logger,
	}
}

// Release appends a new lantern whose color is the rounded mean of the
// user's colors over the trailing week. A user with no check-ins in that
// week gets NotFound and nothing is written.
//
// Lanterns are never updated: releasing twice in one day stores two rows.
func (s *LanternService) Release(ctx context.Context, userID string) (*model.Lantern, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		logFailure(s.logger, "resolving user failed", err, slog.String("userID", userID))
		return nil, fmt.Errorf("service/lantern: resolving user: %w", err)
	}

	colors, err := s.weekly.WeeklyColors(ctx, userID, s.cal.today())
	if err != nil {
		return nil, fmt.Errorf("service/lantern: %w", err)
	}

	color, ok := mood.LanternColor(colors)
	if !ok {
		return nil, apperror.NotFound("check-ins in the last week for user", userID)
	}

	lantern := &model.Lantern{
		UserID:     userID,
		Color:      color,
		ReleasedAt: s.cal.now().UTC(),
	}
	if err := s.lanterns.CreateLantern(ctx, lantern); err != nil {
		logFailure(s.logger, "creating lantern failed", err, slog.String("userID", userID))
		return nil, fmt.Errorf("service/lantern: creating: %w", err)
	}

	s.logger.Info("lantern released",
		slog.String("userID", userID),
		slog.Int("color", int(color)),
		slog.Int("days", len(colors)),
	)

	return lantern, nil
}

// History returns up to limit of the user's lanterns, newest first. The
// store applies its own default and cap to limit.
func (s *LanternService) History(ctx context.Context, userID string, limit int) ([]model.Lantern, error) {
	lanterns, err := s.lanterns.ListLanterns(ctx, userID, limit)
	if err != nil {
		logFailure(s.logger, "listing lanterns failed", err, slog.String("userID", userID))
		return nil, fmt.Errorf("service/lantern: listing: %w", err)
	}
	return lanterns, nil
}
