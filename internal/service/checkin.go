package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/mood"
	"github.com/sakif/mood-lantern/internal/repository"
)

// CheckInService records daily check-ins and answers questions about them:
// today's questions, the trailing week, a single day.
type CheckInService struct {
	users    repository.UserRepository
	checkins repository.CheckInRepository
	catalog  repository.CatalogRepository
	rnd      mood.Rand
	cal      calendar
	logger   *slog.Logger
}

// NewCheckInService wires a CheckInService. A nil rnd uses mood.DefaultRand,
// a nil clock uses time.Now and a nil loc uses UTC.
func NewCheckInService(
	users repository.UserRepository,
	checkins repository.CheckInRepository,
	catalog repository.CatalogRepository,
	rnd mood.Rand,
	clock Clock,
	loc *time.Location,
	logger *slog.Logger,
) *CheckInService {
	if rnd == nil {
		rnd = mood.DefaultRand()
	}
	return &CheckInService{
		users:    users,
		checkins: checkins,
		catalog:  catalog,
		rnd:      rnd,
		cal:      newCalendar(clock, loc),
		logger:   logger,
	}
}

// Today returns the calendar date check-ins are currently filed under.
func (s *CheckInService) Today() time.Time {
	return s.cal.today()
}

// DailyQuestions draws one question from each non-empty category, in
// category order. Every call draws afresh; refreshing the page may show a
// different set.
func (s *CheckInService) DailyQuestions(ctx context.Context) ([]model.Question, error) {
	byCategory, err := s.catalog.ListQuestionsByCategory(ctx)
	if err != nil {
		logFailure(s.logger, "loading question catalog failed", err)
		return nil, fmt.Errorf("service/checkin: loading questions: %w", err)
	}
	return mood.SelectDailyQuestions(byCategory, s.rnd), nil
}

// Submit files answers under today's date. See SaveCheckIn.
func (s *CheckInService) Submit(ctx context.Context, userID string, answers []model.Answer) (*model.CheckIn, error) {
	return s.SaveCheckIn(ctx, userID, s.cal.today(), answers)
}

// SaveCheckIn scores answers and stores them as the user's record for date.
//
// Steps:
//  1. Validate choices (1..5) and reject a question answered twice.
//  2. Resolve the user (NotFound if unknown).
//  3. Check every question id against the catalog. One unknown id rejects
//     the whole submission with InvalidReference before anything is written.
//  4. Score the answers and pick one recommendation for the color, if any.
//  5. Upsert the day's record and replace its answers in one transaction.
//
// Submitting again for the same date overwrites the color and replaces the
// answers; the result reflects only the latest submission. An empty answer
// set is accepted and scores as the neutral color.
func (s *CheckInService) SaveCheckIn(ctx context.Context, userID string, date time.Time, answers []model.Answer) (*model.CheckIn, error) {
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		logFailure(s.logger, "resolving user failed", err, slog.String("userID", userID))
		return nil, fmt.Errorf("service/checkin: resolving user: %w", err)
	}

	if len(answers) > 0 {
		ids := make([]int64, len(answers))
		for i, a := range answers {
			ids[i] = a.QuestionID
		}
		missing, err := s.catalog.MissingQuestionIDs(ctx, ids)
		if err != nil {
			logFailure(s.logger, "checking question ids failed", err)
			return nil, fmt.Errorf("service/checkin: checking questions: %w", err)
		}
		if len(missing) > 0 {
			return nil, apperror.InvalidReference("question", joinIDs(missing))
		}
	}

	checkIn := &model.CheckIn{
		UserID: userID,
		Date:   model.CalendarDate(date),
		Color:  mood.Score(answers),
	}

	rec, err := s.pickOne(ctx, checkIn.Color)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		checkIn.RecommendationID = &rec.ID
	}

	if err := s.checkins.SaveCheckIn(ctx, checkIn, answers); err != nil {
		logFailure(s.logger, "saving check-in failed", err,
			slog.String("userID", userID),
			slog.String("date", checkIn.DateString()),
		)
		return nil, fmt.Errorf("service/checkin: saving: %w", err)
	}

	s.logger.Info("check-in saved",
		slog.String("userID", userID),
		slog.String("date", checkIn.DateString()),
		slog.Int("color", int(checkIn.Color)),
		slog.Int("answers", len(answers)),
	)

	return checkIn, nil
}

// WeeklyColors returns the colors of the user's check-ins in the seven
// calendar days ending on asOf, oldest first. Days without a check-in are
// simply absent, so the result has between 0 and 7 entries.
func (s *CheckInService) WeeklyColors(ctx context.Context, userID string, asOf time.Time) ([]model.Color, error) {
	records, err := s.week(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}

	colors := make([]model.Color, len(records))
	for i, r := range records {
		colors[i] = r.Color
	}
	return colors, nil
}

// Week is the trailing seven-day window and the records found in it.
type Week struct {
	From     time.Time
	To       time.Time
	CheckIns []model.CheckIn
}

// Weekly returns the full records for the trailing week ending today. Today
// is read once, so From and To always describe the window that was queried.
func (s *CheckInService) Weekly(ctx context.Context, userID string) (*Week, error) {
	asOf := s.cal.today()
	records, err := s.week(ctx, userID, asOf)
	if err != nil {
		return nil, err
	}
	from, to := mood.WeekWindow(asOf)
	return &Week{From: from, To: to, CheckIns: records}, nil
}

// Day returns the user's record for date including answers and question
// texts. NotFound if the user did not check in that day.
func (s *CheckInService) Day(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error) {
	c, err := s.checkins.FindCheckIn(ctx, userID, model.CalendarDate(date))
	if err != nil {
		logFailure(s.logger, "loading check-in failed", err, slog.String("userID", userID))
		return nil, fmt.Errorf("service/checkin: loading day: %w", err)
	}
	return c, nil
}

func (s *CheckInService) week(ctx context.Context, userID string, asOf time.Time) ([]model.CheckIn, error) {
	from, to := mood.WeekWindow(asOf)
	records, err := s.checkins.ListCheckIns(ctx, userID, from, to)
	if err != nil {
		logFailure(s.logger, "listing check-ins failed", err, slog.String("userID", userID))
		return nil, fmt.Errorf("service/checkin: listing week: %w", err)
	}
	return records, nil
}

// pickOne returns one random recommendation for color, or nil when the
// catalog has none for it.
func (s *CheckInService) pickOne(ctx context.Context, color model.Color) (*model.Recommendation, error) {
	pool, err := s.catalog.ListRecommendations(ctx, color)
	if err != nil {
		logFailure(s.logger, "loading recommendations failed", err)
		return nil, fmt.Errorf("service/checkin: loading recommendations: %w", err)
	}
	picked := mood.PickRecommendations(pool, color, 1, s.rnd)
	if len(picked) == 0 {
		return nil, nil
	}
	return &picked[0], nil
}

func validateAnswers(answers []model.Answer) error {
	seen := make(map[int64]bool, len(answers))
	for i, a := range answers {
		field := fmt.Sprintf("answers[%d]", i)
		if a.QuestionID <= 0 {
			return apperror.ValidationFailed(field+".questionId", "must be a positive question id")
		}
		if a.Choice < 1 || a.Choice > 5 {
			return apperror.ValidationFailed(field+".choice", "must be between 1 and 5")
		}
		if seen[a.QuestionID] {
			return apperror.ValidationFailed(field+".questionId",
				fmt.Sprintf("question %d is answered more than once", a.QuestionID))
		}
		seen[a.QuestionID] = true
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
