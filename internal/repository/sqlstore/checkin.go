package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/repository"
)

var _ repository.CheckInRepository = (*DB)(nil)

// SaveCheckIn writes one day's record and its answers atomically.
//
// The record is upserted on the (user_id, checkin_date) UNIQUE key, so a
// second submission on the same day keeps the original row ID and
// created_at but takes the new color and recommendation. The day's answers
// are then deleted and re-inserted from answers. All of it runs in one
// transaction: if any answer insert fails (for example a foreign-key
// violation on question_id), the previous record and answers are left as
// they were.
//
// Two concurrent submissions for the same day serialise on the row: the one
// that commits last wins, and its answer set is the only one left.
func (db *DB) SaveCheckIn(ctx context.Context, checkIn *model.CheckIn, answers []model.Answer) error {
	now := time.Now().UTC()
	date := checkIn.DateString()

	var recommendationID any
	if checkIn.RecommendationID != nil {
		recommendationID = *checkIn.RecommendationID
	}

	saved := make([]model.DailyAnswer, 0, len(answers))

	err := db.withTx(ctx, func(tx dbtx) error {
		_, err := tx.ExecContext(ctx, db.rebind(
			`INSERT INTO checkins (id, user_id, checkin_date, color_id, recommendation_id, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (user_id, checkin_date) DO UPDATE SET
			     color_id = excluded.color_id,
			     recommendation_id = excluded.recommendation_id,
			     updated_at = excluded.updated_at`),
			xid.New().String(),
			checkIn.UserID,
			date,
			int(checkIn.Color),
			recommendationID,
			now,
			now,
		)
		if err != nil {
			return fmt.Errorf("upserting check-in: %w", err)
		}

		err = tx.QueryRowContext(ctx, db.rebind(
			`SELECT id, created_at FROM checkins WHERE user_id = ? AND checkin_date = ?`),
			checkIn.UserID, date,
		).Scan(&checkIn.ID, &checkIn.CreatedAt)
		if err != nil {
			return fmt.Errorf("reading back check-in: %w", err)
		}

		if _, err := tx.ExecContext(ctx, db.rebind(
			`DELETE FROM checkin_answers WHERE checkin_id = ?`), checkIn.ID,
		); err != nil {
			return fmt.Errorf("clearing answers: %w", err)
		}

		for _, a := range answers {
			ans := model.DailyAnswer{
				ID:         xid.New().String(),
				CheckInID:  checkIn.ID,
				QuestionID: a.QuestionID,
				Choice:     a.Choice,
			}
			if _, err := tx.ExecContext(ctx, db.rebind(
				`INSERT INTO checkin_answers (id, checkin_id, question_id, choice) VALUES (?, ?, ?, ?)`),
				ans.ID, ans.CheckInID, ans.QuestionID, ans.Choice,
			); err != nil {
				return fmt.Errorf("inserting answer for question %d: %w", a.QuestionID, err)
			}
			saved = append(saved, ans)
		}
		return nil
	})
	if err != nil {
		return apperror.Storage("saving check-in", err)
	}

	checkIn.UpdatedAt = now
	checkIn.Answers = saved
	return nil
}

// FindCheckIn returns the record for (userID, date) with its answers, each
// carrying the question text. Returns apperror.ErrNotFound if the user has
// not checked in that day.
func (db *DB) FindCheckIn(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error) {
	day := date.Format(model.DateLayout)

	c, err := scanCheckIn(db.conn.QueryRowContext(ctx, db.rebind(
		`SELECT id, user_id, checkin_date, color_id, recommendation_id, created_at, updated_at
		 FROM checkins
		 WHERE user_id = ? AND checkin_date = ?`),
		userID, day,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("check-in", day)
		}
		return nil, apperror.Storage("finding check-in", err)
	}

	rows, err := db.conn.QueryContext(ctx, db.rebind(
		`SELECT a.id, a.checkin_id, a.question_id, q.text, a.choice
		 FROM checkin_answers a
		 JOIN questions q ON q.id = a.question_id
		 WHERE a.checkin_id = ?
		 ORDER BY q.category_id, a.question_id`),
		c.ID,
	)
	if err != nil {
		return nil, apperror.Storage("listing answers", err)
	}
	defer rows.Close()

	c.Answers = []model.DailyAnswer{}
	for rows.Next() {
		var a model.DailyAnswer
		if err := rows.Scan(&a.ID, &a.CheckInID, &a.QuestionID, &a.QuestionText, &a.Choice); err != nil {
			return nil, apperror.Storage("scanning answer", err)
		}
		c.Answers = append(c.Answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterating answers", err)
	}

	return c, nil
}

// ListCheckIns returns the user's records with from <= date <= to, oldest
// first. Dates are stored as YYYY-MM-DD text, so the range comparison is a
// plain string comparison on both backends.
func (db *DB) ListCheckIns(ctx context.Context, userID string, from, to time.Time) ([]model.CheckIn, error) {
	rows, err := db.conn.QueryContext(ctx, db.rebind(
		`SELECT id, user_id, checkin_date, color_id, recommendation_id, created_at, updated_at
		 FROM checkins
		 WHERE user_id = ? AND checkin_date >= ? AND checkin_date <= ?
		 ORDER BY checkin_date ASC`),
		userID,
		from.Format(model.DateLayout),
		to.Format(model.DateLayout),
	)
	if err != nil {
		return nil, apperror.Storage("listing check-ins", err)
	}
	defer rows.Close()

	checkIns := make([]model.CheckIn, 0, 7)
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, apperror.Storage("scanning check-in", err)
		}
		checkIns = append(checkIns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterating check-ins", err)
	}

	return checkIns, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckIn(row rowScanner) (*model.CheckIn, error) {
	var (
		c              model.CheckIn
		day            string
		color          int
		recommendation sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.UserID, &day, &color, &recommendation, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	date, err := time.Parse(model.DateLayout, day)
	if err != nil {
		return nil, fmt.Errorf("parsing check-in date %q: %w", day, err)
	}
	c.Date = date
	c.Color = model.Color(color)
	if recommendation.Valid {
		id := recommendation.Int64
		c.RecommendationID = &id
	}
	return &c, nil
}
