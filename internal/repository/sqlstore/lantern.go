package sqlstore

import (
	"context"

	"github.com/rs/xid"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/repository"
)

var _ repository.LanternRepository = (*DB)(nil)

const (
	defaultLanternLimit = 20
	maxLanternLimit     = 100
)

// CreateLantern appends a lantern. There is no update or delete: each
// release is a new row.
func (db *DB) CreateLantern(ctx context.Context, lantern *model.Lantern) error {
	lantern.ID = xid.New().String()
	lantern.ReleasedAt = lantern.ReleasedAt.UTC()

	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO lanterns (id, user_id, color, released_at) VALUES (?, ?, ?, ?)`),
		lantern.ID,
		lantern.UserID,
		int(lantern.Color),
		lantern.ReleasedAt,
	)
	if err != nil {
		return apperror.Storage("creating lantern", err)
	}
	return nil
}

// ListLanterns returns up to limit lanterns for the user, newest first.
func (db *DB) ListLanterns(ctx context.Context, userID string, limit int) ([]model.Lantern, error) {
	if limit <= 0 {
		limit = defaultLanternLimit
	}
	if limit > maxLanternLimit {
		limit = maxLanternLimit
	}

	rows, err := db.conn.QueryContext(ctx, db.rebind(
		`SELECT id, user_id, color, released_at
		 FROM lanterns
		 WHERE user_id = ?
		 ORDER BY released_at DESC, id DESC
		 LIMIT ?`),
		userID, limit,
	)
	if err != nil {
		return nil, apperror.Storage("listing lanterns", err)
	}
	defer rows.Close()

	lanterns := make([]model.Lantern, 0, limit)
	for rows.Next() {
		var (
			l     model.Lantern
			color int
		)
		if err := rows.Scan(&l.ID, &l.UserID, &color, &l.ReleasedAt); err != nil {
			return nil, apperror.Storage("scanning lantern", err)
		}
		l.Color = model.Color(color)
		lanterns = append(lanterns, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Storage("iterating lanterns", err)
	}

	return lanterns, nil
}
