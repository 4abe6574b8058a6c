package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

const userColumns = `id, name, email, password_hash, prefecture, birthday, gender, created_at, updated_at`

// CreateUser inserts a new user. ID and timestamps are generated here and
// written back into user. The email column is UNIQUE; a duplicate is
// reported as apperror.ErrConflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	var birthday any
	if user.Birthday != nil {
		birthday = user.Birthday.Format(model.DateLayout)
	}

	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Prefecture,
		birthday,
		user.Gender,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", user.Email)
		}
		return apperror.Storage("creating user", err)
	}

	return nil
}

// GetUserByID retrieves a user by internal ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind(
		`SELECT `+userColumns+` FROM users WHERE id = ?`), id)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, apperror.Storage("getting user", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email. The caller normalises case.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := db.conn.QueryRowContext(ctx, db.rebind(
		`SELECT `+userColumns+` FROM users WHERE email = ?`), email)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", email)
		}
		return nil, apperror.Storage("getting user by email", err)
	}
	return u, nil
}

func scanUser(row *sql.Row) (*model.User, error) {
	var (
		u        model.User
		birthday sql.NullString
	)
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Prefecture,
		&birthday,
		&u.Gender,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthday.Valid && birthday.String != "" {
		b, err := time.Parse(model.DateLayout, birthday.String)
		if err != nil {
			return nil, err
		}
		u.Birthday = &b
	}
	return &u, nil
}
