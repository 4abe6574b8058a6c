package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
)

// The tests in this file drive the store through go-sqlmock to reach paths a
// real database rarely produces: a driver error halfway through a
// transaction, and the Postgres placeholder form.

func newMockDB(t *testing.T, driver Driver) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewFromConn(conn, driver), mock
}

func TestSaveCheckIn_DriverErrorRollsBack(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO checkins")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, created_at FROM checkins")).
		WithArgs("u1", "2024-05-01").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c1", time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM checkin_answers")).
		WithArgs("c1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO checkin_answers")).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	c := &model.CheckIn{UserID: "u1", Date: day("2024-05-01"), Color: model.ColorCloud}
	err := db.SaveCheckIn(context.Background(), c, []model.Answer{{QuestionID: 1, Choice: 3}})
	if !errors.Is(err, apperror.ErrStorage) {
		t.Fatalf("SaveCheckIn() error = %v, want ErrStorage", err)
	}
	if c.Answers != nil {
		t.Errorf("Answers = %v after failure, want untouched", c.Answers)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveCheckIn_BeginFails(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	c := &model.CheckIn{UserID: "u1", Date: day("2024-05-01"), Color: model.ColorCloud}
	err := db.SaveCheckIn(context.Background(), c, nil)
	if !errors.Is(err, apperror.ErrStorage) {
		t.Fatalf("SaveCheckIn() error = %v, want ErrStorage", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListRecommendations_PostgresPlaceholders(t *testing.T) {
	db, mock := newMockDB(t, DriverPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE color_id = $1 ORDER BY id")).
		WithArgs(int(model.ColorSun)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "color_id", "action", "detail"}).
			AddRow(int64(10), 4, "Message a friend", "").
			AddRow(int64(11), 4, "Try something new", ""))

	recs, err := db.ListRecommendations(context.Background(), model.ColorSun)
	if err != nil {
		t.Fatalf("ListRecommendations() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListCheckIns_QueryError(t *testing.T) {
	db, mock := newMockDB(t, DriverSQLite)

	mock.ExpectQuery(regexp.QuoteMeta("FROM checkins")).
		WillReturnError(errors.New("connection reset"))

	_, err := db.ListCheckIns(context.Background(), "u1", day("2024-05-01"), day("2024-05-07"))
	if !errors.Is(err, apperror.ErrStorage) {
		t.Fatalf("ListCheckIns() error = %v, want ErrStorage", err)
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		driver Driver
		in     string
		want   string
	}{
		{DriverSQLite, "a = ? AND b = ?", "a = ? AND b = ?"},
		{DriverPostgres, "a = ? AND b = ?", "a = $1 AND b = $2"},
		{DriverPostgres, "IN (" + placeholders(3) + ")", "IN ($1, $2, $3)"},
	}
	for _, tt := range tests {
		db := &DB{driver: tt.driver}
		if got := db.rebind(tt.in); got != tt.want {
			t.Errorf("rebind(%q) [%s] = %q, want %q", tt.in, tt.driver, got, tt.want)
		}
	}
}
