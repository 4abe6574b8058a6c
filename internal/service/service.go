// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services take repository interfaces, never *sqlstore.DB, so the tests in
// this package run against small in-memory fakes. They know nothing about
// HTTP: the authenticated user arrives as a plain user ID argument, already
// resolved by the auth middleware.
//
// Randomness and time are injected too. A CheckInService built with a
// scripted mood.Rand and a fixed Clock is fully deterministic, which is how
// the tests pin the question draw, the recommendation pick and the
// trailing-week window.
package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
)

// Clock returns the current instant. time.Now in production.
type Clock func() time.Time

// calendar decides what "today" is. A check-in submitted at 23:30 in Tokyo
// belongs to that Tokyo date even though it is still the previous day in UTC.
type calendar struct {
	now Clock
	loc *time.Location
}

func newCalendar(clock Clock, loc *time.Location) calendar {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return calendar{now: clock, loc: loc}
}

// today returns the current calendar date in the configured zone, as
// midnight UTC (see model.CalendarDate).
func (c calendar) today() time.Time {
	return model.CalendarDate(c.now().In(c.loc))
}

// logFailure logs err at Error level when it is a storage failure. Expected
// outcomes such as NotFound or a validation error are the caller's problem
// and are not logged here.
func logFailure(logger *slog.Logger, msg string, err error, attrs ...any) {
	if !errors.Is(err, apperror.ErrStorage) {
		return
	}
	logger.Error(msg, append(attrs, slog.String("error", err.Error()))...)
}
