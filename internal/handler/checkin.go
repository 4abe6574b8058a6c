package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/service"
)

// CheckInService is what CheckInHandler needs from the service layer.
type CheckInService interface {
	DailyQuestions(ctx context.Context) ([]model.Question, error)
	Submit(ctx context.Context, userID string, answers []model.Answer) (*model.CheckIn, error)
	Weekly(ctx context.Context, userID string) (*service.Week, error)
	Day(ctx context.Context, userID string, date time.Time) (*model.CheckIn, error)
}

// CheckInHandler serves the daily questions and the check-in endpoints.
type CheckInHandler struct {
	checkins CheckInService
	logger   *slog.Logger
}

func NewCheckInHandler(svc CheckInService, logger *slog.Logger) *CheckInHandler {
	return &CheckInHandler{checkins: svc, logger: logger}
}

type checkInRequest struct {
	Answers []model.Answer `json:"answers" validate:"max=50,dive"`
}

// weekResponse lists the trailing week. Colors repeats the records' colors
// in the same order for clients that only draw the strip.
type weekResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Colors   []model.Color   `json:"colors"`
	CheckIns []model.CheckIn `json:"checkIns"`
}

// HandleQuestions returns one random question per category.
//
// HTTP: GET /api/questions
func (h *CheckInHandler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.checkins.DailyQuestions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

// HandleSubmit records today's check-in for the authenticated user.
//
// HTTP: POST /api/checkins
// REQUEST BODY: {"answers":[{"questionId":3,"choice":4}, ...]}
//
// 201 with the stored record. Submitting again the same day replaces the
// earlier answers and color. 422 if any questionId is unknown.
func (h *CheckInHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req checkInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	checkIn, err := h.checkins.Submit(r.Context(), userID, req.Answers)
	if err != nil {
		h.logger.Debug("check-in rejected",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, checkIn)
}

// HandleWeek returns the user's check-ins for the seven days ending today.
//
// HTTP: GET /api/checkins/week
func (h *CheckInHandler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	week, err := h.checkins.Weekly(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := weekResponse{
		From:     week.From.Format(model.DateLayout),
		To:       week.To.Format(model.DateLayout),
		Colors:   make([]model.Color, len(week.CheckIns)),
		CheckIns: week.CheckIns,
	}
	for i, c := range week.CheckIns {
		resp.Colors[i] = c.Color
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDay returns one day's record with its answers and question texts.
//
// HTTP: GET /api/checkins/{date}   (date is YYYY-MM-DD)
func (h *CheckInHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	raw := chi.URLParam(r, "date")
	date, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		writeError(w, apperror.ValidationFailed("date", "date must be in YYYY-MM-DD format"))
		return
	}

	checkIn, err := h.checkins.Day(r.Context(), userID, date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, checkIn)
}
