package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
)

// LanternService is what LanternHandler needs.
type LanternService interface {
	Release(ctx context.Context, userID string) (*model.Lantern, error)
	History(ctx context.Context, userID string, limit int) ([]model.Lantern, error)
}

type LanternHandler struct {
	lanterns LanternService
	logger   *slog.Logger
}

func NewLanternHandler(svc LanternService, logger *slog.Logger) *LanternHandler {
	return &LanternHandler{lanterns: svc, logger: logger}
}

// HandleRelease releases a lantern colored by the last seven days.
//
// HTTP: POST /api/lanterns
//
// 201 with the new lantern; 404 when the user has no check-ins this week.
func (h *LanternHandler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	lantern, err := h.lanterns.Release(r.Context(), userID)
	if err != nil {
		h.logger.Debug("lantern not released",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lantern)
}

// HandleHistory lists the user's lanterns, newest first.
//
// HTTP: GET /api/lanterns?limit=20
func (h *LanternHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperror.ValidationFailed("limit", "limit must be an integer"))
			return
		}
		limit = n
	}

	lanterns, err := h.lanterns.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"lanterns": lanterns})
}
