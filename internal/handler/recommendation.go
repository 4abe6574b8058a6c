package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
)

// RecommendationService is what RecommendationHandler needs.
type RecommendationService interface {
	Pick(ctx context.Context, color model.Color, limit int) ([]model.Recommendation, error)
}

type RecommendationHandler struct {
	recommendations RecommendationService
	logger          *slog.Logger
}

func NewRecommendationHandler(svc RecommendationService, logger *slog.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendations: svc, logger: logger}
}

// HandlePick returns random recommendations for a color.
//
// HTTP: GET /api/recommendations?color=3&limit=2
//
// color is required (1-5). limit is optional; the service treats a missing
// or non-positive limit as 1 and caps it at 10.
func (h *RecommendationHandler) HandlePick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	color, err := strconv.Atoi(q.Get("color"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("color", "color must be an integer between 1 and 5"))
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperror.ValidationFailed("limit", "limit must be an integer"))
			return
		}
	}

	recs, err := h.recommendations.Pick(r.Context(), model.Color(color), limit)
	if err != nil {
		h.logger.Debug("recommendations unavailable",
			slog.Int("color", color),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
}
