package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/mood"
	"github.com/sakif/mood-lantern/internal/repository"
)

// Limits for RecommendationService.Pick. A non-positive limit means "one";
// anything above MaxRecommendationLimit is capped.
const (
	DefaultRecommendationLimit = 1
	MaxRecommendationLimit     = 10
)

// RecommendationService draws random suggestions for a color.
type RecommendationService struct {
	catalog repository.CatalogRepository
	rnd     mood.Rand
	logger  *slog.Logger
}

func NewRecommendationService(catalog repository.CatalogRepository, rnd mood.Rand, logger *slog.Logger) *RecommendationService {
	if rnd == nil {
		rnd = mood.DefaultRand()
	}
	return &RecommendationService{catalog: catalog, rnd: rnd, logger: logger}
}

// Pick returns up to limit distinct recommendations for color. A color with
// no recommendations yields an empty slice, not an error.
func (s *RecommendationService) Pick(ctx context.Context, color model.Color, limit int) ([]model.Recommendation, error) {
	if !color.Valid() {
		return nil, apperror.ValidationFailed("color",
			"must be between "+strconv.Itoa(int(model.MinColor))+" and "+strconv.Itoa(int(model.MaxColor)))
	}

	switch {
	case limit <= 0:
		limit = DefaultRecommendationLimit
	case limit > MaxRecommendationLimit:
		limit = MaxRecommendationLimit
	}

	pool, err := s.catalog.ListRecommendations(ctx, color)
	if err != nil {
		logFailure(s.logger, "loading recommendations failed", err, slog.Int("color", int(color)))
		return nil, fmt.Errorf("service/recommendation: loading: %w", err)
	}

	return mood.PickRecommendations(pool, color, limit, s.rnd), nil
}
