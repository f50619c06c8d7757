package usecase

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/geo"
)

const (
	defaultCorridorWidthFactor = 0.1
	defaultCorridorMaxWidth    = 20000.0
)

// POIFinder - поиск POI внутри полигона
type POIFinder interface {
	FindInPolygon(ctx context.Context, polygon []domain.Coordinate, categories []domain.POICategory, limit int) ([]*domain.POI, error)
}

// CorridorSearch ищет кандидатов в коридоре вокруг прямой origin-destination
type CorridorSearch struct {
	finder      POIFinder
	widthFactor float64
	maxWidth    float64
	limit       int
	logger      *zap.Logger
}

func NewCorridorSearch(finder POIFinder, cfg config.RoutingConfig, logger *zap.Logger) *CorridorSearch {
	s := &CorridorSearch{
		finder:      finder,
		widthFactor: cfg.CorridorWidthFactor,
		maxWidth:    cfg.CorridorMaxWidth,
		limit:       cfg.POISearchLimit,
		logger:      logger,
	}
	if s.widthFactor <= 0 {
		s.widthFactor = defaultCorridorWidthFactor
	}
	if s.maxWidth <= 0 {
		s.maxWidth = defaultCorridorMaxWidth
	}
	if s.limit <= 0 {
		s.limit = defaultPOILimit
	}
	return s
}

// Width - полуширина коридора в метрах
func (s *CorridorSearch) Width(baseDistance, adventureLevel float64) float64 {
	base := math.Min(baseDistance*s.widthFactor, s.maxWidth)
	return base * (0.5 + 0.5*adventureLevel)
}

// Find возвращает POI в коридоре. Ошибка поиска даёт пустой список.
func (s *CorridorSearch) Find(
	ctx context.Context,
	origin, destination domain.Coordinate,
	baseDistance float64,
	settings domain.RouteSettings,
) []*domain.POI {
	width := s.Width(baseDistance, settings.AdventureLevel)
	polygon := geo.CreateLineBuffer(origin, destination, width)

	s.logger.Debug("Searching POIs in corridor",
		zap.Float64("width_m", width),
		zap.Int("categories", len(settings.POICategories)))

	pois, err := s.finder.FindInPolygon(ctx, polygon, settings.POICategories, s.limit)
	if err != nil {
		s.logger.Warn("Corridor POI lookup failed", zap.Error(err))
		return nil
	}
	return pois
}
