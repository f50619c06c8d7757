package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/metrics"
)

// maxDistanceFactor - бюджет длины маршрута по умолчанию относительно базового
const maxDistanceFactor = 1.5

// RouteGenerator строит маршрут с заездами к интересным местам вдоль пути
type RouteGenerator struct {
	routing  repository.RoutingRepository
	corridor *CorridorSearch
	selector *WaypointSelector
	logger   *zap.Logger
}

func NewRouteGenerator(
	routing repository.RoutingRepository,
	finder POIFinder,
	cfg config.RoutingConfig,
	logger *zap.Logger,
) *RouteGenerator {
	return &RouteGenerator{
		routing:  routing,
		corridor: NewCorridorSearch(finder, cfg, logger),
		selector: NewWaypointSelector(routing, cfg, logger),
		logger:   logger,
	}
}

// GenerateRoute строит базовый маршрут и, если позволяют настройки и бюджет,
// добавляет в него лучшие POI из коридора. Ошибкой завершаются только
// построение базового и финального маршрутов.
func (g *RouteGenerator) GenerateRoute(
	ctx context.Context,
	origin, destination domain.Coordinate,
	settings domain.RouteSettings,
) (*domain.GeneratedRoute, error) {
	g.logger.Info("Generating route",
		zap.Float64("origin_lat", origin.Latitude),
		zap.Float64("origin_lng", origin.Longitude),
		zap.Float64("destination_lat", destination.Latitude),
		zap.Float64("destination_lng", destination.Longitude),
		zap.Float64("adventure_level", settings.AdventureLevel))

	options := domain.RouteOptions{
		AvoidHighways: settings.AvoidHighways,
		AvoidTolls:    settings.AvoidTolls,
	}

	base, err := g.routing.Route(ctx, domain.RouteRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        settings.TransportMode,
		Options:     options,
	})
	if err != nil {
		g.logger.Error("Failed to build base route", zap.Error(err))
		return nil, err
	}

	g.logger.Debug("Base route",
		zap.String("backend", base.Backend),
		zap.Float64("distance_m", base.Distance),
		zap.Float64("duration_s", base.Duration))

	selected := g.selectWaypoints(ctx, origin, destination, base, settings)
	metrics.WaypointsSelected.Observe(float64(len(selected)))

	if len(selected) == 0 {
		metrics.RoutesGenerated.WithLabelValues("base").Inc()
		return assembleRoute(origin, destination, nil, base, settings)
	}

	ordered := g.selector.Order(ctx, origin, destination, selected, settings.TransportMode)

	waypoints := make([]domain.Coordinate, len(ordered))
	for i, wp := range ordered {
		waypoints[i] = wp.POI.Coordinates
	}

	final, err := g.routing.Route(ctx, domain.RouteRequest{
		Origin:      origin,
		Destination: destination,
		Waypoints:   waypoints,
		Mode:        settings.TransportMode,
		Options:     options,
	})
	if err != nil {
		g.logger.Error("Failed to build route through waypoints",
			zap.Int("waypoints", len(waypoints)),
			zap.Error(err))
		return nil, err
	}

	metrics.RoutesGenerated.WithLabelValues("detour").Inc()
	return assembleRoute(origin, destination, ordered, final, settings)
}

// selectWaypoints возвращает пустой список, когда отклонение не нужно или невозможно
func (g *RouteGenerator) selectWaypoints(
	ctx context.Context,
	origin, destination domain.Coordinate,
	base *domain.RouteResult,
	settings domain.RouteSettings,
) []domain.ScoredPOI {
	if settings.AdventureLevel == 0 {
		return nil
	}

	maxDistance := base.Distance * maxDistanceFactor
	if settings.MaxDistance != nil && *settings.MaxDistance > 0 {
		maxDistance = *settings.MaxDistance
	}
	if maxDistance-base.Distance <= 0 {
		g.logger.Debug("No detour budget, returning base route",
			zap.Float64("max_distance", maxDistance))
		return nil
	}

	pois := g.corridor.Find(ctx, origin, destination, base.Distance, settings)
	if len(pois) == 0 {
		return nil
	}

	scored := ScorePOIs(pois, origin, destination, settings.POICategories)
	selected := g.selector.Select(scored, origin, destination, maxDistance)

	g.logger.Debug("Waypoints selected",
		zap.Int("candidates", len(pois)),
		zap.Int("selected", len(selected)))
	return selected
}
