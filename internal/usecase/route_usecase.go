package usecase

import (
	"context"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/polyline"
	"github.com/route-engine/internal/pkg/validator"
	"github.com/route-engine/internal/usecase/dto"
)

const defaultAlternatives = 3

// RouteEngine - генерация маршрута с POI
type RouteEngine interface {
	GenerateRoute(ctx context.Context, origin, destination domain.Coordinate, settings domain.RouteSettings) (*domain.GeneratedRoute, error)
}

type RouteUseCase struct {
	engine    RouteEngine
	routing   repository.RoutingRepository
	cacheRepo repository.CacheRepository
	routeTTL  time.Duration
	logger    *zap.Logger
}

func NewRouteUseCase(
	engine RouteEngine,
	routing repository.RoutingRepository,
	cacheRepo repository.CacheRepository,
	routeTTL time.Duration,
	logger *zap.Logger,
) *RouteUseCase {
	return &RouteUseCase{
		engine:    engine,
		routing:   routing,
		cacheRepo: cacheRepo,
		routeTTL:  routeTTL,
		logger:    logger,
	}
}

// CreateRoute генерирует и сохраняет маршрут; при Alternatives > 0 добавляет варианты
func (uc *RouteUseCase) CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (*dto.CreateRouteResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	settings := req.Settings.Merge(domain.DefaultRouteSettings())
	generated, err := uc.Generate(ctx, req.Origin.ToDomain(), req.Destination.ToDomain(), settings)
	if err != nil {
		return nil, err
	}

	resp := &dto.CreateRouteResponse{
		Route:       generated.Route,
		POIsOnRoute: generated.POIsOnRoute,
	}

	if req.Alternatives > 0 {
		results, err := uc.routing.RouteWithAlternatives(ctx,
			req.Origin.ToDomain(), req.Destination.ToDomain(),
			settings.TransportMode, req.Alternatives,
			domain.RouteOptions{AvoidHighways: settings.AvoidHighways, AvoidTolls: settings.AvoidTolls})
		if err != nil {
			uc.logger.Warn("Failed to get alternatives", zap.Error(err))
		} else {
			resp.Alternatives = summaries(results)
		}
	}

	return resp, nil
}

// Generate строит маршрут по готовым настройкам и сохраняет его в кеш
func (uc *RouteUseCase) Generate(
	ctx context.Context,
	origin, destination domain.Coordinate,
	settings domain.RouteSettings,
) (*domain.GeneratedRoute, error) {
	settings = normalizeSettings(settings)
	if settings.AdventureLevel < 0 || settings.AdventureLevel > 1 || !settings.TransportMode.IsValid() {
		return nil, errors.ErrInvalidSettings
	}

	generated, err := uc.engine.GenerateRoute(ctx, origin, destination, settings)
	if err != nil {
		return nil, err
	}

	if err := uc.cacheRepo.SetRoute(ctx, generated, uc.routeTTL); err != nil {
		uc.logger.Warn("Failed to store route",
			zap.String("route_id", generated.Route.ID),
			zap.Error(err))
	}

	uc.logger.Info("Route generated",
		zap.String("route_id", generated.Route.ID),
		zap.Int64("distance_m", generated.Route.Distance),
		zap.Int("pois", len(generated.POIsOnRoute)))

	return generated, nil
}

// normalizeSettings заполняет пустой режим значением по умолчанию.
// Пустой список категорий сохраняется: поиск без фильтра, предпочтение 0.3 для всех POI.
func normalizeSettings(settings domain.RouteSettings) domain.RouteSettings {
	if settings.TransportMode == "" {
		settings.TransportMode = domain.DefaultRouteSettings().TransportMode
	}
	return settings
}

func (uc *RouteUseCase) GetRouteByID(ctx context.Context, id string) (*domain.GeneratedRoute, error) {
	route, err := uc.cacheRepo.GetRoute(ctx, id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCacheError, err)
	}
	if route == nil {
		return nil, errors.ErrRouteNotFound
	}
	return route, nil
}

// GetRouteGeoJSON - маршрут в виде GeoJSON Feature с основными свойствами
func (uc *RouteUseCase) GetRouteGeoJSON(ctx context.Context, id string) (*geojson.Feature, error) {
	generated, err := uc.GetRouteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	route := generated.Route
	return polyline.ToFeature(polyline.FromLineString(route.Geometry), map[string]interface{}{
		"id":        route.ID,
		"distance":  route.Distance,
		"duration":  route.Duration,
		"backend":   route.Backend,
		"waypoints": len(route.Waypoints),
	}), nil
}

func (uc *RouteUseCase) GetAlternatives(ctx context.Context, req dto.AlternativesRequest) ([]dto.RouteSummary, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	count := req.Count
	if count == 0 {
		count = defaultAlternatives
	}

	results, err := uc.routing.RouteWithAlternatives(ctx,
		req.Origin.ToDomain(), req.Destination.ToDomain(),
		modeOrDefault(req.TransportMode), count,
		domain.RouteOptions{AvoidHighways: req.AvoidHighways, AvoidTolls: req.AvoidTolls})
	if err != nil {
		return nil, err
	}
	return summaries(results), nil
}

func (uc *RouteUseCase) Matrix(ctx context.Context, req dto.MatrixRequest) (*dto.MatrixResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	sources := make([]domain.Coordinate, len(req.Sources))
	for i, s := range req.Sources {
		sources[i] = s.ToDomain()
	}
	targets := make([]domain.Coordinate, len(req.Targets))
	for i, t := range req.Targets {
		targets[i] = t.ToDomain()
	}

	result, err := uc.routing.Matrix(ctx, sources, targets, modeOrDefault(req.TransportMode))
	if err != nil {
		return nil, err
	}
	return dto.NewMatrixResponse(result), nil
}

func (uc *RouteUseCase) SnapToRoad(ctx context.Context, req dto.SnapRequest) (*dto.SnapResponse, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	snapped := uc.routing.SnapToRoad(ctx, req.Point.ToDomain(), modeOrDefault(req.TransportMode))
	if snapped == nil {
		return &dto.SnapResponse{Found: false}, nil
	}

	point := dto.CoordinateFromDomain(*snapped)
	return &dto.SnapResponse{Found: true, Snapped: &point}, nil
}

// BackendStatus - закешированная доступность бэкендов маршрутизации
func (uc *RouteUseCase) BackendStatus() map[string]domain.BackendStatus {
	return uc.routing.BackendStatus()
}

func modeOrDefault(mode string) domain.TransportMode {
	if mode == "" {
		return domain.TransportModeCar
	}
	return domain.TransportMode(mode)
}

// summaries - краткое описание вариантов; геометрия склеивается из участков
func summaries(results []*domain.RouteResult) []dto.RouteSummary {
	out := make([]dto.RouteSummary, 0, len(results))
	for _, r := range results {
		legs, err := decodeLegs(r.Legs)
		if err != nil {
			continue
		}
		merged := mergeLegs(legs, r.Distance, r.Duration)
		out = append(out, dto.RouteSummary{
			Backend:  r.Backend,
			Distance: roundInt(r.Distance),
			Duration: roundInt(r.Duration),
			Geometry: polyline.ToLineString(merged.shape),
		})
	}
	return out
}
