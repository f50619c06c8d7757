package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/geo"
)

const (
	defaultMaxWaypoints       = 10
	defaultMinWaypointSpacing = 2000.0
	locationMatchEpsilon      = 1e-4
)

// WaypointSelector жадно отбирает POI и упорядочивает их для финального маршрута
type WaypointSelector struct {
	routing      repository.RoutingRepository
	maxWaypoints int
	minSpacing   float64
	logger       *zap.Logger
}

func NewWaypointSelector(routing repository.RoutingRepository, cfg config.RoutingConfig, logger *zap.Logger) *WaypointSelector {
	s := &WaypointSelector{
		routing:      routing,
		maxWaypoints: cfg.MaxWaypoints,
		minSpacing:   cfg.MinWaypointSpacing,
		logger:       logger,
	}
	if s.maxWaypoints <= 0 {
		s.maxWaypoints = defaultMaxWaypoints
	}
	if s.minSpacing <= 0 {
		s.minSpacing = defaultMinWaypointSpacing
	}
	return s
}

// Select проходит по кандидатам в порядке оценки. Кандидат пропускается, если
// оценка длины маршрута превысит maxDistance или он ближе minSpacing к уже выбранному.
func (s *WaypointSelector) Select(
	scored []domain.ScoredPOI,
	origin, destination domain.Coordinate,
	maxDistance float64,
) []domain.ScoredPOI {
	var selected []domain.ScoredPOI
	estimated := geo.HaversineDistance(origin, destination)

	for _, candidate := range scored {
		if len(selected) >= s.maxWaypoints {
			break
		}

		next := estimated + candidate.DetourEstimate
		if next > maxDistance {
			continue
		}
		if s.tooClose(candidate, selected) {
			continue
		}

		selected = append(selected, candidate)
		estimated = next
	}

	return selected
}

func (s *WaypointSelector) tooClose(candidate domain.ScoredPOI, selected []domain.ScoredPOI) bool {
	for _, sel := range selected {
		if geo.HaversineDistance(sel.POI.Coordinates, candidate.POI.Coordinates) < s.minSpacing {
			return true
		}
	}
	return false
}

// Order упорядочивает выбранные точки. До двух точек порядок не меняется;
// иначе порядок берётся у оптимизатора, при ошибке - по удалённости от origin.
func (s *WaypointSelector) Order(
	ctx context.Context,
	origin, destination domain.Coordinate,
	selected []domain.ScoredPOI,
	mode domain.TransportMode,
) []domain.ScoredPOI {
	if len(selected) <= 2 {
		return selected
	}

	ordered, err := s.optimizedOrder(ctx, origin, destination, selected, mode)
	if err != nil {
		s.logger.Warn("Failed to optimize waypoint order, using distance from origin", zap.Error(err))
		return orderByDistance(origin, selected)
	}
	return ordered
}

func (s *WaypointSelector) optimizedOrder(
	ctx context.Context,
	origin, destination domain.Coordinate,
	selected []domain.ScoredPOI,
	mode domain.TransportMode,
) ([]domain.ScoredPOI, error) {
	locations := make([]domain.Coordinate, 0, len(selected)+2)
	locations = append(locations, origin)
	for _, sel := range selected {
		locations = append(locations, sel.POI.Coordinates)
	}
	locations = append(locations, destination)

	result, err := s.routing.OptimizedOrder(ctx, locations, mode)
	if err != nil {
		return nil, err
	}
	if len(result.Locations) < 2 {
		return nil, fmt.Errorf("optimizer returned %d locations", len(result.Locations))
	}

	used := make([]bool, len(selected))
	ordered := make([]domain.ScoredPOI, 0, len(selected))
	for _, loc := range result.Locations[1 : len(result.Locations)-1] {
		for i, sel := range selected {
			if used[i] || !matchesLocation(sel.POI.Coordinates, loc) {
				continue
			}
			used[i] = true
			ordered = append(ordered, sel)
			break
		}
	}

	if len(ordered) != len(selected) {
		return nil, fmt.Errorf("matched %d of %d optimized locations", len(ordered), len(selected))
	}
	return ordered, nil
}

func matchesLocation(a, b domain.Coordinate) bool {
	return math.Abs(a.Latitude-b.Latitude) < locationMatchEpsilon &&
		math.Abs(a.Longitude-b.Longitude) < locationMatchEpsilon
}

func orderByDistance(origin domain.Coordinate, selected []domain.ScoredPOI) []domain.ScoredPOI {
	ordered := make([]domain.ScoredPOI, len(selected))
	copy(ordered, selected)
	sort.SliceStable(ordered, func(i, j int) bool {
		return geo.HaversineDistance(origin, ordered[i].POI.Coordinates) <
			geo.HaversineDistance(origin, ordered[j].POI.Coordinates)
	})
	return ordered
}
