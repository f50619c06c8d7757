package usecase

import (
	"math"
	"sort"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/geo"
)

// Веса факторов оценки, в сумме 1
const (
	weightRating      = 0.25
	weightUniqueness  = 0.20
	weightProximity   = 0.25
	weightClustering  = 0.15
	weightPreference  = 0.15
	clusterRadius     = 1000.0
	proximityFraction = 0.3
)

// ScorePOIs оценивает кандидатов относительно прямой origin-destination.
// Результат отсортирован по убыванию оценки; при равенстве сохраняется исходный порядок.
func ScorePOIs(
	pois []*domain.POI,
	origin, destination domain.Coordinate,
	preferences []domain.POICategory,
) []domain.ScoredPOI {
	direct := geo.HaversineDistance(origin, destination)

	categoryCount := make(map[domain.POICategory]int, len(pois))
	for _, poi := range pois {
		categoryCount[poi.Category]++
	}

	scored := make([]domain.ScoredPOI, 0, len(pois))
	for _, poi := range pois {
		distanceFromLine := geo.DistanceToLine(poi.Coordinates, origin, destination)
		detour := geo.HaversineDistance(origin, poi.Coordinates) +
			geo.HaversineDistance(poi.Coordinates, destination) - direct

		score := weightRating*ratingFactor(poi) +
			weightUniqueness*(1-float64(categoryCount[poi.Category])/float64(len(pois))) +
			weightProximity*proximityFactor(distanceFromLine, direct) +
			weightClustering*clusterFactor(poi, pois) +
			weightPreference*preferenceFactor(poi, preferences)

		scored = append(scored, domain.ScoredPOI{
			POI:              poi,
			Score:            score,
			DistanceFromLine: distanceFromLine,
			DetourEstimate:   detour,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

func ratingFactor(poi *domain.POI) float64 {
	if poi.Rating == nil {
		return 0.5
	}
	return *poi.Rating / 5
}

// proximityFactor - 0 дальше 30% прямого расстояния от линии.
// Совпадающие origin и destination: 1 только для точки на месте старта.
func proximityFactor(distanceFromLine, direct float64) float64 {
	limit := direct * proximityFraction
	if limit == 0 {
		if distanceFromLine == 0 {
			return 1
		}
		return 0
	}
	return math.Max(0, 1-distanceFromLine/limit)
}

func clusterFactor(poi *domain.POI, all []*domain.POI) float64 {
	nearby := 0
	for _, other := range all {
		if other == poi || (other.ID != "" && other.ID == poi.ID) {
			continue
		}
		if geo.HaversineDistance(poi.Coordinates, other.Coordinates) <= clusterRadius {
			nearby++
		}
	}
	return math.Min(float64(nearby)/3, 1)
}

func preferenceFactor(poi *domain.POI, preferences []domain.POICategory) float64 {
	if domain.ContainsCategory(preferences, poi.Category) {
		return 1
	}
	return 0.3
}
