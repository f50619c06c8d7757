package usecase_test

import (
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/polyline"
)

var (
	valenciaOrigin      = domain.Coordinate{Latitude: 39.47, Longitude: -0.376}
	valenciaDestination = domain.Coordinate{Latitude: 39.46, Longitude: -0.38}
)

func ptrFloat64(v float64) *float64 { return &v }

func newPOI(id string, lat, lng float64, category domain.POICategory, rating *float64) *domain.POI {
	return &domain.POI{
		ID:          id,
		Name:        "POI " + id,
		Coordinates: domain.Coordinate{Latitude: lat, Longitude: lng},
		Category:    category,
		Rating:      rating,
		Source:      domain.POISourceOSM,
		SourceID:    "node/" + id,
	}
}

// singleLegResult - результат с одним участком по заданным точкам
func singleLegResult(backend string, distance, duration float64, points ...domain.Coordinate) *domain.RouteResult {
	return &domain.RouteResult{
		Backend:   backend,
		Locations: []domain.Coordinate{points[0], points[len(points)-1]},
		Legs: []domain.LegResult{{
			Shape:    polyline.Encode(points, polyline.DefaultPrecision),
			Distance: distance,
			Duration: duration,
			Maneuvers: []domain.ManeuverResult{
				{Type: 1, Instruction: "Depart", BeginShapeIndex: 0, EndShapeIndex: 1},
				{Type: 4, Instruction: "Arrive", BeginShapeIndex: len(points) - 1, EndShapeIndex: len(points) - 1},
			},
		}},
		Distance: distance,
		Duration: duration,
	}
}
