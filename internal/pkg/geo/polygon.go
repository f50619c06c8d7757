package geo

import (
	"math"

	"github.com/route-engine/internal/domain"
)

// IsPointInPolygon - ray casting, долгота как x, широта как y.
// Рёбра полуоткрыты по широте, поэтому точки на границе классифицируются стабильно.
func IsPointInPolygon(p domain.Coordinate, polygon []domain.Coordinate) bool {
	x, y := p.Longitude, p.Latitude
	inside := false

	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		xi, yi := polygon[i].Longitude, polygon[i].Latitude
		xj, yj := polygon[j].Longitude, polygon[j].Latitude

		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}

	return inside
}

// CreateLineBuffer строит замкнутый прямоугольник шириной width метров
// по обе стороны от отрезка start-end. Первая точка повторяется последней.
func CreateLineBuffer(start, end domain.Coordinate, width float64) []domain.Coordinate {
	bearing := Bearing(start, end)
	left := math.Mod(bearing+90, 360)
	right := math.Mod(bearing+270, 360)

	c1 := DestinationPoint(start, width, left)
	c2 := DestinationPoint(start, width, right)
	c3 := DestinationPoint(end, width, right)
	c4 := DestinationPoint(end, width, left)

	return []domain.Coordinate{c1, c4, c3, c2, c1}
}
