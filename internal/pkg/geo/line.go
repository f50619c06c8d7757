package geo

import (
	"math"

	"github.com/route-engine/internal/domain"
)

// ClosestPointOnLine проецирует p на отрезок [a, b] в плоскости градусов.
// Параметр проекции ограничен [0, 1]; вырожденный отрезок даёт a.
func ClosestPointOnLine(p, a, b domain.Coordinate) domain.Coordinate {
	dx := b.Longitude - a.Longitude
	dy := b.Latitude - a.Latitude

	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return a
	}

	t := ((p.Longitude-a.Longitude)*dx + (p.Latitude-a.Latitude)*dy) / lenSq
	switch {
	case t < 0:
		return a
	case t > 1:
		return b
	}

	return domain.Coordinate{
		Latitude:  a.Latitude + t*dy,
		Longitude: a.Longitude + t*dx,
	}
}

// DistanceToLine - расстояние в метрах от p до ближайшей точки отрезка [a, b]
func DistanceToLine(p, a, b domain.Coordinate) float64 {
	return HaversineDistance(p, ClosestPointOnLine(p, a, b))
}

// DistanceToPolyline ищет ближайший к p сегмент ломаной.
// Возвращает расстояние, ближайшую точку и индекс сегмента; для ломаной
// короче двух точек индекс равен -1.
func DistanceToPolyline(p domain.Coordinate, line []domain.Coordinate) (float64, domain.Coordinate, int) {
	switch len(line) {
	case 0:
		return math.Inf(1), domain.Coordinate{}, -1
	case 1:
		return HaversineDistance(p, line[0]), line[0], -1
	}

	best := math.Inf(1)
	var closest domain.Coordinate
	segment := 0

	for i := 0; i < len(line)-1; i++ {
		point := ClosestPointOnLine(p, line[i], line[i+1])
		d := HaversineDistance(p, point)
		if d < best {
			best = d
			closest = point
			segment = i
		}
	}

	return best, closest, segment
}

// PolylineLength - суммарная длина ломаной в метрах
func PolylineLength(points []domain.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += HaversineDistance(points[i-1], points[i])
	}
	return total
}
