package geo

import (
	"math"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/errors"
)

const metersPerDegreeLat = 111000.0

// GetBoundingBox вычисляет охватывающий прямоугольник набора точек
func GetBoundingBox(points []domain.Coordinate) (domain.BoundingBox, error) {
	if len(points) == 0 {
		return domain.BoundingBox{}, errors.ErrEmptyInput
	}

	bbox := domain.BoundingBox{
		MinLat: points[0].Latitude,
		MaxLat: points[0].Latitude,
		MinLng: points[0].Longitude,
		MaxLng: points[0].Longitude,
	}
	for _, p := range points[1:] {
		bbox.MinLat = math.Min(bbox.MinLat, p.Latitude)
		bbox.MaxLat = math.Max(bbox.MaxLat, p.Latitude)
		bbox.MinLng = math.Min(bbox.MinLng, p.Longitude)
		bbox.MaxLng = math.Max(bbox.MaxLng, p.Longitude)
	}

	return bbox, nil
}

// ExpandBoundingBox расширяет прямоугольник на meters во все стороны.
// Дельта долготы корректируется на cos средней широты.
func ExpandBoundingBox(bbox domain.BoundingBox, meters float64) domain.BoundingBox {
	latDelta := meters / metersPerDegreeLat
	meanLat := toRad((bbox.MinLat + bbox.MaxLat) / 2)
	lngDelta := meters / (metersPerDegreeLat * math.Cos(meanLat))

	return domain.BoundingBox{
		MinLat: bbox.MinLat - latDelta,
		MaxLat: bbox.MaxLat + latDelta,
		MinLng: bbox.MinLng - lngDelta,
		MaxLng: bbox.MaxLng + lngDelta,
	}
}

// GetBoundingBoxCenter возвращает центр прямоугольника
func GetBoundingBoxCenter(bbox domain.BoundingBox) domain.Coordinate {
	return domain.Coordinate{
		Latitude:  (bbox.MinLat + bbox.MaxLat) / 2,
		Longitude: (bbox.MinLng + bbox.MaxLng) / 2,
	}
}
