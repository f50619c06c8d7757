package geo

import (
	"math"

	"github.com/golang/geo/s2"

	"github.com/route-engine/internal/domain"
)

// EarthRadiusMeters - средний радиус Земли
const EarthRadiusMeters = 6371000.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// HaversineDistance вычисляет расстояние по большому кругу между двумя точками в метрах
func HaversineDistance(a, b domain.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Bearing вычисляет начальный азимут от a к b в градусах [0, 360)
func Bearing(a, b domain.Coordinate) float64 {
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)
	dLng := toRad(b.Longitude - a.Longitude)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)

	bearing := math.Mod(toDeg(math.Atan2(y, x))+360, 360)
	if bearing >= 360 {
		bearing = 0
	}
	return bearing
}

// DestinationPoint решает прямую геодезическую задачу на сфере:
// точка на расстоянии distance метров от origin по азимуту bearing
func DestinationPoint(origin domain.Coordinate, distance, bearing float64) domain.Coordinate {
	angular := distance / EarthRadiusMeters
	brng := toRad(bearing)
	lat1 := toRad(origin.Latitude)
	lng1 := toRad(origin.Longitude)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(angular) +
		math.Cos(lat1)*math.Sin(angular)*math.Cos(brng))
	lng2 := lng1 + math.Atan2(
		math.Sin(brng)*math.Sin(angular)*math.Cos(lat1),
		math.Cos(angular)-math.Sin(lat1)*math.Sin(lat2),
	)

	return domain.Coordinate{
		Latitude:  toDeg(lat2),
		Longitude: normalizeLongitude(toDeg(lng2)),
	}
}

// normalizeLongitude приводит долготу к [-180, 180]
func normalizeLongitude(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}
	return math.Mod(math.Mod(lng+180, 360)+360, 360) - 180
}
