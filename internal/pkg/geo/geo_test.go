package geo

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/errors"
)

var (
	valencia = domain.Coordinate{Latitude: 39.47, Longitude: -0.376}
	ruzafa   = domain.Coordinate{Latitude: 39.46, Longitude: -0.38}
	madrid   = domain.Coordinate{Latitude: 40.4168, Longitude: -3.7038}
	sydney   = domain.Coordinate{Latitude: -33.8688, Longitude: 151.2093}
)

func TestHaversineDistance(t *testing.T) {
	pairs := [][2]domain.Coordinate{
		{valencia, ruzafa},
		{valencia, madrid},
		{madrid, sydney},
		{{Latitude: 0, Longitude: 179.9}, {Latitude: 0, Longitude: -179.9}},
	}

	for _, p := range pairs {
		assert.Equal(t, HaversineDistance(p[0], p[1]), HaversineDistance(p[1], p[0]))
		assert.Zero(t, HaversineDistance(p[0], p[0]))
	}

	// Валенсия - Мадрид около 302 км
	assert.InDelta(t, 302000, HaversineDistance(valencia, madrid), 3000)
	// один градус по экватору
	assert.InDelta(t, 111195, HaversineDistance(
		domain.Coordinate{Latitude: 0, Longitude: 0},
		domain.Coordinate{Latitude: 0, Longitude: 1},
	), 1)
}

func TestBearing(t *testing.T) {
	origin := domain.Coordinate{Latitude: 0, Longitude: 0}

	tests := []struct {
		name     string
		to       domain.Coordinate
		expected float64
	}{
		{name: "north", to: domain.Coordinate{Latitude: 1, Longitude: 0}, expected: 0},
		{name: "east", to: domain.Coordinate{Latitude: 0, Longitude: 1}, expected: 90},
		{name: "south", to: domain.Coordinate{Latitude: -1, Longitude: 0}, expected: 180},
		{name: "west", to: domain.Coordinate{Latitude: 0, Longitude: -1}, expected: 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bearing(origin, tt.to)
			assert.InDelta(t, tt.expected, b, 1e-9)
			assert.GreaterOrEqual(t, b, 0.0)
			assert.Less(t, b, 360.0)
		})
	}
}

func TestDestinationPoint_DistanceRoundTrip(t *testing.T) {
	origins := []domain.Coordinate{valencia, sydney, {Latitude: 0, Longitude: 0}, {Latitude: 65, Longitude: -150}}
	distances := []float64{1, 150, 2500, 80000, 1200000, 9999999}

	for _, o := range origins {
		for _, d := range distances {
			for theta := 0.0; theta < 360; theta += 22.5 {
				dest := DestinationPoint(o, d, theta)
				assert.InEpsilon(t, d, HaversineDistance(o, dest), 0.001,
					"origin=%v d=%v bearing=%v", o, d, theta)
			}
		}
	}

	same := DestinationPoint(valencia, 0, 45)
	assert.InDelta(t, valencia.Latitude, same.Latitude, 1e-12)
	assert.InDelta(t, valencia.Longitude, same.Longitude, 1e-12)
}

func TestDestinationPoint_InverseOfBearing(t *testing.T) {
	pairs := [][2]domain.Coordinate{
		{valencia, ruzafa},
		{valencia, madrid},
		{madrid, valencia},
		{sydney, {Latitude: -37.8136, Longitude: 144.9631}},
	}

	for _, p := range pairs {
		got := DestinationPoint(p[0], HaversineDistance(p[0], p[1]), Bearing(p[0], p[1]))
		assert.InDelta(t, p[1].Latitude, got.Latitude, 1e-6)
		assert.InDelta(t, p[1].Longitude, got.Longitude, 1e-6)
	}
}

func TestDestinationPoint_NormalizesLongitude(t *testing.T) {
	got := DestinationPoint(domain.Coordinate{Latitude: 0, Longitude: 179.95}, 20000, 90)
	assert.Less(t, got.Longitude, 0.0)
	assert.GreaterOrEqual(t, got.Longitude, -180.0)
}

func TestClosestPointOnLine(t *testing.T) {
	a := domain.Coordinate{Latitude: 0, Longitude: 0}
	b := domain.Coordinate{Latitude: 0, Longitude: 1}

	assert.Equal(t, domain.Coordinate{Latitude: 0, Longitude: 0.5},
		ClosestPointOnLine(domain.Coordinate{Latitude: 0.3, Longitude: 0.5}, a, b))
	assert.Equal(t, a, ClosestPointOnLine(domain.Coordinate{Latitude: 0.3, Longitude: -2}, a, b), "clamped to start")
	assert.Equal(t, b, ClosestPointOnLine(domain.Coordinate{Latitude: 0.3, Longitude: 5}, a, b), "clamped to end")
	assert.Equal(t, a, ClosestPointOnLine(b, a, a), "degenerate segment")
}

func TestDistanceToLine(t *testing.T) {
	a := domain.Coordinate{Latitude: 0, Longitude: 0}
	b := domain.Coordinate{Latitude: 0, Longitude: 1}
	p := domain.Coordinate{Latitude: 0.01, Longitude: 0.5}

	assert.InDelta(t, 1112, DistanceToLine(p, a, b), 1)
	assert.Zero(t, DistanceToLine(domain.Coordinate{Latitude: 0, Longitude: 0.25}, a, b))
}

func TestDistanceToPolyline(t *testing.T) {
	line := []domain.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 1, Longitude: 1},
	}

	dist, closest, segment := DistanceToPolyline(domain.Coordinate{Latitude: 0.5, Longitude: 1.01}, line)
	assert.Equal(t, 1, segment)
	assert.InDelta(t, 0.5, closest.Latitude, 1e-9)
	assert.InDelta(t, 1.0, closest.Longitude, 1e-9)
	assert.InDelta(t, 1112*math.Cos(0.5*math.Pi/180), dist, 2)

	_, _, segment = DistanceToPolyline(domain.Coordinate{Latitude: -0.1, Longitude: 0.2}, line)
	assert.Equal(t, 0, segment)

	dist, _, segment = DistanceToPolyline(valencia, nil)
	assert.True(t, math.IsInf(dist, 1))
	assert.Equal(t, -1, segment)
}

func TestPolylineLength(t *testing.T) {
	line := []domain.Coordinate{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 1},
		{Latitude: 0, Longitude: 2},
	}
	assert.InDelta(t, 2*111195, PolylineLength(line), 2)
	assert.InDelta(t, HaversineDistance(line[0], line[2]), PolylineLength(line), 1e-3)
	assert.Zero(t, PolylineLength(line[:1]))
	assert.Zero(t, PolylineLength(nil))
}

func TestIsPointInPolygon(t *testing.T) {
	// lng, lat
	square := []domain.Coordinate{
		{Longitude: 0, Latitude: 0},
		{Longitude: 0, Latitude: 1},
		{Longitude: 1, Latitude: 1},
		{Longitude: 1, Latitude: 0},
		{Longitude: 0, Latitude: 0},
	}

	assert.True(t, IsPointInPolygon(domain.Coordinate{Longitude: 0.5, Latitude: 0.5}, square))
	assert.False(t, IsPointInPolygon(domain.Coordinate{Longitude: 2, Latitude: 2}, square))
	assert.False(t, IsPointInPolygon(domain.Coordinate{Longitude: -0.5, Latitude: 0.5}, square))
	assert.False(t, IsPointInPolygon(domain.Coordinate{Longitude: 0.5, Latitude: 1.5}, square))

	boundary := domain.Coordinate{Longitude: 0, Latitude: 0.5}
	assert.Equal(t, IsPointInPolygon(boundary, square), IsPointInPolygon(boundary, square))

	assert.False(t, IsPointInPolygon(valencia, nil))
}

func TestCreateLineBuffer(t *testing.T) {
	width := 1000.0
	polygon := CreateLineBuffer(valencia, madrid, width)

	require.Len(t, polygon, 5)
	assert.Equal(t, polygon[0], polygon[4], "polygon must be closed")

	assert.InDelta(t, width, HaversineDistance(valencia, polygon[0]), 0.01)
	assert.InDelta(t, width, HaversineDistance(madrid, polygon[1]), 0.01)
	assert.InDelta(t, width, HaversineDistance(madrid, polygon[2]), 0.01)
	assert.InDelta(t, width, HaversineDistance(valencia, polygon[3]), 0.01)

	midpoint := domain.Coordinate{
		Latitude:  (valencia.Latitude + madrid.Latitude) / 2,
		Longitude: (valencia.Longitude + madrid.Longitude) / 2,
	}
	assert.True(t, IsPointInPolygon(midpoint, polygon))
	assert.False(t, IsPointInPolygon(DestinationPoint(midpoint, 5000, Bearing(valencia, madrid)+90), polygon))
}

func TestGetBoundingBox(t *testing.T) {
	bbox, err := GetBoundingBox([]domain.Coordinate{valencia, madrid, ruzafa})
	require.NoError(t, err)
	assert.Equal(t, domain.BoundingBox{
		MinLat: ruzafa.Latitude,
		MaxLat: madrid.Latitude,
		MinLng: madrid.Longitude,
		MaxLng: valencia.Longitude,
	}, bbox)

	_, err = GetBoundingBox(nil)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestExpandBoundingBox(t *testing.T) {
	bbox := domain.BoundingBox{MinLat: -1, MaxLat: 1, MinLng: -1, MaxLng: 1}
	expanded := ExpandBoundingBox(bbox, 111)

	assert.InDelta(t, -1.001, expanded.MinLat, 1e-12)
	assert.InDelta(t, 1.001, expanded.MaxLat, 1e-12)
	assert.InDelta(t, -1.001, expanded.MinLng, 1e-12)
	assert.InDelta(t, 1.001, expanded.MaxLng, 1e-12)

	north := ExpandBoundingBox(domain.BoundingBox{MinLat: 60, MaxLat: 60, MinLng: 10, MaxLng: 10}, 1110)
	assert.InDelta(t, 0.02, north.MaxLng-10, 1e-9, "longitude delta doubles at 60 degrees")

	center := GetBoundingBoxCenter(expanded)
	assert.InDelta(t, 0, center.Latitude, 1e-12)
	assert.InDelta(t, 0, center.Longitude, 1e-12)
}

func TestEncodeGeohash(t *testing.T) {
	origin := domain.Coordinate{Latitude: 0, Longitude: 0}
	assert.Equal(t, "s0000", EncodeGeohash(origin, 5))
	assert.Equal(t, EncodeGeohash(origin, 5), EncodeGeohash(origin, 5))

	assert.Equal(t, "u4pruydqqvj", EncodeGeohash(domain.Coordinate{Latitude: 57.64911, Longitude: 10.40744}, 11))

	a := EncodeGeohash(valencia, 5)
	b := EncodeGeohash(ruzafa, 5)
	require.Less(t, HaversineDistance(valencia, ruzafa), 2400.0)
	assert.Equal(t, a[:4], b[:4])
	assert.Equal(t, "ezp8x", a)

	assert.Equal(t, "", EncodeGeohash(valencia, 0))
	assert.Len(t, EncodeGeohash(valencia, 20), 12)
	assert.Equal(t, EncodeGeohash(valencia, 12)[:5], a)
}
