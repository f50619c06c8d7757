package polyline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-engine/internal/domain"
)

func TestDecode_KnownPolyline5(t *testing.T) {
	points, err := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@", 5)
	require.NoError(t, err)

	expected := []domain.Coordinate{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	require.Len(t, points, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].Latitude, points[i].Latitude, 1e-9)
		assert.InDelta(t, expected[i].Longitude, points[i].Longitude, 1e-9)
	}

	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", Encode(expected, 5))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		points    []domain.Coordinate
		precision int
	}{
		{
			name: "valencia city centre polyline6",
			points: []domain.Coordinate{
				{Latitude: 39.469907, Longitude: -0.376288},
				{Latitude: 39.4665, Longitude: -0.3774},
				{Latitude: 39.46, Longitude: -0.38},
			},
			precision: DefaultPrecision,
		},
		{
			name: "antimeridian and poles",
			points: []domain.Coordinate{
				{Latitude: 89.999999, Longitude: 179.999999},
				{Latitude: -89.999999, Longitude: -179.999999},
				{Latitude: 0, Longitude: 0},
			},
			precision: DefaultPrecision,
		},
		{
			name:      "single point precision 5",
			points:    []domain.Coordinate{{Latitude: -33.86882, Longitude: 151.20929}},
			precision: 5,
		},
		{
			name: "unrounded input",
			points: []domain.Coordinate{
				{Latitude: 40.41677543, Longitude: -3.70379221},
				{Latitude: 40.41611119, Longitude: -3.70101234},
			},
			precision: DefaultPrecision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(Encode(tt.points, tt.precision), tt.precision)
			require.NoError(t, err)
			require.Len(t, decoded, len(tt.points))

			tolerance := 0.5/math.Pow10(tt.precision) + 1e-12
			for i := range tt.points {
				assert.InDelta(t, tt.points[i].Latitude, decoded[i].Latitude, tolerance)
				assert.InDelta(t, tt.points[i].Longitude, decoded[i].Longitude, tolerance)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	points, err := Decode("", DefaultPrecision)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Equal(t, "", Encode(nil, DefaultPrecision))
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "truncated continuation", encoded: "_p~iF~ps|"},
		{name: "latitude without longitude", encoded: "_p~iF"},
		{name: "character below range", encoded: "_p~iF~ps|U "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded, DefaultPrecision)
			assert.Error(t, err)
		})
	}
}

func TestToLineString(t *testing.T) {
	points := []domain.Coordinate{
		{Latitude: 39.47, Longitude: -0.376},
		{Latitude: 39.46, Longitude: -0.38},
	}

	ls := ToLineString(points)
	assert.Equal(t, "LineString", ls.Type)
	assert.Equal(t, [][2]float64{{-0.376, 39.47}, {-0.38, 39.46}}, ls.Coordinates)
	assert.Equal(t, points, FromLineString(ls))
}

func TestToFeature(t *testing.T) {
	points := []domain.Coordinate{
		{Latitude: 39.47, Longitude: -0.376},
		{Latitude: 39.46, Longitude: -0.38},
	}

	f := ToFeature(points, map[string]interface{}{"distance": int64(1200)})
	require.NotNil(t, f)
	assert.Equal(t, "LineString", f.Geometry.GeoJSONType())
	assert.Equal(t, int64(1200), f.Properties["distance"])

	data, err := f.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"coordinates":[[-0.376,39.47],[-0.38,39.46]]`)
}
