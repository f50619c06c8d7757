package polyline

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	gopolyline "github.com/twpayne/go-polyline"

	"github.com/route-engine/internal/domain"
)

// DefaultPrecision - число знаков после запятой (polyline6)
const DefaultPrecision = 6

func codec(precision int) gopolyline.Codec {
	return gopolyline.Codec{Dim: 2, Scale: math.Pow10(precision)}
}

// Encode кодирует последовательность координат в строку polyline
func Encode(points []domain.Coordinate, precision int) string {
	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}
	return string(codec(precision).EncodeCoords(nil, coords))
}

// Decode декодирует строку polyline.
// Возвращает ошибку на обрезанной строке или недопустимом символе.
func Decode(encoded string, precision int) ([]domain.Coordinate, error) {
	if encoded == "" {
		return []domain.Coordinate{}, nil
	}

	coords, _, err := codec(precision).DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}

	points := make([]domain.Coordinate, len(coords))
	for i, c := range coords {
		points[i] = domain.Coordinate{Latitude: c[0], Longitude: c[1]}
	}
	return points, nil
}

func toOrb(points []domain.Coordinate) orb.LineString {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, orb.Point{p.Longitude, p.Latitude})
	}
	return ls
}

// ToLineString строит GeoJSON-линию ([lng, lat]) из координат
func ToLineString(points []domain.Coordinate) domain.LineString {
	ls := toOrb(points)
	coords := make([][2]float64, len(ls))
	for i, p := range ls {
		coords[i] = p
	}
	return domain.LineString{
		Type:        ls.GeoJSONType(),
		Coordinates: coords,
	}
}

// ToFeature оборачивает линию в GeoJSON Feature со свойствами
func ToFeature(points []domain.Coordinate, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(toOrb(points))
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

// FromLineString - обратное преобразование GeoJSON-линии в координаты
func FromLineString(line domain.LineString) []domain.Coordinate {
	points := make([]domain.Coordinate, len(line.Coordinates))
	for i, c := range line.Coordinates {
		points[i] = domain.Coordinate{Latitude: c[1], Longitude: c[0]}
	}
	return points
}
