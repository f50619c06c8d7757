package geo

import (
	"github.com/mmcloughlin/geohash"

	"github.com/route-engine/internal/domain"
)

// maxGeohashPrecision - предел точности библиотеки (60 бит)
const maxGeohashPrecision = 12

// EncodeGeohash кодирует координату в geohash заданной точности.
// Используется только как измерение ключа кэша.
func EncodeGeohash(c domain.Coordinate, precision int) string {
	if precision <= 0 {
		return ""
	}
	if precision > maxGeohashPrecision {
		precision = maxGeohashPrecision
	}
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, uint(precision))
}
