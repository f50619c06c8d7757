package utils

import (
	"strings"

	"github.com/route-engine/internal/domain"
)

// ToCategories переводит строки запроса в категории; пустые значения пропускаются.
// Значения вида "museum,park" в одном параметре тоже разбираются.
func ToCategories(values []string) []domain.POICategory {
	var out []domain.POICategory
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, domain.POICategory(part))
		}
	}
	return out
}

// OptionalCenter возвращает точку, только если заданы обе координаты
func OptionalCenter(lat, lng *float64) *domain.Coordinate {
	if lat == nil || lng == nil {
		return nil
	}
	return &domain.Coordinate{Latitude: *lat, Longitude: *lng}
}
