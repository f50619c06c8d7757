package overpass

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/route-engine/internal/domain"
)

// relevantTagKeys - теги OSM, сохраняемые в POI.Tags
var relevantTagKeys = []string{
	"tourism", "amenity", "leisure", "historic", "natural",
	"shop", "sport", "cuisine", "wheelchair", "internet_access",
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func splitTagSpec(spec string) (key, value string) {
	parts := strings.SplitN(spec, "=", 2)
	if len(parts) == 1 {
		return parts[0], "*"
	}
	return parts[0], parts[1]
}

// buildQuery собирает Overpass QL: node и way для каждого тега каждой категории
func buildQuery(filter string, categories []domain.POICategory, timeout time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[out:json][timeout:%d];\n(\n", int(timeout.Seconds()))

	for _, category := range categories {
		for _, spec := range domain.CategoryOSMTags[category] {
			key, value := splitTagSpec(spec)
			selector := fmt.Sprintf(`["%s"="%s"]`, key, value)
			if value == "*" {
				selector = fmt.Sprintf(`["%s"]`, key)
			}
			fmt.Fprintf(&b, "  node%s%s;\n", selector, filter)
			fmt.Fprintf(&b, "  way%s%s;\n", selector, filter)
		}
	}

	b.WriteString(");\nout center;")
	return b.String()
}

func bboxFilter(bbox domain.BoundingBox) string {
	return fmt.Sprintf("(%s,%s,%s,%s)",
		formatFloat(bbox.MinLat), formatFloat(bbox.MinLng), formatFloat(bbox.MaxLat), formatFloat(bbox.MaxLng))
}

func aroundFilter(c domain.Coordinate, radius float64) string {
	return fmt.Sprintf("(around:%s,%s,%s)", formatFloat(radius), formatFloat(c.Latitude), formatFloat(c.Longitude))
}

// hasSelectors - есть ли у категорий хотя бы один тег OSM
func hasSelectors(categories []domain.POICategory) bool {
	for _, c := range categories {
		if len(domain.CategoryOSMTags[c]) > 0 {
			return true
		}
	}
	return false
}

// detectCategory возвращает первую запрошенную категорию, чьи теги совпали
func detectCategory(tags map[string]string, requested []domain.POICategory) (domain.POICategory, bool) {
	for _, category := range requested {
		for _, spec := range domain.CategoryOSMTags[category] {
			key, value := splitTagSpec(spec)
			v, ok := tags[key]
			if !ok || v == "" {
				continue
			}
			if value == "*" || v == value {
				return category, true
			}
		}
	}
	return "", false
}

func extractName(tags map[string]string) string {
	for _, key := range []string{"name:ru", "name:en", "name", "operator", "brand"} {
		if v := tags[key]; v != "" {
			return v
		}
	}
	return ""
}

func firstTag(tags map[string]string, keys ...string) *string {
	for _, key := range keys {
		if v := tags[key]; v != "" {
			return &v
		}
	}
	return nil
}

func extractPhotos(tags map[string]string) []string {
	var photos []string
	if commons := tags["wikimedia_commons"]; commons != "" {
		filename := strings.TrimPrefix(commons, "File:")
		photos = append(photos,
			"https://commons.wikimedia.org/wiki/Special:FilePath/"+url.PathEscape(filename)+"?width=800")
	}
	if image := tags["image"]; image != "" {
		photos = append(photos, image)
	}
	return photos
}

func extractAddress(tags map[string]string) *string {
	var parts []string
	if street := tags["addr:street"]; street != "" {
		if number := tags["addr:housenumber"]; number != "" {
			street += ", " + number
		}
		parts = append(parts, street)
	}
	if city := tags["addr:city"]; city != "" {
		parts = append(parts, city)
	}
	if postcode := tags["addr:postcode"]; postcode != "" {
		parts = append(parts, postcode)
	}
	if len(parts) == 0 {
		return nil
	}
	address := strings.Join(parts, ", ")
	return &address
}

func extractTags(tags map[string]string) map[string]string {
	relevant := make(map[string]string)
	for _, key := range relevantTagKeys {
		if v := tags[key]; v != "" {
			relevant[key] = v
		}
	}
	return relevant
}

// parseResponse превращает элементы Overpass в POI. Элементы без координат,
// без подходящей категории или без имени отбрасываются.
func parseResponse(resp *response, requested []domain.POICategory) []*domain.POI {
	now := time.Now().UTC()
	pois := make([]*domain.POI, 0, len(resp.Elements))

	for _, el := range resp.Elements {
		if el.Tags == nil {
			continue
		}

		var coords domain.Coordinate
		switch {
		case el.Lat != nil && el.Lon != nil:
			coords = domain.Coordinate{Latitude: *el.Lat, Longitude: *el.Lon}
		case el.Center != nil:
			coords = domain.Coordinate{Latitude: el.Center.Lat, Longitude: el.Center.Lon}
		default:
			continue
		}

		category, ok := detectCategory(el.Tags, requested)
		if !ok {
			continue
		}

		name := extractName(el.Tags)
		if name == "" {
			continue
		}

		pois = append(pois, &domain.POI{
			ID:           uuid.New().String(),
			Name:         name,
			Description:  firstTag(el.Tags, "description"),
			Coordinates:  coords,
			Category:     category,
			Subcategory:  firstTag(el.Tags, "cuisine", "sport", "religion", "museum", "artwork_type"),
			Photos:       extractPhotos(el.Tags),
			OpeningHours: firstTag(el.Tags, "opening_hours"),
			Website:      firstTag(el.Tags, "website", "contact:website"),
			Phone:        firstTag(el.Tags, "phone", "contact:phone"),
			Address:      extractAddress(el.Tags),
			Source:       domain.POISourceOSM,
			SourceID:     fmt.Sprintf("%s/%d", el.Type, el.ID),
			Tags:         extractTags(el.Tags),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	return pois
}
