package domain

import "time"

// POI представляет точку интереса. Пара (Source, SourceID) уникальна.
type POI struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	Coordinates  Coordinate        `json:"coordinates"`
	Category     POICategory       `json:"category"`
	Subcategory  *string           `json:"subcategory,omitempty"`
	Rating       *float64          `json:"rating,omitempty"`
	RatingCount  int               `json:"rating_count"`
	Photos       []string          `json:"photos,omitempty"`
	OpeningHours *string           `json:"opening_hours,omitempty"`
	Website      *string           `json:"website,omitempty"`
	Phone        *string           `json:"phone,omitempty"`
	Address      *string           `json:"address,omitempty"`
	Source       POISource         `json:"source"`
	SourceID     string            `json:"source_id"`
	Tags         map[string]string `json:"tags,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// DedupKey возвращает ключ дедупликации source:sourceId
func (p *POI) DedupKey() string {
	return string(p.Source) + ":" + p.SourceID
}

// POISource - откуда получена точка интереса
type POISource string

const (
	POISourceOSM        POISource = "osm"
	POISourceWikidata   POISource = "wikidata"
	POISourceFoursquare POISource = "foursquare"
	POISourceGoogle     POISource = "google"
	POISourceUser       POISource = "user"
)

// ScoredPOI - кандидат с оценкой, живёт только в рамках одной генерации маршрута
type ScoredPOI struct {
	POI              *POI    `json:"poi"`
	Score            float64 `json:"score"`
	DistanceFromLine float64 `json:"distance_from_line"`
	DetourEstimate   float64 `json:"detour_estimate"`
}
