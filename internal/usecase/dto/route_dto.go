package dto

import (
	"math"

	"github.com/route-engine/internal/domain"
)

// CoordinateDTO - точка в запросе
type CoordinateDTO struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

func (c CoordinateDTO) ToDomain() domain.Coordinate {
	return domain.Coordinate{Latitude: c.Lat, Longitude: c.Lng}
}

func CoordinateFromDomain(c domain.Coordinate) CoordinateDTO {
	return CoordinateDTO{Lat: c.Latitude, Lng: c.Longitude}
}

// RouteSettingsDTO - настройки генерации; незаданные поля берутся из настроек по умолчанию
type RouteSettingsDTO struct {
	AdventureLevel *float64 `json:"adventure_level,omitempty" validate:"omitempty,min=0,max=1"`
	MaxDistance    *float64 `json:"max_distance,omitempty" validate:"omitempty,gt=0"`
	MaxDuration    *float64 `json:"max_duration,omitempty" validate:"omitempty,gt=0"`
	POICategories  []string `json:"poi_categories,omitempty" validate:"omitempty,dive,poi_category"`
	AvoidHighways  *bool    `json:"avoid_highways,omitempty"`
	AvoidTolls     *bool    `json:"avoid_tolls,omitempty"`
	TransportMode  string   `json:"transport_mode,omitempty" validate:"omitempty,transport_mode"`
}

// Merge накладывает заданные поля на base
func (s *RouteSettingsDTO) Merge(base domain.RouteSettings) domain.RouteSettings {
	if s == nil {
		return base
	}
	if s.AdventureLevel != nil {
		base.AdventureLevel = *s.AdventureLevel
	}
	if s.MaxDistance != nil {
		base.MaxDistance = s.MaxDistance
	}
	if s.MaxDuration != nil {
		base.MaxDuration = s.MaxDuration
	}
	// явный [] отключает категории по умолчанию, отсутствие поля - нет
	if s.POICategories != nil {
		categories := make([]domain.POICategory, len(s.POICategories))
		for i, c := range s.POICategories {
			categories[i] = domain.POICategory(c)
		}
		base.POICategories = categories
	}
	if s.AvoidHighways != nil {
		base.AvoidHighways = *s.AvoidHighways
	}
	if s.AvoidTolls != nil {
		base.AvoidTolls = *s.AvoidTolls
	}
	if s.TransportMode != "" {
		base.TransportMode = domain.TransportMode(s.TransportMode)
	}
	return base
}

// CreateRouteRequest - запрос на генерацию маршрута
type CreateRouteRequest struct {
	Origin       CoordinateDTO     `json:"origin"`
	Destination  CoordinateDTO     `json:"destination"`
	Settings     *RouteSettingsDTO `json:"settings,omitempty"`
	Alternatives int               `json:"alternatives,omitempty" validate:"min=0,max=3"`
}

// CreateRouteResponse - сгенерированный маршрут
type CreateRouteResponse struct {
	Route        *domain.Route  `json:"route"`
	POIsOnRoute  []*domain.POI  `json:"pois_on_route"`
	Alternatives []RouteSummary `json:"alternatives,omitempty"`
}

// RouteSummary - краткое описание варианта маршрута
type RouteSummary struct {
	Backend  string            `json:"backend"`
	Distance int64             `json:"distance"`
	Duration int64             `json:"duration"`
	Geometry domain.LineString `json:"geometry"`
}

// AlternativesRequest - запрос альтернативных маршрутов
type AlternativesRequest struct {
	Origin        CoordinateDTO `json:"origin"`
	Destination   CoordinateDTO `json:"destination"`
	TransportMode string        `json:"transport_mode,omitempty" validate:"omitempty,transport_mode"`
	Count         int           `json:"count,omitempty" validate:"min=0,max=5"`
	AvoidHighways bool          `json:"avoid_highways,omitempty"`
	AvoidTolls    bool          `json:"avoid_tolls,omitempty"`
}

// MatrixRequest - матрица расстояний между наборами точек
type MatrixRequest struct {
	Sources       []CoordinateDTO `json:"sources" validate:"required,min=1,max=50,dive"`
	Targets       []CoordinateDTO `json:"targets" validate:"required,min=1,max=50,dive"`
	TransportMode string          `json:"transport_mode,omitempty" validate:"omitempty,transport_mode"`
}

// MatrixResponse - недостижимые пары представлены как null
type MatrixResponse struct {
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// NewMatrixResponse переводит +Inf в null
func NewMatrixResponse(m *domain.MatrixResult) *MatrixResponse {
	return &MatrixResponse{
		Distances: nullableGrid(m.Distances),
		Durations: nullableGrid(m.Durations),
	}
}

func nullableGrid(grid [][]float64) [][]*float64 {
	out := make([][]*float64, len(grid))
	for i, row := range grid {
		out[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			value := v
			out[i][j] = &value
		}
	}
	return out
}

// SnapRequest - привязка точки к дороге
type SnapRequest struct {
	Point         CoordinateDTO `json:"point"`
	TransportMode string        `json:"transport_mode,omitempty" validate:"omitempty,transport_mode"`
}

// SnapResponse - Snapped пустой, если дорога рядом не найдена
type SnapResponse struct {
	Found   bool           `json:"found"`
	Snapped *CoordinateDTO `json:"snapped,omitempty"`
}
