package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamRouteGenerate = "stream:route:generate"
	StreamRouteDone     = "stream:route:done"
)

// RouteGenerateEvent - входящее событие на генерацию маршрута
type RouteGenerateEvent struct {
	RequestID   uuid.UUID      `json:"request_id"`
	Origin      Coordinate     `json:"origin"`
	Destination Coordinate     `json:"destination"`
	Settings    *RouteSettings `json:"settings,omitempty"`
}

// Validate проверяет координаты события
func (e *RouteGenerateEvent) Validate() bool {
	return validCoordinate(e.Origin) && validCoordinate(e.Destination)
}

func validCoordinate(c Coordinate) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// RouteDoneEvent - результат генерации маршрута
type RouteDoneEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	RouteID   string    `json:"route_id,omitempty"`
	Distance  int64     `json:"distance,omitempty"`
	Duration  int64     `json:"duration,omitempty"`
	POICount  int       `json:"poi_count"`
	Error     string    `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream (JSON из поля "data")
type StreamMessage struct {
	ID   string
	Data string
}
