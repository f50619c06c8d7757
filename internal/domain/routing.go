package domain

// RouteOptions - дополнительные параметры запроса к бэкенду маршрутизации
type RouteOptions struct {
	AvoidHighways  bool
	AvoidTolls     bool
	AlternateCount int
}

// RouteRequest - запрос к одному бэкенду маршрутизации
type RouteRequest struct {
	Origin      Coordinate
	Destination Coordinate
	Waypoints   []Coordinate
	Mode        TransportMode
	Options     RouteOptions
}

// Locations возвращает полный упорядоченный список точек запроса
func (r RouteRequest) Locations() []Coordinate {
	locations := make([]Coordinate, 0, len(r.Waypoints)+2)
	locations = append(locations, r.Origin)
	locations = append(locations, r.Waypoints...)
	return append(locations, r.Destination)
}

// RouteResult - канонический результат маршрутизации, общий для всех бэкендов
type RouteResult struct {
	Backend   string       `json:"backend"`
	Locations []Coordinate `json:"locations,omitempty"` // точки в порядке, возвращённом бэкендом
	Legs      []LegResult  `json:"legs"`
	Distance  float64      `json:"distance"` // метры
	Duration  float64      `json:"duration"` // секунды
}

// LegResult - участок канонического результата
type LegResult struct {
	Shape     string           `json:"shape"` // polyline, точность 1e-6
	Distance  float64          `json:"distance"`
	Duration  float64          `json:"duration"`
	Maneuvers []ManeuverResult `json:"maneuvers"`
}

// ManeuverResult - манёвр в каноническом виде; Type - числовой код манёвра
type ManeuverResult struct {
	Type            int      `json:"type"`
	Instruction     string   `json:"instruction"`
	BeginShapeIndex int      `json:"begin_shape_index"`
	EndShapeIndex   int      `json:"end_shape_index"`
	Distance        float64  `json:"distance"`
	Duration        float64  `json:"duration"`
	BearingBefore   *float64 `json:"bearing_before,omitempty"`
	BearingAfter    *float64 `json:"bearing_after,omitempty"`
}

// MatrixResult - матрицы расстояний (м) и времени (с); недостижимые пары = +Inf
type MatrixResult struct {
	Distances [][]float64
	Durations [][]float64
}

// BackendStatus - состояние доступности бэкенда маршрутизации
type BackendStatus string

const (
	BackendStatusUnknown     BackendStatus = "unknown"
	BackendStatusAvailable   BackendStatus = "available"
	BackendStatusUnavailable BackendStatus = "unavailable"
)
