package domain

import "time"

// TransportMode - способ передвижения
type TransportMode string

const (
	TransportModeCar        TransportMode = "car"
	TransportModeBicycle    TransportMode = "bicycle"
	TransportModePedestrian TransportMode = "pedestrian"
)

// IsValid проверяет допустимость способа передвижения
func (m TransportMode) IsValid() bool {
	switch m {
	case TransportModeCar, TransportModeBicycle, TransportModePedestrian:
		return true
	}
	return false
}

// RouteSettings - параметры генерации маршрута
type RouteSettings struct {
	// AdventureLevel в [0,1]: 0 - только кратчайший путь, 1 - максимальная готовность к отклонениям
	AdventureLevel float64       `json:"adventure_level"`
	MaxDistance    *float64      `json:"max_distance,omitempty"` // метры
	MaxDuration    *float64      `json:"max_duration,omitempty"` // секунды
	POICategories  []POICategory `json:"poi_categories"`
	AvoidHighways  bool          `json:"avoid_highways"`
	AvoidTolls     bool          `json:"avoid_tolls"`
	TransportMode  TransportMode `json:"transport_mode"`
}

// DefaultRouteSettings возвращает настройки по умолчанию
func DefaultRouteSettings() RouteSettings {
	return RouteSettings{
		AdventureLevel: 0.5,
		POICategories: []POICategory{
			CategoryMuseum,
			CategoryViewpoint,
			CategoryRestaurant,
			CategoryPark,
		},
		TransportMode: TransportModeCar,
	}
}

// WaypointType - роль точки маршрута
type WaypointType string

const (
	WaypointTypeOrigin      WaypointType = "origin"
	WaypointTypeDestination WaypointType = "destination"
	WaypointTypePOI         WaypointType = "poi"
	WaypointTypeCustom      WaypointType = "custom"
)

// Waypoint - точка маршрута
type Waypoint struct {
	Coordinates Coordinate   `json:"coordinates"`
	POI         *POI         `json:"poi,omitempty"`
	Type        WaypointType `json:"type"`
	ArrivalTime *float64     `json:"arrival_time,omitempty"` // секунды от старта
}

// Route - собранный маршрут. После создания не изменяется.
type Route struct {
	ID          string        `json:"id"`
	Origin      Coordinate    `json:"origin"`
	Destination Coordinate    `json:"destination"`
	Waypoints   []Waypoint    `json:"waypoints"`
	Geometry    LineString    `json:"geometry"`
	Distance    int64         `json:"distance"` // метры
	Duration    int64         `json:"duration"` // секунды
	Legs        []RouteLeg    `json:"legs"`
	Settings    RouteSettings `json:"settings"`
	Backend     string        `json:"backend,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// RouteLeg - участок между двумя соседними точками маршрута
type RouteLeg struct {
	StartIndex int        `json:"start_index"`
	EndIndex   int        `json:"end_index"`
	Distance   int64      `json:"distance"`
	Duration   int64      `json:"duration"`
	Geometry   LineString `json:"geometry"`
	Maneuvers  []Maneuver `json:"maneuvers"`
}

// Maneuver - одна инструкция навигации
type Maneuver struct {
	Type          ManeuverType `json:"type"`
	Instruction   string       `json:"instruction"`
	Coordinates   Coordinate   `json:"coordinates"`
	BearingBefore float64      `json:"bearing_before"`
	BearingAfter  float64      `json:"bearing_after"`
	Distance      int64        `json:"distance"`
	Duration      int64        `json:"duration"`
}

// ManeuverType - тип манёвра
type ManeuverType string

const (
	ManeuverNone            ManeuverType = "none"
	ManeuverDepart          ManeuverType = "depart"
	ManeuverDepartRight     ManeuverType = "depart_right"
	ManeuverDepartLeft      ManeuverType = "depart_left"
	ManeuverArrive          ManeuverType = "arrive"
	ManeuverArriveRight     ManeuverType = "arrive_right"
	ManeuverArriveLeft      ManeuverType = "arrive_left"
	ManeuverContinue        ManeuverType = "continue"
	ManeuverTurnSlightRight ManeuverType = "turn_slight_right"
	ManeuverTurnRight       ManeuverType = "turn_right"
	ManeuverTurnSharpRight  ManeuverType = "turn_sharp_right"
	ManeuverUturnRight      ManeuverType = "uturn_right"
	ManeuverUturnLeft       ManeuverType = "uturn_left"
	ManeuverTurnSharpLeft   ManeuverType = "turn_sharp_left"
	ManeuverTurnLeft        ManeuverType = "turn_left"
	ManeuverTurnSlightLeft  ManeuverType = "turn_slight_left"
)

var maneuverByCode = map[int]ManeuverType{
	0:  ManeuverNone,
	1:  ManeuverDepart,
	2:  ManeuverDepartRight,
	3:  ManeuverDepartLeft,
	4:  ManeuverArrive,
	5:  ManeuverArriveRight,
	6:  ManeuverArriveLeft,
	7:  ManeuverContinue,
	8:  ManeuverTurnSlightRight,
	9:  ManeuverTurnRight,
	10: ManeuverTurnSharpRight,
	11: ManeuverUturnRight,
	12: ManeuverUturnLeft,
	13: ManeuverTurnSharpLeft,
	14: ManeuverTurnLeft,
	15: ManeuverTurnSlightLeft,
}

// ManeuverTypeFromCode переводит числовой код манёвра в тип; неизвестные коды - continue
func ManeuverTypeFromCode(code int) ManeuverType {
	if t, ok := maneuverByCode[code]; ok {
		return t
	}
	return ManeuverContinue
}

// GeneratedRoute - результат генерации: маршрут и POI на нём
type GeneratedRoute struct {
	Route       *Route `json:"route"`
	POIsOnRoute []*POI `json:"pois_on_route"`
}
