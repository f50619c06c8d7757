package osrm

type stepManeuver struct {
	Type          string     `json:"type"`
	Modifier      string     `json:"modifier,omitempty"`
	Location      [2]float64 `json:"location"`
	BearingBefore float64    `json:"bearing_before"`
	BearingAfter  float64    `json:"bearing_after"`
}

type step struct {
	Geometry string       `json:"geometry"`
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Name     string       `json:"name"`
	Maneuver stepManeuver `json:"maneuver"`
}

type leg struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Steps    []step  `json:"steps"`
}

type route struct {
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Legs     []leg   `json:"legs"`
}

type waypoint struct {
	Location      [2]float64 `json:"location"`
	Distance      float64    `json:"distance"`
	WaypointIndex int        `json:"waypoint_index"`
}

type routeResponse struct {
	Code      string     `json:"code"`
	Message   string     `json:"message,omitempty"`
	Routes    []route    `json:"routes"`
	Waypoints []waypoint `json:"waypoints"`
}

type tripResponse struct {
	Code      string     `json:"code"`
	Message   string     `json:"message,omitempty"`
	Trips     []route    `json:"trips"`
	Waypoints []waypoint `json:"waypoints"`
}

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message,omitempty"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

type nearestResponse struct {
	Code      string     `json:"code"`
	Waypoints []waypoint `json:"waypoints"`
}
