package valhalla

type location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type,omitempty"`
}

type directionsOptions struct {
	Units    string `json:"units"`
	Language string `json:"language,omitempty"`
}

type routeRequest struct {
	Locations         []location                    `json:"locations"`
	Costing           string                        `json:"costing"`
	CostingOptions    map[string]map[string]float64 `json:"costing_options,omitempty"`
	DirectionsOptions *directionsOptions            `json:"directions_options,omitempty"`
	Alternates        int                           `json:"alternates,omitempty"`
}

type summary struct {
	Length float64 `json:"length"` // километры
	Time   float64 `json:"time"`   // секунды
}

type maneuver struct {
	Type            int      `json:"type"`
	Instruction     string   `json:"instruction"`
	BeginShapeIndex int      `json:"begin_shape_index"`
	EndShapeIndex   int      `json:"end_shape_index"`
	Length          float64  `json:"length"`
	Time            float64  `json:"time"`
	BearingBefore   *float64 `json:"bearing_before,omitempty"`
	BearingAfter    *float64 `json:"bearing_after,omitempty"`
}

type leg struct {
	Maneuvers []maneuver `json:"maneuvers"`
	Summary   summary    `json:"summary"`
	Shape     string     `json:"shape"`
}

type trip struct {
	Locations     []location `json:"locations"`
	Legs          []leg      `json:"legs"`
	Summary       summary    `json:"summary"`
	Status        int        `json:"status"`
	StatusMessage string     `json:"status_message"`
}

type routeResponse struct {
	Trip       *trip `json:"trip"`
	Alternates []struct {
		Trip *trip `json:"trip"`
	} `json:"alternates,omitempty"`
}

type matrixRequest struct {
	Sources []location `json:"sources"`
	Targets []location `json:"targets"`
	Costing string     `json:"costing"`
}

type matrixCell struct {
	Distance *float64 `json:"distance"` // километры
	Time     *float64 `json:"time"`
}

type matrixResponse struct {
	SourcesToTargets [][]*matrixCell `json:"sources_to_targets"`
}

type locateRequest struct {
	Locations []location `json:"locations"`
	Costing   string     `json:"costing"`
	Verbose   bool       `json:"verbose"`
}

type locateEdge struct {
	CorrelatedLat float64 `json:"correlated_lat"`
	CorrelatedLon float64 `json:"correlated_lon"`
}

type locateResult struct {
	Edges []locateEdge `json:"edges"`
}
