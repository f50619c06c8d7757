package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/polyline"
)

func coord(lat, lng float64) domain.Coordinate {
	return domain.Coordinate{Latitude: lat, Longitude: lng}
}

func scoredPOI(id string, c domain.Coordinate) domain.ScoredPOI {
	return domain.ScoredPOI{POI: &domain.POI{ID: id, Coordinates: c, Category: domain.CategoryMuseum}}
}

func legOf(distance, duration float64, maneuvers []domain.ManeuverResult, points ...domain.Coordinate) domain.LegResult {
	return domain.LegResult{
		Shape:     polyline.Encode(points, polyline.DefaultPrecision),
		Distance:  distance,
		Duration:  duration,
		Maneuvers: maneuvers,
	}
}

func TestAssembleRoute_LegPerWaypointPair(t *testing.T) {
	origin := coord(0, 0)
	poi := scoredPOI("p", coord(0, 0.01))
	destination := coord(0, 0.03)

	result := &domain.RouteResult{
		Backend: "osrm",
		Legs: []domain.LegResult{
			legOf(1100, 100, []domain.ManeuverResult{
				{Type: 1, Instruction: "Depart", BeginShapeIndex: 0, EndShapeIndex: 1},
			}, origin, coord(0, 0.005), poi.POI.Coordinates),
			legOf(2200, 200, []domain.ManeuverResult{
				{Type: 9, Instruction: "Turn right", BeginShapeIndex: 1, EndShapeIndex: 2},
				{Type: 4, Instruction: "Arrive", BeginShapeIndex: 2, EndShapeIndex: 2},
			}, poi.POI.Coordinates, coord(0, 0.02), destination),
		},
		Distance: 3300,
		Duration: 300,
	}

	generated, err := assembleRoute(origin, destination, []domain.ScoredPOI{poi}, result, domain.DefaultRouteSettings())
	require.NoError(t, err)
	route := generated.Route

	require.Len(t, route.Legs, 2)
	assert.Equal(t, int64(1100), route.Legs[0].Distance)
	assert.Equal(t, int64(2200), route.Legs[1].Distance)
	assert.Len(t, route.Geometry.Coordinates, 5, "shared vertex is not duplicated")

	require.NotNil(t, route.Waypoints[1].ArrivalTime)
	assert.InDelta(t, 100, *route.Waypoints[1].ArrivalTime, 1e-9)
	assert.Nil(t, route.Waypoints[0].ArrivalTime)
	assert.Nil(t, route.Waypoints[2].ArrivalTime)
	assert.Equal(t, poi.POI, route.Waypoints[1].POI)
	assert.Equal(t, domain.WaypointTypePOI, route.Waypoints[1].Type)

	turn := route.Legs[1].Maneuvers[0]
	assert.Equal(t, domain.ManeuverTurnRight, turn.Type)
	assert.InDelta(t, 0.02, turn.Coordinates.Longitude, 1e-6)
	assert.Equal(t, domain.ManeuverArrive, route.Legs[1].Maneuvers[1].Type)
	assert.Equal(t, []*domain.POI{poi.POI}, generated.POIsOnRoute)
}

func TestAssembleRoute_SplitsSingleLeg(t *testing.T) {
	origin := coord(0, 0)
	first := scoredPOI("first", coord(0.0001, 0.01))
	second := scoredPOI("second", coord(0, 0.02))
	destination := coord(0, 0.04)

	bearing := 90.0
	shape := []domain.Coordinate{origin, coord(0, 0.005), coord(0, 0.01), coord(0, 0.015), coord(0, 0.02), coord(0, 0.03), destination}
	result := &domain.RouteResult{
		Backend: "valhalla",
		Legs: []domain.LegResult{legOf(4400, 400, []domain.ManeuverResult{
			{Type: 1, Instruction: "Depart", BeginShapeIndex: 0, EndShapeIndex: 2, BearingAfter: &bearing},
			{Type: 8, Instruction: "Bear right", BeginShapeIndex: 3, EndShapeIndex: 5},
			{Type: 99, Instruction: "Keep going", BeginShapeIndex: 5, EndShapeIndex: 6},
			{Type: 4, Instruction: "Arrive", BeginShapeIndex: 6, EndShapeIndex: 6},
		}, shape...)},
		Distance: 4400,
		Duration: 400,
	}

	generated, err := assembleRoute(origin, destination, []domain.ScoredPOI{first, second}, result, domain.DefaultRouteSettings())
	require.NoError(t, err)
	route := generated.Route

	require.Len(t, route.Waypoints, 4)
	require.Len(t, route.Legs, 3)
	assert.Len(t, route.Legs[0].Geometry.Coordinates, 3)
	assert.Len(t, route.Legs[1].Geometry.Coordinates, 3)
	assert.Len(t, route.Legs[2].Geometry.Coordinates, 3)

	// длины частей 1:1:2
	assert.Equal(t, int64(1100), route.Legs[0].Distance)
	assert.Equal(t, int64(1100), route.Legs[1].Distance)
	assert.Equal(t, int64(2200), route.Legs[2].Distance)
	assert.Equal(t, int64(200), route.Legs[2].Duration)

	require.NotNil(t, route.Waypoints[1].ArrivalTime)
	require.NotNil(t, route.Waypoints[2].ArrivalTime)
	assert.InDelta(t, 100, *route.Waypoints[1].ArrivalTime, 1e-6)
	assert.InDelta(t, 200, *route.Waypoints[2].ArrivalTime, 1e-6)

	require.Len(t, route.Legs[0].Maneuvers, 1)
	assert.Equal(t, 90.0, route.Legs[0].Maneuvers[0].BearingAfter)
	require.Len(t, route.Legs[1].Maneuvers, 1)
	assert.Equal(t, domain.ManeuverTurnSlightRight, route.Legs[1].Maneuvers[0].Type)
	assert.InDelta(t, 0.015, route.Legs[1].Maneuvers[0].Coordinates.Longitude, 1e-6)
	require.Len(t, route.Legs[2].Maneuvers, 2)
	assert.Equal(t, domain.ManeuverContinue, route.Legs[2].Maneuvers[0].Type, "unknown codes map to continue")
	assert.InDelta(t, 0.04, route.Legs[2].Maneuvers[1].Coordinates.Longitude, 1e-6)
}

func TestAssembleRoute_InvalidShape(t *testing.T) {
	result := &domain.RouteResult{Legs: []domain.LegResult{{Shape: "_"}}}

	_, err := assembleRoute(coord(0, 0), coord(0, 1), nil, result, domain.DefaultRouteSettings())
	assert.Error(t, err)
}

func TestMergeLegs_OffsetsManeuvers(t *testing.T) {
	legs := []shapeLeg{
		{
			shape:     []domain.Coordinate{coord(0, 0), coord(0, 1)},
			maneuvers: []domain.ManeuverResult{{BeginShapeIndex: 0, EndShapeIndex: 1}},
		},
		{
			shape:     []domain.Coordinate{coord(0, 1), coord(0, 2), coord(0, 3)},
			maneuvers: []domain.ManeuverResult{{BeginShapeIndex: 1, EndShapeIndex: 2}},
		},
	}

	merged := mergeLegs(legs, 10, 20)
	assert.Len(t, merged.shape, 4)
	assert.Equal(t, 2, merged.maneuvers[1].BeginShapeIndex)
	assert.Equal(t, 3, merged.maneuvers[1].EndShapeIndex)
	assert.Equal(t, 10.0, merged.distance)
}

func TestSplitLegs_ZeroLengthShape(t *testing.T) {
	p := coord(1, 1)
	merged := shapeLeg{shape: []domain.Coordinate{p, p}, distance: 30, duration: 9}
	waypoints := buildWaypoints(p, p, []domain.ScoredPOI{scoredPOI("x", p), scoredPOI("y", p)})

	legs := splitLegs(merged, waypoints)
	require.Len(t, legs, 3)
	for _, leg := range legs {
		assert.InDelta(t, 10, leg.distance, 1e-9)
		assert.InDelta(t, 3, leg.duration, 1e-9)
	}
}
