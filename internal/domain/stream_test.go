package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRouteGenerateEvent_Validate(t *testing.T) {
	tests := []struct {
		name        string
		event       RouteGenerateEvent
		expected    bool
		description string
	}{
		{
			name: "valid origin and destination",
			event: RouteGenerateEvent{
				RequestID:   uuid.New(),
				Origin:      Coordinate{Latitude: 39.47, Longitude: -0.376},
				Destination: Coordinate{Latitude: 39.46, Longitude: -0.38},
			},
			expected:    true,
			description: "Should return true for coordinates inside WGS84 bounds",
		},
		{
			name: "origin latitude out of range",
			event: RouteGenerateEvent{
				RequestID:   uuid.New(),
				Origin:      Coordinate{Latitude: 91, Longitude: 0},
				Destination: Coordinate{Latitude: 39.46, Longitude: -0.38},
			},
			expected:    false,
			description: "Should return false when origin latitude exceeds 90",
		},
		{
			name: "destination longitude out of range",
			event: RouteGenerateEvent{
				RequestID:   uuid.New(),
				Origin:      Coordinate{Latitude: 39.47, Longitude: -0.376},
				Destination: Coordinate{Latitude: 39.46, Longitude: -180.5},
			},
			expected:    false,
			description: "Should return false when destination longitude is below -180",
		},
		{
			name: "boundary values",
			event: RouteGenerateEvent{
				RequestID:   uuid.New(),
				Origin:      Coordinate{Latitude: -90, Longitude: 180},
				Destination: Coordinate{Latitude: 90, Longitude: -180},
			},
			expected:    true,
			description: "Should accept boundary values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Validate(), tt.description)
		})
	}
}

func TestManeuverTypeFromCode(t *testing.T) {
	assert.Equal(t, ManeuverNone, ManeuverTypeFromCode(0))
	assert.Equal(t, ManeuverDepart, ManeuverTypeFromCode(1))
	assert.Equal(t, ManeuverArrive, ManeuverTypeFromCode(4))
	assert.Equal(t, ManeuverTurnRight, ManeuverTypeFromCode(9))
	assert.Equal(t, ManeuverUturnLeft, ManeuverTypeFromCode(12))
	assert.Equal(t, ManeuverTurnSlightLeft, ManeuverTypeFromCode(15))
	assert.Equal(t, ManeuverContinue, ManeuverTypeFromCode(26))
	assert.Equal(t, ManeuverContinue, ManeuverTypeFromCode(-1))
}

func TestPOICategory_IsValid(t *testing.T) {
	assert.Len(t, AllCategories, 34)
	for _, c := range AllCategories {
		assert.True(t, c.IsValid(), string(c))
		_, ok := CategoryOSMTags[c]
		assert.True(t, ok, "missing OSM tags for %s", c)
	}
	assert.False(t, POICategory("casino").IsValid())

	grouped := 0
	for _, g := range CategoryGroups {
		grouped += len(g.Categories)
	}
	assert.Equal(t, 31, grouped)
}

func TestPOI_DedupKey(t *testing.T) {
	p := &POI{Source: POISourceOSM, SourceID: "node/123"}
	assert.Equal(t, "osm:node/123", p.DedupKey())
}

func TestRouteRequest_Locations(t *testing.T) {
	req := RouteRequest{
		Origin:      Coordinate{Latitude: 1, Longitude: 1},
		Destination: Coordinate{Latitude: 3, Longitude: 3},
		Waypoints:   []Coordinate{{Latitude: 2, Longitude: 2}},
	}
	locs := req.Locations()
	assert.Len(t, locs, 3)
	assert.Equal(t, req.Origin, locs[0])
	assert.Equal(t, req.Destination, locs[2])
}
