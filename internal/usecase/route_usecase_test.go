package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	apperrors "github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/usecase"
	"github.com/route-engine/internal/usecase/dto"
)

const testRouteTTL = 24 * time.Hour

func newRouteUseCase() (*usecase.RouteUseCase, *MockRouteEngine, *MockRoutingRepository, *MockCacheRepository) {
	engine := &MockRouteEngine{}
	routing := &MockRoutingRepository{}
	cache := &MockCacheRepository{}
	return usecase.NewRouteUseCase(engine, routing, cache, testRouteTTL, zap.NewNop()), engine, routing, cache
}

func generatedRoute(id string) *domain.GeneratedRoute {
	return &domain.GeneratedRoute{
		Route: &domain.Route{
			ID:          id,
			Origin:      valenciaOrigin,
			Destination: valenciaDestination,
			Geometry: domain.LineString{
				Type: "LineString",
				Coordinates: [][2]float64{
					{valenciaOrigin.Longitude, valenciaOrigin.Latitude},
					{valenciaDestination.Longitude, valenciaDestination.Latitude},
				},
			},
			Distance: 1500,
			Duration: 300,
			Backend:  "valhalla",
			Waypoints: []domain.Waypoint{
				{Coordinates: valenciaOrigin, Type: domain.WaypointTypeOrigin},
				{Coordinates: valenciaDestination, Type: domain.WaypointTypeDestination},
			},
		},
		POIsOnRoute: []*domain.POI{},
	}
}

var createRouteRequest = dto.CreateRouteRequest{
	Origin:      dto.CoordinateDTO{Lat: 39.47, Lng: -0.376},
	Destination: dto.CoordinateDTO{Lat: 39.46, Lng: -0.38},
}

func TestRouteUseCase_CreateRoute(t *testing.T) {
	ctx := context.Background()

	t.Run("request settings are merged over defaults", func(t *testing.T) {
		uc, engine, _, cache := newRouteUseCase()
		generated := generatedRoute("r-1")

		adventure := 0.0
		req := createRouteRequest
		req.Settings = &dto.RouteSettingsDTO{AdventureLevel: &adventure, TransportMode: "bicycle"}

		var got domain.RouteSettings
		engine.On("GenerateRoute", mock.Anything, valenciaOrigin, valenciaDestination, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(3).(domain.RouteSettings) }).
			Return(generated, nil)
		cache.On("SetRoute", mock.Anything, generated, testRouteTTL).Return(nil)

		resp, err := uc.CreateRoute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, generated.Route, resp.Route)
		assert.Empty(t, resp.Alternatives)

		defaults := domain.DefaultRouteSettings()
		assert.Equal(t, 0.0, got.AdventureLevel)
		assert.Equal(t, domain.TransportModeBicycle, got.TransportMode)
		assert.Equal(t, defaults.POICategories, got.POICategories)
		cache.AssertExpectations(t)
	})

	t.Run("invalid coordinates are rejected", func(t *testing.T) {
		uc, engine, _, _ := newRouteUseCase()
		req := createRouteRequest
		req.Origin.Lat = 120

		_, err := uc.CreateRoute(ctx, req)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
		engine.AssertNotCalled(t, "GenerateRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		uc, _, _, _ := newRouteUseCase()
		req := createRouteRequest
		req.Settings = &dto.RouteSettingsDTO{POICategories: []string{"casino"}}

		_, err := uc.CreateRoute(ctx, req)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
	})

	t.Run("cache failure does not fail generation", func(t *testing.T) {
		uc, engine, _, cache := newRouteUseCase()
		generated := generatedRoute("r-2")

		engine.On("GenerateRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(generated, nil)
		cache.On("SetRoute", mock.Anything, generated, testRouteTTL).Return(errors.New("redis down"))

		resp, err := uc.CreateRoute(ctx, createRouteRequest)
		require.NoError(t, err)
		assert.Equal(t, "r-2", resp.Route.ID)
	})

	t.Run("engine error is returned", func(t *testing.T) {
		uc, engine, _, cache := newRouteUseCase()

		engine.On("GenerateRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrRouteNotFound)

		resp, err := uc.CreateRoute(ctx, createRouteRequest)
		assert.Nil(t, resp)
		assert.True(t, errors.Is(err, apperrors.ErrRouteNotFound))
		cache.AssertNotCalled(t, "SetRoute", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("alternatives are attached", func(t *testing.T) {
		uc, engine, routing, cache := newRouteUseCase()
		generated := generatedRoute("r-3")
		req := createRouteRequest
		req.Alternatives = 2

		engine.On("GenerateRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(generated, nil)
		cache.On("SetRoute", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		routing.On("RouteWithAlternatives", mock.Anything, valenciaOrigin, valenciaDestination,
			domain.TransportModeCar, 2, domain.RouteOptions{}).
			Return([]*domain.RouteResult{
				singleLegResult("valhalla", 1500.4, 299.6, valenciaOrigin, valenciaDestination),
				singleLegResult("valhalla", 1800, 350, valenciaOrigin, domain.Coordinate{Latitude: 39.468, Longitude: -0.372}, valenciaDestination),
			}, nil)

		resp, err := uc.CreateRoute(ctx, req)
		require.NoError(t, err)
		require.Len(t, resp.Alternatives, 2)
		assert.Equal(t, int64(1500), resp.Alternatives[0].Distance)
		assert.Equal(t, int64(300), resp.Alternatives[0].Duration)
		assert.Len(t, resp.Alternatives[1].Geometry.Coordinates, 3)
	})

	t.Run("alternatives failure is ignored", func(t *testing.T) {
		uc, engine, routing, cache := newRouteUseCase()
		req := createRouteRequest
		req.Alternatives = 1

		engine.On("GenerateRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(generatedRoute("r-4"), nil)
		cache.On("SetRoute", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		routing.On("RouteWithAlternatives", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrRouteNotFound)

		resp, err := uc.CreateRoute(ctx, req)
		require.NoError(t, err)
		assert.Empty(t, resp.Alternatives)
	})
}

func TestRouteUseCase_Generate(t *testing.T) {
	uc, engine, _, _ := newRouteUseCase()

	settings := domain.DefaultRouteSettings()
	settings.AdventureLevel = 1.5

	_, err := uc.Generate(context.Background(), valenciaOrigin, valenciaDestination, settings)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidSettings))

	settings.AdventureLevel = 0.5
	settings.TransportMode = "rocket"
	_, err = uc.Generate(context.Background(), valenciaOrigin, valenciaDestination, settings)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidSettings))

	engine.AssertNotCalled(t, "GenerateRoute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouteUseCase_GenerateKeepsEmptyPreferences(t *testing.T) {
	uc, engine, _, cache := newRouteUseCase()
	generated := generatedRoute("r-1")

	settings := domain.DefaultRouteSettings()
	settings.TransportMode = ""
	settings.POICategories = []domain.POICategory{}

	var got domain.RouteSettings
	engine.On("GenerateRoute", mock.Anything, valenciaOrigin, valenciaDestination, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(3).(domain.RouteSettings) }).
		Return(generated, nil)
	cache.On("SetRoute", mock.Anything, generated, testRouteTTL).Return(nil)

	_, err := uc.Generate(context.Background(), valenciaOrigin, valenciaDestination, settings)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRouteSettings().TransportMode, got.TransportMode)
	assert.NotNil(t, got.POICategories)
	assert.Empty(t, got.POICategories, "empty preferences are not replaced by defaults")
}

func TestRouteUseCase_CreateRouteExplicitEmptyCategories(t *testing.T) {
	uc, engine, _, cache := newRouteUseCase()
	generated := generatedRoute("r-1")

	req := createRouteRequest
	req.Settings = &dto.RouteSettingsDTO{POICategories: []string{}}

	var got domain.RouteSettings
	engine.On("GenerateRoute", mock.Anything, valenciaOrigin, valenciaDestination, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(3).(domain.RouteSettings) }).
		Return(generated, nil)
	cache.On("SetRoute", mock.Anything, generated, testRouteTTL).Return(nil)

	_, err := uc.CreateRoute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, got.POICategories)
}

func TestRouteUseCase_GetRouteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		uc, _, _, cache := newRouteUseCase()
		generated := generatedRoute("r-1")
		cache.On("GetRoute", mock.Anything, "r-1").Return(generated, nil)

		got, err := uc.GetRouteByID(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, generated, got)
	})

	t.Run("missing", func(t *testing.T) {
		uc, _, _, cache := newRouteUseCase()
		cache.On("GetRoute", mock.Anything, "nope").Return(nil, nil)

		_, err := uc.GetRouteByID(ctx, "nope")
		assert.True(t, errors.Is(err, apperrors.ErrRouteNotFound))
	})

	t.Run("cache error", func(t *testing.T) {
		uc, _, _, cache := newRouteUseCase()
		cache.On("GetRoute", mock.Anything, "r-1").Return(nil, errors.New("connection reset"))

		_, err := uc.GetRouteByID(ctx, "r-1")
		assert.True(t, errors.Is(err, apperrors.ErrCacheError))
	})
}

func TestRouteUseCase_GetRouteGeoJSON(t *testing.T) {
	uc, _, _, cache := newRouteUseCase()
	cache.On("GetRoute", mock.Anything, "r-1").Return(generatedRoute("r-1"), nil)

	feature, err := uc.GetRouteGeoJSON(context.Background(), "r-1")
	require.NoError(t, err)

	assert.Equal(t, "LineString", feature.Geometry.GeoJSONType())
	assert.Equal(t, "r-1", feature.Properties["id"])
	assert.Equal(t, int64(1500), feature.Properties["distance"])
	assert.Equal(t, "valhalla", feature.Properties["backend"])
	assert.Equal(t, 2, feature.Properties["waypoints"])
}

func TestRouteUseCase_GetAlternatives(t *testing.T) {
	uc, _, routing, _ := newRouteUseCase()
	req := dto.AlternativesRequest{
		Origin:        createRouteRequest.Origin,
		Destination:   createRouteRequest.Destination,
		TransportMode: "pedestrian",
		AvoidTolls:    true,
	}

	routing.On("RouteWithAlternatives", mock.Anything, valenciaOrigin, valenciaDestination,
		domain.TransportModePedestrian, 3, domain.RouteOptions{AvoidTolls: true}).
		Return([]*domain.RouteResult{
			singleLegResult("osrm", 1400, 1000, valenciaOrigin, valenciaDestination),
			{Backend: "osrm", Legs: []domain.LegResult{{Shape: "_"}}},
		}, nil)

	summaries, err := uc.GetAlternatives(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, summaries, 1, "undecodable results are skipped")
	assert.Equal(t, "osrm", summaries[0].Backend)

	_, err = uc.GetAlternatives(context.Background(), dto.AlternativesRequest{Count: 9})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
}

func TestRouteUseCase_Matrix(t *testing.T) {
	uc, _, routing, _ := newRouteUseCase()
	req := dto.MatrixRequest{
		Sources: []dto.CoordinateDTO{createRouteRequest.Origin},
		Targets: []dto.CoordinateDTO{createRouteRequest.Destination, {Lat: 40.4, Lng: -3.7}},
	}

	routing.On("Matrix", mock.Anything,
		[]domain.Coordinate{valenciaOrigin},
		[]domain.Coordinate{valenciaDestination, {Latitude: 40.4, Longitude: -3.7}},
		domain.TransportModeCar).
		Return(&domain.MatrixResult{
			Distances: [][]float64{{1500, math.Inf(1)}},
			Durations: [][]float64{{300, math.Inf(1)}},
		}, nil)

	resp, err := uc.Matrix(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.Distances[0][0])
	assert.Equal(t, 1500.0, *resp.Distances[0][0])
	assert.Nil(t, resp.Distances[0][1])
	assert.Nil(t, resp.Durations[0][1])

	_, err = uc.Matrix(context.Background(), dto.MatrixRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidRequest))
}

func TestRouteUseCase_SnapToRoad(t *testing.T) {
	uc, _, routing, _ := newRouteUseCase()
	snapped := domain.Coordinate{Latitude: 39.4701, Longitude: -0.3761}

	routing.On("SnapToRoad", mock.Anything, valenciaOrigin, domain.TransportModeCar).Return(&snapped).Once()
	routing.On("SnapToRoad", mock.Anything, valenciaDestination, domain.TransportModeCar).Return(nil).Once()

	resp, err := uc.SnapToRoad(context.Background(), dto.SnapRequest{Point: createRouteRequest.Origin})
	require.NoError(t, err)
	assert.True(t, resp.Found)
	assert.Equal(t, 39.4701, resp.Snapped.Lat)

	resp, err = uc.SnapToRoad(context.Background(), dto.SnapRequest{Point: createRouteRequest.Destination})
	require.NoError(t, err)
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Snapped)
}

func TestRouteUseCase_BackendStatus(t *testing.T) {
	uc, _, routing, _ := newRouteUseCase()
	status := map[string]domain.BackendStatus{"valhalla": domain.BackendStatusAvailable, "osrm": domain.BackendStatusUnknown}
	routing.On("BackendStatus").Return(status)

	assert.Equal(t, status, uc.BackendStatus())
}
