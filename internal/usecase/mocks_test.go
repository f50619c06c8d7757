package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/route-engine/internal/domain"
)

// MockPOIRepository is a mock of POIRepository
type MockPOIRepository struct {
	mock.Mock
}

func (m *MockPOIRepository) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) FindInBoundingBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.POICategory, limit int) ([]*domain.POI, error) {
	args := m.Called(ctx, bbox, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) FindInRadius(ctx context.Context, center domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error) {
	args := m.Called(ctx, center, radius, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) Search(ctx context.Context, query string, center *domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error) {
	args := m.Called(ctx, query, center, radius, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.POI), args.Error(1)
}

func (m *MockPOIRepository) Upsert(ctx context.Context, pois []*domain.POI) error {
	args := m.Called(ctx, pois)
	return args.Error(0)
}

// MockRemotePOIRepository is a mock of RemotePOIRepository
type MockRemotePOIRepository struct {
	mock.Mock
}

func (m *MockRemotePOIRepository) FetchInBoundingBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.POICategory) ([]*domain.POI, error) {
	args := m.Called(ctx, bbox, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.POI), args.Error(1)
}

func (m *MockRemotePOIRepository) FetchInRadius(ctx context.Context, center domain.Coordinate, radius float64, categories []domain.POICategory) ([]*domain.POI, error) {
	args := m.Called(ctx, center, radius, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.POI), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetPOIs(ctx context.Context, key string) ([]*domain.POI, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.POI), args.Error(1)
}

func (m *MockCacheRepository) SetPOIs(ctx context.Context, key string, pois []*domain.POI, ttl time.Duration) error {
	args := m.Called(ctx, key, pois, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetRoute(ctx context.Context, id string) (*domain.GeneratedRoute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedRoute), args.Error(1)
}

func (m *MockCacheRepository) SetRoute(ctx context.Context, route *domain.GeneratedRoute, ttl time.Duration) error {
	args := m.Called(ctx, route, ttl)
	return args.Error(0)
}

// MockRoutingRepository is a mock of RoutingRepository
type MockRoutingRepository struct {
	mock.Mock
}

func (m *MockRoutingRepository) Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteResult), args.Error(1)
}

func (m *MockRoutingRepository) RouteWithAlternatives(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode, count int, opts domain.RouteOptions) ([]*domain.RouteResult, error) {
	args := m.Called(ctx, origin, destination, mode, count, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.RouteResult), args.Error(1)
}

func (m *MockRoutingRepository) OptimizedOrder(ctx context.Context, locations []domain.Coordinate, mode domain.TransportMode) (*domain.RouteResult, error) {
	args := m.Called(ctx, locations, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteResult), args.Error(1)
}

func (m *MockRoutingRepository) Matrix(ctx context.Context, sources, targets []domain.Coordinate, mode domain.TransportMode) (*domain.MatrixResult, error) {
	args := m.Called(ctx, sources, targets, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MatrixResult), args.Error(1)
}

func (m *MockRoutingRepository) SnapToRoad(ctx context.Context, point domain.Coordinate, mode domain.TransportMode) *domain.Coordinate {
	args := m.Called(ctx, point, mode)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Coordinate)
}

func (m *MockRoutingRepository) BackendStatus() map[string]domain.BackendStatus {
	args := m.Called()
	return args.Get(0).(map[string]domain.BackendStatus)
}

// MockPOIFinder is a mock of POIFinder
type MockPOIFinder struct {
	mock.Mock
}

func (m *MockPOIFinder) FindInPolygon(ctx context.Context, polygon []domain.Coordinate, categories []domain.POICategory, limit int) ([]*domain.POI, error) {
	args := m.Called(ctx, polygon, categories, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.POI), args.Error(1)
}

// MockRouteEngine is a mock of RouteEngine
type MockRouteEngine struct {
	mock.Mock
}

func (m *MockRouteEngine) GenerateRoute(ctx context.Context, origin, destination domain.Coordinate, settings domain.RouteSettings) (*domain.GeneratedRoute, error) {
	args := m.Called(ctx, origin, destination, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedRoute), args.Error(1)
}
