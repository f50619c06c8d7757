package repository

import (
	"context"

	"github.com/route-engine/internal/domain"
)

// RoutingBackend - адаптер одного бэкенда маршрутизации.
// Все ответы нормализуются в domain.RouteResult.
type RoutingBackend interface {
	// Name возвращает имя бэкенда ("valhalla", "osrm")
	Name() string

	// HealthCheck проверяет доступность бэкенда
	HealthCheck(ctx context.Context) error

	// Route строит маршрут; первый элемент - основной, остальные - альтернативы бэкенда
	Route(ctx context.Context, req domain.RouteRequest) ([]*domain.RouteResult, error)

	// OptimizedRoute строит маршрут с оптимизированным порядком промежуточных точек
	OptimizedRoute(ctx context.Context, locations []domain.Coordinate, mode domain.TransportMode) (*domain.RouteResult, error)

	// Matrix возвращает матрицы расстояний и времени
	Matrix(ctx context.Context, sources, targets []domain.Coordinate, mode domain.TransportMode) (*domain.MatrixResult, error)

	// Locate привязывает точку к ближайшему ребру графа; nil если ребро не найдено
	Locate(ctx context.Context, point domain.Coordinate, mode domain.TransportMode) (*domain.Coordinate, error)
}

// RoutingRepository - маршрутизация с цепочкой резервных бэкендов
type RoutingRepository interface {
	Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error)
	RouteWithAlternatives(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode, count int, opts domain.RouteOptions) ([]*domain.RouteResult, error)
	OptimizedOrder(ctx context.Context, locations []domain.Coordinate, mode domain.TransportMode) (*domain.RouteResult, error)
	Matrix(ctx context.Context, sources, targets []domain.Coordinate, mode domain.TransportMode) (*domain.MatrixResult, error)
	SnapToRoad(ctx context.Context, point domain.Coordinate, mode domain.TransportMode) *domain.Coordinate

	// BackendStatus возвращает закешированное состояние бэкендов без проверки
	BackendStatus() map[string]domain.BackendStatus
}
