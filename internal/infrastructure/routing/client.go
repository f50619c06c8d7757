package routing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/metrics"
)

const (
	scenicOffsetFactor = 0.3
	scenicTargetCount  = 3
)

// Client - маршрутизация по цепочке бэкендов: первый - основной, последний - резервный.
// Каждый бэкенд получает ровно одну попытку на вызов.
type Client struct {
	backends []repository.RoutingBackend
	health   *HealthCache
	logger   *zap.Logger
}

// NewClient создает клиент маршрутизации. Порядок backends задаёт порядок fallback.
func NewClient(health *HealthCache, logger *zap.Logger, backends ...repository.RoutingBackend) *Client {
	return &Client{
		backends: backends,
		health:   health,
		logger:   logger,
	}
}

// available проверяет бэкенд через кеш здоровья. Последний бэкенд цепочки
// пробуется всегда: отказ от него означает отказ от маршрута.
func (c *Client) available(ctx context.Context, b repository.RoutingBackend, last bool) bool {
	if last {
		return true
	}

	status := c.health.Status(b.Name())
	if status == domain.BackendStatusUnknown {
		if err := b.HealthCheck(ctx); err != nil {
			// отмена вызывающего ничего не говорит о бэкенде: в кеш не пишем
			if ctx.Err() != nil {
				c.logger.Debug("Routing backend health check aborted by caller",
					zap.String("backend", b.Name()),
					zap.Error(err))
				return false
			}
			c.logger.Warn("Routing backend health check failed",
				zap.String("backend", b.Name()),
				zap.Error(err))
			status = domain.BackendStatusUnavailable
		} else {
			status = domain.BackendStatusAvailable
		}
		c.health.Set(b.Name(), status)
	}

	return status == domain.BackendStatusAvailable
}

// chain вызывает fn для бэкендов по порядку до первого успеха.
// Возвращает бэкенд, обслуживший вызов, и последнюю ошибку, если таких нет.
func (c *Client) chain(ctx context.Context, operation string, fn func(b repository.RoutingBackend) error) (repository.RoutingBackend, error) {
	var lastErr error

	for i, b := range c.backends {
		last := i == len(c.backends)-1

		if !c.available(ctx, b, last) {
			lastErr = errors.Wrap(errors.ErrBackendUnavailable, fmt.Errorf("%s marked unavailable", b.Name()))
			metrics.RoutingFallbacks.WithLabelValues(operation).Inc()
			c.logger.Warn("Routing backend unavailable, falling back",
				zap.String("backend", b.Name()),
				zap.String("operation", operation))
			continue
		}

		err := fn(b)
		metrics.RoutingRequests.WithLabelValues(b.Name(), operation, metrics.Outcome(err)).Inc()
		if err == nil {
			return b, nil
		}

		lastErr = err
		if !last {
			metrics.RoutingFallbacks.WithLabelValues(operation).Inc()
		}
		c.logger.Warn("Routing backend request failed",
			zap.String("backend", b.Name()),
			zap.String("operation", operation),
			zap.Error(err))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no routing backends configured")
	}
	return nil, lastErr
}

// Route строит один маршрут через origin, waypoints и destination
func (c *Client) Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	var result *domain.RouteResult

	_, err := c.chain(ctx, "route", func(b repository.RoutingBackend) error {
		results, err := b.Route(ctx, req)
		if err != nil {
			return err
		}
		result = results[0]
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrRouteNotFound, err)
	}

	return result, nil
}

// RouteWithAlternatives возвращает основной маршрут и альтернативы бэкенда.
// Если их меньше трёх при count >= 2, добавляются до двух "живописных" маршрутов
// через точку, смещённую перпендикулярно прямой origin-destination.
func (c *Client) RouteWithAlternatives(ctx context.Context, origin, destination domain.Coordinate, mode domain.TransportMode, count int, opts domain.RouteOptions) ([]*domain.RouteResult, error) {
	opts.AlternateCount = count
	req := domain.RouteRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
		Options:     opts,
	}

	var results []*domain.RouteResult
	served, err := c.chain(ctx, "alternatives", func(b repository.RoutingBackend) error {
		r, err := b.Route(ctx, req)
		if err != nil {
			return err
		}
		results = r
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrRouteNotFound, err)
	}

	if count >= 2 && len(results) < scenicTargetCount {
		for _, direction := range []float64{1, -1} {
			if len(results) >= scenicTargetCount {
				break
			}
			if scenic := c.scenicRoute(ctx, served, req, direction); scenic != nil {
				results = append(results, scenic)
			}
		}
	}

	return results, nil
}

// scenicRoute строит маршрут через точку объезда; ошибка только логируется
func (c *Client) scenicRoute(ctx context.Context, b repository.RoutingBackend, base domain.RouteRequest, direction float64) *domain.RouteResult {
	side := "left"
	if direction < 0 {
		side = "right"
	}

	req := base
	req.Waypoints = []domain.Coordinate{ScenicDetourPoint(base.Origin, base.Destination, direction)}
	req.Options.AlternateCount = 0

	results, err := b.Route(ctx, req)
	if err != nil {
		metrics.ScenicRoutes.WithLabelValues("error").Inc()
		c.logger.Warn("Failed to generate scenic route",
			zap.String("backend", b.Name()),
			zap.String("side", side),
			zap.Error(err))
		return nil
	}

	metrics.ScenicRoutes.WithLabelValues("ok").Inc()
	c.logger.Debug("Generated scenic route via detour point",
		zap.String("backend", b.Name()),
		zap.String("side", side),
		zap.Float64("distance_m", results[0].Distance))

	return results[0]
}

// ScenicDetourPoint смещает середину отрезка на 30% его длины (в градусах)
// перпендикулярно направлению: direction=1 - влево, -1 - вправо.
func ScenicDetourPoint(origin, destination domain.Coordinate, direction float64) domain.Coordinate {
	dLat := destination.Latitude - origin.Latitude
	dLng := destination.Longitude - origin.Longitude
	offset := scenicOffsetFactor * direction

	return domain.Coordinate{
		Latitude:  (origin.Latitude+destination.Latitude)/2 - dLng*offset,
		Longitude: (origin.Longitude+destination.Longitude)/2 + dLat*offset,
	}
}

// OptimizedOrder возвращает маршрут с оптимизированным порядком промежуточных точек.
// result.Locations содержит точки в новом порядке.
func (c *Client) OptimizedOrder(ctx context.Context, locations []domain.Coordinate, mode domain.TransportMode) (*domain.RouteResult, error) {
	var result *domain.RouteResult

	_, err := c.chain(ctx, "optimized_route", func(b repository.RoutingBackend) error {
		r, err := b.OptimizedRoute(ctx, locations, mode)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrRouteNotFound, err)
	}

	return result, nil
}

// Matrix возвращает матрицы расстояний и времени; недостижимые пары - +Inf
func (c *Client) Matrix(ctx context.Context, sources, targets []domain.Coordinate, mode domain.TransportMode) (*domain.MatrixResult, error) {
	if len(sources) == 0 || len(targets) == 0 {
		return nil, errors.ErrEmptyInput
	}

	var result *domain.MatrixResult
	_, err := c.chain(ctx, "matrix", func(b repository.RoutingBackend) error {
		r, err := b.Matrix(ctx, sources, targets, mode)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrBackendUnavailable, err)
	}

	return result, nil
}

// SnapToRoad привязывает точку к дороге. nil - ребро не найдено или все бэкенды недоступны.
func (c *Client) SnapToRoad(ctx context.Context, point domain.Coordinate, mode domain.TransportMode) *domain.Coordinate {
	var snapped *domain.Coordinate

	_, err := c.chain(ctx, "locate", func(b repository.RoutingBackend) error {
		s, err := b.Locate(ctx, point, mode)
		if err != nil {
			return err
		}
		snapped = s
		return nil
	})
	if err != nil {
		c.logger.Warn("Snap to road failed", zap.Error(err))
		return nil
	}

	return snapped
}

// BackendStatus возвращает закешированный статус каждого бэкенда без проверки
func (c *Client) BackendStatus() map[string]domain.BackendStatus {
	statuses := make(map[string]domain.BackendStatus, len(c.backends))
	for _, b := range c.backends {
		statuses[b.Name()] = c.health.Status(b.Name())
	}
	return statuses
}

var _ repository.RoutingRepository = (*Client)(nil)
