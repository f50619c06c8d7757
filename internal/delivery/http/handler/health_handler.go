package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck - проверка зависимости (БД, Redis)
type HealthCheck func(ctx context.Context) error

// BackendStatusProvider отдаёт закешированное состояние бэкендов маршрутизации
type BackendStatusProvider interface {
	BackendStatus() map[string]domain.BackendStatus
}

type HealthHandler struct {
	backends BackendStatusProvider
	checks   map[string]HealthCheck
	logger   *zap.Logger
}

func NewHealthHandler(backends BackendStatusProvider, checks map[string]HealthCheck, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		backends: backends,
		checks:   checks,
		logger:   logger,
	}
}

// Health godoc
// @Summary Состояние сервиса
// @Description Проверяет БД и Redis; доступность бэкендов маршрутизации берётся из кеша без запросов к ним.
// @Tags Health
// @Produce json
// @Success 200 {object} object
// @Failure 503 {object} object
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	dependencies := make(fiber.Map, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			dependencies[name] = "unhealthy"
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
			continue
		}
		dependencies[name] = "healthy"
	}

	// недоступность одного бэкенда не критична, пока есть резервный
	backends := h.backends.BackendStatus()
	if status == "healthy" && !anyBackendUsable(backends) {
		status = "degraded"
	}

	return c.Status(code).JSON(fiber.Map{
		"status":       status,
		"time":         time.Now(),
		"dependencies": dependencies,
		"backends":     backends,
	})
}

func anyBackendUsable(backends map[string]domain.BackendStatus) bool {
	for _, s := range backends {
		if s != domain.BackendStatusUnavailable {
			return true
		}
	}
	return false
}
