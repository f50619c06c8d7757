package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/delivery/http/handler"
	"github.com/route-engine/internal/delivery/http/middleware"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/metrics"
	"github.com/route-engine/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	routeHandler  *handler.RouteHandler
	poiHandler    *handler.POIHandler
	healthHandler *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	routeHandler *handler.RouteHandler,
	poiHandler *handler.POIHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:                  "Route Engine",
		ReadTimeout:              10 * time.Second,
		WriteTimeout:             90 * time.Second,
		IdleTimeout:              60 * time.Second,
		EnableSplittingOnParsers: true,
		ErrorHandler:             customErrorHandler(logger),
	})

	s := &Server{
		app:           app,
		config:        cfg,
		logger:        logger,
		routeHandler:  routeHandler,
		poiHandler:    poiHandler,
		healthHandler: healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(metrics.Middleware())
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", metrics.Handler())

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthHandler.Health)

	// Routes
	api.Post("/routes", s.routeHandler.CreateRoute)
	api.Post("/routes/alternatives", s.routeHandler.GetAlternatives)
	api.Get("/routes/:id", s.routeHandler.GetRoute)
	api.Get("/routes/:id/geojson", s.routeHandler.GetRouteGeoJSON)

	// Routing passthrough
	api.Post("/routing/matrix", s.routeHandler.Matrix)
	api.Post("/routing/snap", s.routeHandler.SnapToRoad)

	// POI; статические пути регистрируются до /poi/:id
	api.Get("/poi/search", s.poiHandler.Search)
	api.Get("/poi/nearby", s.poiHandler.Nearby)
	api.Get("/poi/bbox", s.poiHandler.BoundingBox)
	api.Get("/poi/categories", s.poiHandler.GetCategories)
	api.Get("/poi/:id", s.poiHandler.GetByID)
}

// App - экземпляр Fiber, используется в тестах через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки роутинга Fiber (404, 405) и паники в формате ErrorResponse
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appCode := errors.ErrInternalServer.Code

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				appCode = "NOT_FOUND"
			} else if code < fiber.StatusInternalServerError {
				appCode = errors.ErrInvalidRequest.Code
			}
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{
			Error: errors.New(appCode, err.Error(), code),
		})
	}
}
