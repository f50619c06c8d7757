package main

// @title Route Engine API
// @version 1.0.0
// @description Сервис генерации маршрутов с заездами к интересным местам вдоль пути.
// @description
// @description Основные возможности:
// @description - Генерация маршрута с учётом уровня "приключенческости" и бюджета расстояния
// @description - Альтернативные маршруты и живописные объезды
// @description - Матрица расстояний и привязка точки к дороге
// @description - Поиск POI по названию, радиусу и прямоугольнику

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/route-engine/docs/swagger"
	"github.com/route-engine/internal/config"
	httpDelivery "github.com/route-engine/internal/delivery/http"
	"github.com/route-engine/internal/delivery/http/handler"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/infrastructure/osrm"
	"github.com/route-engine/internal/infrastructure/overpass"
	"github.com/route-engine/internal/infrastructure/routing"
	"github.com/route-engine/internal/infrastructure/valhalla"
	"github.com/route-engine/internal/pkg/logger"
	"github.com/route-engine/internal/repository/cache"
	"github.com/route-engine/internal/repository/postgres"
	"github.com/route-engine/internal/usecase"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Logger
	log, err := logger.New(cfg.Log.Level, "route-engine-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Route Engine API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("valhalla_url", cfg.Valhalla.URL),
		zap.String("osrm_url", cfg.OSRM.URL))

	// 3. PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	cancel()
	log.Info("All connections healthy")

	// 5. Repositories and external clients
	poiRepo := postgres.NewPOIRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	remotePOIRepo := overpass.NewOverpassClient(&cfg.Overpass, log)
	routingClient := routing.NewClient(
		routing.NewHealthCache(cfg.Routing.HealthCacheTTL),
		log,
		routingBackends(cfg, log)...,
	)

	// 6. Use cases
	poiUC := usecase.NewPOIUseCase(poiRepo, remotePOIRepo, cacheRepo, cfg.POI, log)
	generator := usecase.NewRouteGenerator(routingClient, poiUC, cfg.Routing, log)
	routeUC := usecase.NewRouteUseCase(generator, routingClient, cacheRepo, cfg.Routing.RouteTTL, log)

	// 7. Handlers
	routeHandler := handler.NewRouteHandler(routeUC, log)
	poiHandler := handler.NewPOIHandler(poiUC, log)
	healthHandler := handler.NewHealthHandler(routeUC, map[string]handler.HealthCheck{
		"postgres": db.Health,
		"redis":    redisClient.Health,
	}, log)

	// 8. HTTP server
	server := httpDelivery.NewServer(cfg, log, routeHandler, poiHandler, healthHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully", zap.String("address", cfg.GetServerAddr()))

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// routingBackends - Valhalla основной, OSRM резервный; пустой URL отключает бэкенд
func routingBackends(cfg *config.Config, log *zap.Logger) []repository.RoutingBackend {
	var backends []repository.RoutingBackend
	if cfg.Valhalla.URL != "" {
		backends = append(backends, valhalla.NewValhallaClient(&cfg.Valhalla, log))
	}
	if cfg.OSRM.URL != "" {
		backends = append(backends, osrm.NewOSRMClient(&cfg.OSRM, log))
	}
	return backends
}
