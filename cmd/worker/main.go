package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/infrastructure/osrm"
	"github.com/route-engine/internal/infrastructure/overpass"
	"github.com/route-engine/internal/infrastructure/routing"
	"github.com/route-engine/internal/infrastructure/valhalla"
	"github.com/route-engine/internal/pkg/logger"
	"github.com/route-engine/internal/repository/cache"
	"github.com/route-engine/internal/repository/postgres"
	redisRepo "github.com/route-engine/internal/repository/redis"
	"github.com/route-engine/internal/usecase"
	"github.com/route-engine/internal/worker"
	"github.com/route-engine/internal/worker/route"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Logger
	log, err := logger.New(cfg.Log.Level, "route-engine-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Route Generation Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("shutdown_timeout", cfg.Worker.ShutdownTimeout))

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

	// 4. Redis: один клиент для кеша и стримов
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Repositories and external clients
	poiRepo := postgres.NewPOIRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	remotePOIRepo := overpass.NewOverpassClient(&cfg.Overpass, log)

	var backends []repository.RoutingBackend
	if cfg.Valhalla.URL != "" {
		backends = append(backends, valhalla.NewValhallaClient(&cfg.Valhalla, log))
	}
	if cfg.OSRM.URL != "" {
		backends = append(backends, osrm.NewOSRMClient(&cfg.OSRM, log))
	}
	routingClient := routing.NewClient(routing.NewHealthCache(cfg.Routing.HealthCacheTTL), log, backends...)

	// 6. Use cases
	poiUC := usecase.NewPOIUseCase(poiRepo, remotePOIRepo, cacheRepo, cfg.POI, log)
	generator := usecase.NewRouteGenerator(routingClient, poiUC, cfg.Routing, log)
	routeUC := usecase.NewRouteUseCase(generator, routingClient, cacheRepo, cfg.Routing.RouteTTL, log)

	// 7. Workers
	workerManager := worker.NewWorkerManager(log, cfg.Worker.ShutdownTimeout)
	workerManager.Register(route.NewGenerationWorker(streamRepo, routeUC, cfg.Worker.ConsumerGroup, log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 8. Graceful shutdown: текущий батч дорабатывается до shutdown timeout
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
