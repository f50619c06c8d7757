package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
)

const routeKeyPrefix = "route:"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

// RouteKey возвращает ключ сгенерированного маршрута
func RouteKey(id string) string {
	return routeKeyPrefix + id
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// GetPOIs получает результат поиска POI из кеша
func (r *cacheRepository) GetPOIs(ctx context.Context, key string) ([]*domain.POI, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var pois []*domain.POI
	if err := json.Unmarshal(data, &pois); err != nil {
		r.logger.Error("Failed to unmarshal POIs from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("unmarshal pois: %w", err)
	}

	return pois, nil
}

// SetPOIs сохраняет результат поиска POI. Пустой список тоже кешируется.
func (r *cacheRepository) SetPOIs(ctx context.Context, key string, pois []*domain.POI, ttl time.Duration) error {
	if pois == nil {
		pois = []*domain.POI{}
	}
	data, err := json.Marshal(pois)
	if err != nil {
		r.logger.Error("Failed to marshal POIs", zap.Error(err))
		return fmt.Errorf("marshal pois: %w", err)
	}

	return r.Set(ctx, key, data, ttl)
}

// GetRoute получает сгенерированный маршрут по ID
func (r *cacheRepository) GetRoute(ctx context.Context, id string) (*domain.GeneratedRoute, error) {
	data, err := r.Get(ctx, RouteKey(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var route domain.GeneratedRoute
	if err := json.Unmarshal(data, &route); err != nil {
		r.logger.Error("Failed to unmarshal route from cache", zap.String("route_id", id), zap.Error(err))
		return nil, fmt.Errorf("unmarshal route: %w", err)
	}

	return &route, nil
}

// SetRoute сохраняет сгенерированный маршрут под route:{id}
func (r *cacheRepository) SetRoute(ctx context.Context, route *domain.GeneratedRoute, ttl time.Duration) error {
	if route == nil || route.Route == nil {
		return fmt.Errorf("route is empty")
	}

	data, err := json.Marshal(route)
	if err != nil {
		r.logger.Error("Failed to marshal route", zap.Error(err))
		return fmt.Errorf("marshal route: %w", err)
	}

	return r.Set(ctx, RouteKey(route.Route.ID), data, ttl)
}
