package repository

import (
	"context"
	"time"

	"github.com/route-engine/internal/domain"
)

// CacheRepository определяет методы для работы с кешем.
// Промах кеша возвращается как (nil, nil).
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetPOIs получает список POI по ключу поиска
	GetPOIs(ctx context.Context, key string) ([]*domain.POI, error)

	// SetPOIs сохраняет список POI
	SetPOIs(ctx context.Context, key string, pois []*domain.POI, ttl time.Duration) error

	// GetRoute получает сгенерированный маршрут по ID
	GetRoute(ctx context.Context, id string) (*domain.GeneratedRoute, error)

	// SetRoute сохраняет сгенерированный маршрут
	SetRoute(ctx context.Context, route *domain.GeneratedRoute, ttl time.Duration) error
}
