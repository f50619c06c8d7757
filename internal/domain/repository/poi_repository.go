package repository

import (
	"context"

	"github.com/route-engine/internal/domain"
)

// POIRepository определяет методы локального хранилища точек интереса
type POIRepository interface {
	// GetByID возвращает POI по ID
	GetByID(ctx context.Context, id string) (*domain.POI, error)

	// FindInBoundingBox возвращает POI в прямоугольнике, сначала с высоким рейтингом
	FindInBoundingBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.POICategory, limit int) ([]*domain.POI, error)

	// FindInRadius возвращает POI в радиусе (метры) от точки, ближайшие первыми
	FindInRadius(ctx context.Context, center domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error)

	// Search выполняет текстовый поиск; center и radius опциональны
	Search(ctx context.Context, query string, center *domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error)

	// Upsert сохраняет POI, обновляя существующие по (source, source_id)
	Upsert(ctx context.Context, pois []*domain.POI) error
}

// RemotePOIRepository - внешний источник POI (Overpass)
type RemotePOIRepository interface {
	FetchInBoundingBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.POICategory) ([]*domain.POI, error)
	FetchInRadius(ctx context.Context, center domain.Coordinate, radius float64, categories []domain.POICategory) ([]*domain.POI, error)
}
