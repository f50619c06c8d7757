package usecase

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/route-engine/internal/config"
	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/domain/repository"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/geo"
	"github.com/route-engine/internal/pkg/metrics"
)

const (
	defaultPOILimit       = 100
	defaultBBoxLimit      = 200
	defaultSearchLimit    = 20
	polygonBufferMeters   = 100
	polygonRemoteFraction = 0.3
	radiusRemoteFraction  = 0.5
)

type POIUseCase struct {
	poiRepo    repository.POIRepository
	remoteRepo repository.RemotePOIRepository
	cacheRepo  repository.CacheRepository
	cfg        config.POIConfig
	logger     *zap.Logger
}

func NewPOIUseCase(
	poiRepo repository.POIRepository,
	remoteRepo repository.RemotePOIRepository,
	cacheRepo repository.CacheRepository,
	cfg config.POIConfig,
	logger *zap.Logger,
) *POIUseCase {
	return &POIUseCase{
		poiRepo:    poiRepo,
		remoteRepo: remoteRepo,
		cacheRepo:  cacheRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// FindInPolygon ищет POI внутри полигона. Локальное хранилище опрашивается по bbox;
// если там меньше 30% от limit, догружаются удалённые POI и сохраняются локально.
func (uc *POIUseCase) FindInPolygon(
	ctx context.Context,
	polygon []domain.Coordinate,
	categories []domain.POICategory,
	limit int,
) ([]*domain.POI, error) {
	if limit <= 0 {
		limit = defaultPOILimit
	}

	bbox, err := geo.GetBoundingBox(polygon)
	if err != nil {
		return nil, err
	}
	expanded := geo.ExpandBoundingBox(bbox, polygonBufferMeters)

	local, err := uc.poiRepo.FindInBoundingBox(ctx, expanded, categories, limit)
	if err != nil {
		uc.logger.Error("Failed to query local POIs", zap.Error(err))
		return nil, err
	}

	all := local
	if float64(len(local)) < float64(limit)*polygonRemoteFraction {
		uc.logger.Debug("Few local POIs, querying remote source",
			zap.Int("local", len(local)),
			zap.Int("limit", limit))

		remote := uc.fetchRemoteInBoundingBox(ctx, expanded, categories)
		all = mergePOIs(local, remote)
	}

	filtered := filterByPolygon(all, polygon)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// fetchRemoteInBoundingBox - ошибка удалённого источника означает пустой результат
func (uc *POIUseCase) fetchRemoteInBoundingBox(
	ctx context.Context,
	bbox domain.BoundingBox,
	categories []domain.POICategory,
) []*domain.POI {
	if uc.remoteRepo == nil {
		return nil
	}

	remote, err := uc.remoteRepo.FetchInBoundingBox(ctx, bbox, categories)
	if err != nil {
		uc.logger.Warn("Remote POI source failed", zap.Error(err))
		return nil
	}
	uc.saveRemote(ctx, remote)
	return remote
}

func (uc *POIUseCase) saveRemote(ctx context.Context, pois []*domain.POI) {
	if len(pois) == 0 {
		return
	}
	if err := uc.poiRepo.Upsert(ctx, pois); err != nil {
		uc.logger.Warn("Failed to save remote POIs", zap.Int("count", len(pois)), zap.Error(err))
	}
}

// FindInRadius ищет POI в радиусе с кешированием по geohash центра
func (uc *POIUseCase) FindInRadius(
	ctx context.Context,
	center domain.Coordinate,
	radius float64,
	categories []domain.POICategory,
	limit int,
) ([]*domain.POI, error) {
	if radius <= 0 {
		return nil, errors.ErrInvalidRadius
	}
	if limit <= 0 {
		limit = defaultPOILimit
	}
	if uc.cfg.MaxSearchRadius > 0 {
		radius = math.Min(radius, uc.cfg.MaxSearchRadius)
	}

	key := POICacheKey(center, radius, categories)
	if cached := uc.getCached(ctx, key); cached != nil {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	pois, err := uc.poiRepo.FindInRadius(ctx, center, radius, categories, limit)
	if err != nil {
		uc.logger.Error("Failed to query POIs in radius", zap.Error(err))
		return nil, err
	}

	if uc.cfg.RadiusRemoteAugmentation && uc.remoteRepo != nil &&
		float64(len(pois)) < float64(limit)*radiusRemoteFraction {
		remote, err := uc.remoteRepo.FetchInRadius(ctx, center, radius, categories)
		if err != nil {
			uc.logger.Warn("Remote POI source failed", zap.Error(err))
		} else {
			uc.saveRemote(ctx, remote)
			pois = mergePOIs(pois, remote)
			if len(pois) > limit {
				pois = pois[:limit]
			}
		}
	}

	if err := uc.cacheRepo.SetPOIs(ctx, key, pois, uc.cfg.CacheTTL); err != nil {
		uc.logger.Warn("Failed to cache POIs", zap.String("key", key), zap.Error(err))
	}

	return pois, nil
}

func (uc *POIUseCase) getCached(ctx context.Context, key string) []*domain.POI {
	cached, err := uc.cacheRepo.GetPOIs(ctx, key)
	if err != nil {
		uc.logger.Warn("Failed to read POI cache", zap.String("key", key), zap.Error(err))
		return nil
	}
	if cached == nil {
		metrics.CacheMisses.WithLabelValues("poi_radius").Inc()
		return nil
	}

	metrics.CacheHits.WithLabelValues("poi_radius").Inc()
	uc.logger.Debug("Cache hit for POI search", zap.String("key", key))
	return cached
}

// SearchNearby - POI вокруг точки. Нулевые radius и limit заменяются значениями
// по умолчанию, пустой список категорий означает все категории.
func (uc *POIUseCase) SearchNearby(
	ctx context.Context,
	center domain.Coordinate,
	radius float64,
	categories []domain.POICategory,
	limit int,
) ([]*domain.POI, error) {
	if radius <= 0 {
		radius = uc.cfg.DefaultSearchRadius
	}
	if limit <= 0 {
		limit = defaultPOILimit
	}
	return uc.FindInRadius(ctx, center, radius, categories, limit)
}

func (uc *POIUseCase) FindInBoundingBox(
	ctx context.Context,
	bbox domain.BoundingBox,
	categories []domain.POICategory,
	limit int,
) ([]*domain.POI, error) {
	if bbox.MinLat > bbox.MaxLat || bbox.MinLng > bbox.MaxLng {
		return nil, errors.ErrInvalidCoordinates
	}
	if limit <= 0 {
		limit = defaultBBoxLimit
	}
	return uc.poiRepo.FindInBoundingBox(ctx, bbox, categories, limit)
}

func (uc *POIUseCase) GetByID(ctx context.Context, id string) (*domain.POI, error) {
	return uc.poiRepo.GetByID(ctx, id)
}

// Search - поиск по имени; center и radius ограничивают область, если заданы оба
func (uc *POIUseCase) Search(
	ctx context.Context,
	query string,
	center *domain.Coordinate,
	radius float64,
	categories []domain.POICategory,
	limit int,
) ([]*domain.POI, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"field": "q",
		})
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return uc.poiRepo.Search(ctx, query, center, radius, categories, limit)
}

func (uc *POIUseCase) SavePOIs(ctx context.Context, pois []*domain.POI) error {
	return uc.poiRepo.Upsert(ctx, pois)
}

// Categories возвращает группы категорий для интерфейса
func (uc *POIUseCase) Categories() []domain.CategoryGroup {
	return domain.CategoryGroups
}

// POICacheKey - poi:{geohash5}:{радиус, округлённый вверх до км}:{категории через запятую}
func POICacheKey(center domain.Coordinate, radius float64, categories []domain.POICategory) string {
	sorted := categoryStrings(categories)
	sort.Strings(sorted)

	bucket := int64(math.Ceil(radius/1000) * 1000)
	return "poi:" + geo.EncodeGeohash(center, 5) + ":" +
		strconv.FormatInt(bucket, 10) + ":" + strings.Join(sorted, ",")
}

func categoryStrings(categories []domain.POICategory) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = string(c)
	}
	return out
}

// mergePOIs объединяет списки без дублей по source:sourceId, локальные первыми
func mergePOIs(local, remote []*domain.POI) []*domain.POI {
	seen := make(map[string]struct{}, len(local)+len(remote))
	result := make([]*domain.POI, 0, len(local)+len(remote))

	for _, list := range [][]*domain.POI{local, remote} {
		for _, poi := range list {
			key := poi.DedupKey()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, poi)
		}
	}
	return result
}

func filterByPolygon(pois []*domain.POI, polygon []domain.Coordinate) []*domain.POI {
	result := make([]*domain.POI, 0, len(pois))
	for _, poi := range pois {
		if geo.IsPointInPolygon(poi.Coordinates, polygon) {
			result = append(result, poi)
		}
	}
	return result
}
