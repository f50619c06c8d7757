package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/utils"
	"github.com/route-engine/internal/pkg/validator"
	"github.com/route-engine/internal/usecase/dto"
)

// POIService - операции с точками интереса, доступные через HTTP
type POIService interface {
	Search(ctx context.Context, query string, center *domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error)
	SearchNearby(ctx context.Context, center domain.Coordinate, radius float64, categories []domain.POICategory, limit int) ([]*domain.POI, error)
	FindInBoundingBox(ctx context.Context, bbox domain.BoundingBox, categories []domain.POICategory, limit int) ([]*domain.POI, error)
	GetByID(ctx context.Context, id string) (*domain.POI, error)
	Categories() []domain.CategoryGroup
}

// POIHandler - обработчик для POI (точки интереса) запросов
type POIHandler struct {
	pois   POIService
	logger *zap.Logger
}

// NewPOIHandler - создание нового POIHandler
func NewPOIHandler(pois POIService, logger *zap.Logger) *POIHandler {
	return &POIHandler{
		pois:   pois,
		logger: logger,
	}
}

func invalidQuery(err error) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"query": err.Error(),
	})
}

// Search godoc
// @Summary Поиск POI по названию
// @Tags POI
// @Produce json
// @Param q query string true "Строка поиска"
// @Param lat query number false "Широта центра"
// @Param lng query number false "Долгота центра"
// @Param radius query number false "Радиус в метрах"
// @Param categories query string false "Категории через запятую"
// @Param limit query int false "Максимум результатов (1-100)"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/poi/search [get]
func (h *POIHandler) Search(c *fiber.Ctx) error {
	var q dto.POISearchQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.SendError(c, invalidQuery(err))
	}
	if err := validator.Validate(&q); err != nil {
		return utils.SendError(c, err)
	}

	pois, err := h.pois.Search(c.UserContext(), q.Query, utils.OptionalCenter(q.Lat, q.Lng), q.Radius,
		utils.ToCategories(q.Categories), q.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois), Limit: q.Limit})
}

// Nearby godoc
// @Summary POI рядом с точкой
// @Description Без radius используется радиус по умолчанию, без categories - все категории.
// @Tags POI
// @Produce json
// @Param lat query number true "Широта"
// @Param lng query number true "Долгота"
// @Param radius query number false "Радиус в метрах"
// @Param categories query string false "Категории через запятую"
// @Param limit query int false "Максимум результатов (1-500)"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/poi/nearby [get]
func (h *POIHandler) Nearby(c *fiber.Ctx) error {
	var q dto.POINearbyQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.SendError(c, invalidQuery(err))
	}
	if err := validator.Validate(&q); err != nil {
		return utils.SendError(c, err)
	}

	center := domain.Coordinate{Latitude: *q.Lat, Longitude: *q.Lng}
	pois, err := h.pois.SearchNearby(c.UserContext(), center, q.Radius, utils.ToCategories(q.Categories), q.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois), Limit: q.Limit})
}

// BoundingBox godoc
// @Summary POI в прямоугольнике
// @Tags POI
// @Produce json
// @Param min_lat query number true "Южная граница"
// @Param min_lng query number true "Западная граница"
// @Param max_lat query number true "Северная граница"
// @Param max_lng query number true "Восточная граница"
// @Param categories query string false "Категории через запятую"
// @Param limit query int false "Максимум результатов (1-1000)"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.POI}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/poi/bbox [get]
func (h *POIHandler) BoundingBox(c *fiber.Ctx) error {
	var q dto.POIBBoxQuery
	if err := c.QueryParser(&q); err != nil {
		return utils.SendError(c, invalidQuery(err))
	}
	if err := validator.Validate(&q); err != nil {
		return utils.SendError(c, err)
	}

	bbox := domain.BoundingBox{MinLat: q.MinLat, MaxLat: q.MaxLat, MinLng: q.MinLng, MaxLng: q.MaxLng}
	pois, err := h.pois.FindInBoundingBox(c.UserContext(), bbox, utils.ToCategories(q.Categories), q.Limit)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, pois, &utils.Meta{Total: len(pois), Limit: q.Limit})
}

// GetByID godoc
// @Summary POI по ID
// @Tags POI
// @Produce json
// @Param id path string true "ID POI"
// @Success 200 {object} utils.SuccessResponse{data=domain.POI}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/poi/{id} [get]
func (h *POIHandler) GetByID(c *fiber.Ctx) error {
	poi, err := h.pois.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, poi, nil)
}

// GetCategories godoc
// @Summary Категории POI, сгруппированные для интерфейса
// @Tags POI
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.CategoryGroup}
// @Router /api/v1/poi/categories [get]
func (h *POIHandler) GetCategories(c *fiber.Ctx) error {
	groups := h.pois.Categories()
	return utils.SendSuccess(c, fiber.Map{
		"groups": groups,
	}, &utils.Meta{
		Total: len(groups),
	})
}
