package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/route-engine/internal/domain"
	"github.com/route-engine/internal/pkg/errors"
	"github.com/route-engine/internal/pkg/utils"
	"github.com/route-engine/internal/usecase/dto"
)

// RouteService - операции с маршрутами, доступные через HTTP
type RouteService interface {
	CreateRoute(ctx context.Context, req dto.CreateRouteRequest) (*dto.CreateRouteResponse, error)
	GetRouteByID(ctx context.Context, id string) (*domain.GeneratedRoute, error)
	GetRouteGeoJSON(ctx context.Context, id string) (*geojson.Feature, error)
	GetAlternatives(ctx context.Context, req dto.AlternativesRequest) ([]dto.RouteSummary, error)
	Matrix(ctx context.Context, req dto.MatrixRequest) (*dto.MatrixResponse, error)
	SnapToRoad(ctx context.Context, req dto.SnapRequest) (*dto.SnapResponse, error)
	BackendStatus() map[string]domain.BackendStatus
}

// RouteHandler - обработчик запросов генерации и получения маршрутов
type RouteHandler struct {
	routes RouteService
	logger *zap.Logger
}

func NewRouteHandler(routes RouteService, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routes: routes,
		logger: logger,
	}
}

func invalidBody(err error) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"body": err.Error(),
	})
}

// CreateRoute godoc
// @Summary Генерация маршрута
// @Description Строит маршрут между двумя точками с заездами к интересным местам вдоль пути. adventure_level=0 возвращает кратчайший маршрут.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.CreateRouteRequest true "Точки и настройки маршрута"
// @Success 201 {object} utils.SuccessResponse{data=dto.CreateRouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/routes [post]
func (h *RouteHandler) CreateRoute(c *fiber.Ctx) error {
	var req dto.CreateRouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	resp, err := h.routes.CreateRoute(c.UserContext(), req)
	if err != nil {
		h.logger.Warn("Route generation failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, resp)
}

// GetRoute godoc
// @Summary Маршрут по ID
// @Tags Routes
// @Produce json
// @Param id path string true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=domain.GeneratedRoute}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id} [get]
func (h *RouteHandler) GetRoute(c *fiber.Ctx) error {
	route, err := h.routes.GetRouteByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, route, nil)
}

// GetRouteGeoJSON godoc
// @Summary Геометрия маршрута в GeoJSON
// @Tags Routes
// @Produce json
// @Param id path string true "ID маршрута"
// @Success 200 {object} object "GeoJSON Feature"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/{id}/geojson [get]
func (h *RouteHandler) GetRouteGeoJSON(c *fiber.Ctx) error {
	feature, err := h.routes.GetRouteGeoJSON(c.UserContext(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	body, err := feature.MarshalJSON()
	if err != nil {
		return utils.SendError(c, errors.Wrap(errors.ErrInternalServer, err))
	}
	c.Set(fiber.HeaderContentType, "application/geo+json")
	return c.Send(body)
}

// GetAlternatives godoc
// @Summary Альтернативные маршруты
// @Description Варианты маршрута от бэкенда; при нехватке добавляются живописные объезды.
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body dto.AlternativesRequest true "Точки и режим"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.RouteSummary}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routes/alternatives [post]
func (h *RouteHandler) GetAlternatives(c *fiber.Ctx) error {
	var req dto.AlternativesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	summaries, err := h.routes.GetAlternatives(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, summaries, &utils.Meta{Total: len(summaries)})
}

// Matrix godoc
// @Summary Матрица расстояний и времени
// @Description Недостижимые пары возвращаются как null.
// @Tags Routing
// @Accept json
// @Produce json
// @Param request body dto.MatrixRequest true "Источники и цели"
// @Success 200 {object} utils.SuccessResponse{data=dto.MatrixResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/routing/matrix [post]
func (h *RouteHandler) Matrix(c *fiber.Ctx) error {
	var req dto.MatrixRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	matrix, err := h.routes.Matrix(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, matrix, nil)
}

// SnapToRoad godoc
// @Summary Привязка точки к дороге
// @Tags Routing
// @Accept json
// @Produce json
// @Param request body dto.SnapRequest true "Точка"
// @Success 200 {object} utils.SuccessResponse{data=dto.SnapResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/routing/snap [post]
func (h *RouteHandler) SnapToRoad(c *fiber.Ctx) error {
	var req dto.SnapRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	resp, err := h.routes.SnapToRoad(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, resp, nil)
}
