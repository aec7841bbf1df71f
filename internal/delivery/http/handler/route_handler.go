package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/pkg/utils"
	"github.com/geoquery-service/internal/pkg/validator"
	"github.com/geoquery-service/internal/usecase"
	"github.com/geoquery-service/internal/usecase/dto"
)

// RouteHandler - обработчик поиска маршрутов
type RouteHandler struct {
	routeUC *usecase.RouteUseCase
	logger  *zap.Logger
}

// NewRouteHandler - создание нового RouteHandler
func NewRouteHandler(routeUC *usecase.RouteUseCase, logger *zap.Logger) *RouteHandler {
	return &RouteHandler{
		routeUC: routeUC,
		logger:  logger,
	}
}

// Route godoc
// @Summary Кратчайший маршрут
// @Description Привязывает обе точки к ближайшим узлам и ищет кратчайший путь (A*) с ограничением по времени. Исходы UNSOLVABLE и TIMEOUT возвращаются со статусом 200
// @Tags Routing
// @Accept json
// @Produce json
// @Param request body dto.RouteRequest true "Начальная и конечная точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.RouteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/route [post]
func (h *RouteHandler) Route(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("Invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.routeUC.Route(c.Context(), req)
	if err != nil {
		h.logger.Error("Failed to build route", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Cached:   result.Cached,
		TimeMSec: result.ElapsedMs,
	})
}
