package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/pkg/utils"
	"github.com/geoquery-service/internal/pkg/validator"
	"github.com/geoquery-service/internal/usecase"
	"github.com/geoquery-service/internal/usecase/dto"
)

// NearestHandler - обработчик поиска ближайшего узла
type NearestHandler struct {
	nearestUC *usecase.NearestUseCase
	logger    *zap.Logger
}

// NewNearestHandler - создание нового NearestHandler
func NewNearestHandler(nearestUC *usecase.NearestUseCase, logger *zap.Logger) *NearestHandler {
	return &NearestHandler{
		nearestUC: nearestUC,
		logger:    logger,
	}
}

// Nearest godoc
// @Summary Ближайший узел дорожного графа
// @Description Возвращает ближайший к точке узел, через который проходит хотя бы одна дорога
// @Tags Routing
// @Produce json
// @Param lat query number true "Широта"
// @Param lon query number true "Долгота"
// @Success 200 {object} utils.SuccessResponse{data=dto.NearestResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/nearest [get]
func (h *NearestHandler) Nearest(c *fiber.Ctx) error {
	var req dto.NearestRequest
	var err error

	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Lon, err = queryFloat(c, "lon"); err != nil {
		return utils.SendError(c, err)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.nearestUC.Nearest(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
