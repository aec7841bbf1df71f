package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/pkg/utils"
	"github.com/geoquery-service/internal/pkg/validator"
	"github.com/geoquery-service/internal/usecase"
	"github.com/geoquery-service/internal/usecase/dto"
)

// SearchHandler - обработчик для поисковых запросов
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Autocomplete godoc
// @Summary Автодополнение названий
// @Description Названия локаций, начинающиеся с запроса. Регистр и символы кроме латинских букв и пробелов не учитываются. Самые часто выбираемые локации идут первыми
// @Tags Search
// @Produce json
// @Param q query string true "Префикс названия"
// @Param limit query int false "Максимальное количество результатов"
// @Success 200 {object} utils.SuccessResponse{data=dto.AutocompleteResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/search/autocomplete [get]
func (h *SearchHandler) Autocomplete(c *fiber.Ctx) error {
	req := dto.AutocompleteRequest{
		Query: c.Query("q"),
		Limit: c.QueryInt("limit", 0),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.Autocomplete(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: req.Limit,
	})
}

// Locations godoc
// @Summary Локации по названию
// @Description Все локации с тем же названием без учета регистра и пунктуации. Запрос учитывается как выбор локации и поднимает ее в автодополнении
// @Tags Search
// @Produce json
// @Param name query string true "Название"
// @Success 200 {object} utils.SuccessResponse{data=dto.LocationsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/search/locations [get]
func (h *SearchHandler) Locations(c *fiber.Ctx) error {
	req := dto.LocationsRequest{Name: c.Query("name")}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.Locations(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
