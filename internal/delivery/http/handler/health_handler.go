package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/geoquery-service/internal/domain"
)

// MapStats - источник статистики загруженного графа
type MapStats interface {
	Stats() domain.Statistics
}

// HealthHandler - проверка готовности сервиса
type HealthHandler struct {
	streetMap MapStats
}

// NewHealthHandler - создание нового HealthHandler
func NewHealthHandler(streetMap MapStats) *HealthHandler {
	return &HealthHandler{streetMap: streetMap}
}

// Health godoc
// @Summary Health check
// @Description Сервис готов, когда в графе есть хотя бы один узел для маршрутизации
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	stats := h.streetMap.Stats()

	status, code := "healthy", fiber.StatusOK
	if stats.RoutableNodes == 0 {
		status, code = "empty", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":         status,
		"time":           time.Now(),
		"source":         stats.Source,
		"routable_nodes": stats.RoutableNodes,
		"loaded_at":      stats.LoadedAt,
	})
}
