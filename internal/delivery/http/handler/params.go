package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/geoquery-service/internal/pkg/errors"
)

// queryFloat - обязательный числовой query-параметр
func queryFloat(c *fiber.Ctx, key string) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "required"})
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: "number"})
	}
	return v, nil
}
