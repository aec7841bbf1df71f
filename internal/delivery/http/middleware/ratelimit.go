package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/pkg/utils"
)

// RateLimit - общий для всех клиентов token bucket: perSecond запросов в
// секунду с запасом burst
func RateLimit(perSecond float64, burst int) fiber.Handler {
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(c *fiber.Ctx) error {
		if !limiter.Allow() {
			return utils.SendError(c, errors.ErrTooManyRequests)
		}
		return c.Next()
	}
}
