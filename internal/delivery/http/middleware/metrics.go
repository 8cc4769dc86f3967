package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/pkg/metrics"
)

// Metrics records request counts and durations per route pattern
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		return err
	}
}
