package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/learning-catalog/internal/usecase/dto"
)

// HealthChecker is implemented by the database and Redis connections
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	version string
	checks  map[string]HealthChecker
}

func NewHealthHandler(version string, checks map[string]HealthChecker) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// Health godoc
// @Summary Health check
// @Description Reports the state of the database and Redis connections
// @Tags System
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:   "healthy",
		Services: make(map[string]string, len(h.checks)),
		Version:  h.version,
	}

	for name, check := range h.checks {
		if err := check.Health(c.Context()); err != nil {
			resp.Services[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "up"
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
