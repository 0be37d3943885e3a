package handler

import (
	"quiz-forge/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck godoc
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "healthy"})
}
