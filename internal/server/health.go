package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopfloor/internal/config"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/storage"
	"gorm.io/gorm"
)

// healthHandler handles GET /health
// @Summary Service health
// @Description Database and storage reachability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func healthHandler(cfg *config.Config, db *gorm.DB, store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result := services.HealthCheck(c.UserContext(), cfg, db, store)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	}
}
