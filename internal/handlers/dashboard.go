package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/types"
	"github.com/localnerve/shopfloor/internal/utils"
	"gorm.io/gorm"
)

// DashboardHandler handles the dashboard route
type DashboardHandler struct {
	DB *gorm.DB
	// Aggregate computes real counters from orders instead of zeros
	Aggregate bool
}

// Handle handles /api/dashboard
// @Summary Dashboard counters
// @Description Order counters for the dashboard
// @Tags Dashboard
// @Produce json
// @Param X-Auth-Token header string true "Session token"
// @Success 200 {object} services.DashboardStats
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 405 {object} utils.ErrorResponseStruct
// @Router /dashboard [get]
func (h *DashboardHandler) Handle(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodGet {
		return types.MethodNotAllowed()
	}

	stats, err := services.GetDashboardStats(c.UserContext(), h.DB, h.Aggregate)
	if err != nil {
		return types.Internal(err)
	}
	return utils.SuccessResponse(c, stats, fiber.StatusOK)
}
