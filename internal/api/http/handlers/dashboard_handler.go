package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/college-records/internal/service"
)

// DashboardHandler exposes admin dashboard aggregates.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboardService}
}

// Stats GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Health GET /dashboard/health.
func (h *DashboardHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.dashboard.Health(c.Context()))
}
