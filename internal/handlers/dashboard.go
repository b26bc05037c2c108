package handlers

import (
	"time"

	"pulso/internal/services/metrics"
	"pulso/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	metricsService metrics.Service
}

func NewDashboardHandler(metricsService metrics.Service) *DashboardHandler {
	return &DashboardHandler{metricsService: metricsService}
}

// GetOverview returns the dashboard overview snapshot.
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.metricsService.GetOverview(c.Context(), time.Now())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch dashboard overview")
	}
	return c.JSON(overview)
}

// GetRevenueBreakdown returns fee revenue grouped by method and tier,
// the trailing daily trend and the top earning merchants.
func (h *DashboardHandler) GetRevenueBreakdown(c *fiber.Ctx) error {
	days := c.QueryInt("days", metrics.DefaultTrendDays)
	topN := c.QueryInt("top", metrics.DefaultTopN)

	breakdown, err := h.metricsService.GetRevenueBreakdown(c.Context(), time.Now(), days, topN)
	if err != nil {
		return response.FromError(c, err, "Failed to fetch revenue breakdown")
	}
	return c.JSON(breakdown)
}
