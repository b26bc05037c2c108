package handlers

import (
	"strconv"

	"pulso/internal/models"
	"pulso/internal/services/alert"
	"pulso/internal/utils/pagination"
	"pulso/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AlertHandler struct {
	alertService alert.Service
}

func NewAlertHandler(alertService alert.Service) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// List returns the alert page with the unresolved count and the
// per-severity tallies of unresolved alerts.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	req := alert.ListRequest{
		Severity: c.Query("severity"),
		Type:     c.Query("type"),
		Page:     p.Page,
		Limit:    p.Limit,
	}
	if raw := c.Query("isResolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "isResolved must be true or false")
		}
		req.IsResolved = &resolved
	}

	result, err := h.alertService.List(c.Context(), req)
	if err != nil {
		return response.FromError(c, err, "Failed to fetch alerts")
	}
	return c.JSON(result)
}

type alertPatchRequest struct {
	IsRead     *bool `json:"isRead"`
	IsResolved *bool `json:"isResolved"`
}

// Patch flips the mutable alert flags. Read/unread is orthogonal to
// resolution; resolution is terminal.
func (h *AlertHandler) Patch(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "invalid alert id")
	}

	var req alertPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.IsRead == nil && req.IsResolved == nil {
		return response.BadRequest(c, "nothing to update")
	}

	var updated *models.Alert
	if req.IsRead != nil && *req.IsRead {
		updated, err = h.alertService.MarkRead(c.Context(), uint(id))
		if err != nil {
			return response.FromError(c, err, "Failed to update alert")
		}
	}
	if req.IsResolved != nil && *req.IsResolved {
		updated, err = h.alertService.Resolve(c.Context(), uint(id))
		if err != nil {
			return response.FromError(c, err, "Failed to update alert")
		}
	}
	if updated == nil {
		return response.BadRequest(c, "flags can only be set, not cleared")
	}
	return c.JSON(updated)
}

// ListThresholds returns the per-type alert configuration.
func (h *AlertHandler) ListThresholds(c *fiber.Ctx) error {
	thresholds, err := h.alertService.ListThresholds(c.Context())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch alert thresholds")
	}
	return c.JSON(thresholds)
}

// UpdateThreshold edits one alert type's threshold configuration.
func (h *AlertHandler) UpdateThreshold(c *fiber.Ctx) error {
	var req alert.ThresholdUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	threshold, err := h.alertService.UpdateThreshold(c.Context(), c.Params("type"), req)
	if err != nil {
		return response.FromError(c, err, "Failed to update alert threshold")
	}
	return c.JSON(threshold)
}
