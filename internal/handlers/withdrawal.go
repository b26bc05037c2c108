package handlers

import (
	"pulso/internal/services/withdrawal"
	"pulso/internal/utils/pagination"
	"pulso/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WithdrawalHandler struct {
	withdrawalService withdrawal.Service
}

func NewWithdrawalHandler(withdrawalService withdrawal.Service) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// List returns the withdrawal page plus the per-status summary of the
// full filtered set.
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	result, err := h.withdrawalService.List(c.Context(), withdrawal.ListRequest{
		Status:     c.Query("status"),
		MerchantID: c.Query("merchantId"),
		Page:       p.Page,
		Limit:      p.Limit,
	})
	if err != nil {
		return response.FromError(c, err, "Failed to fetch withdrawals")
	}
	return c.JSON(result)
}
