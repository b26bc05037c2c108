package handlers

import (
	"time"

	"pulso/internal/services/metrics"
	"pulso/internal/services/transaction"
	"pulso/internal/utils/pagination"
	"pulso/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
	metricsService     metrics.Service
}

func NewTransactionHandler(transactionService transaction.Service, metricsService metrics.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		metricsService:     metricsService,
	}
}

// List returns the filtered, paginated transaction listing, newest first.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	result, err := h.transactionService.List(c.Context(), transaction.ListRequest{
		Status:        c.Query("status"),
		PaymentMethod: c.Query("paymentMethod"),
		MerchantID:    c.Query("merchantId"),
		StartDate:     c.Query("startDate"),
		EndDate:       c.Query("endDate"),
		MinAmount:     c.Query("minAmount"),
		MaxAmount:     c.Query("maxAmount"),
		Page:          p.Page,
		Limit:         p.Limit,
	})
	if err != nil {
		return response.FromError(c, err, "Failed to fetch transactions")
	}
	return c.JSON(result)
}

// GetStats returns the per-period transaction report.
func (h *TransactionHandler) GetStats(c *fiber.Ctx) error {
	period := c.Query("period", metrics.PeriodDay)

	stats, err := h.metricsService.GetTransactionStats(c.Context(), period, time.Now())
	if err != nil {
		return response.FromError(c, err, "Failed to fetch transaction stats")
	}
	return c.JSON(stats)
}
