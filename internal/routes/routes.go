// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and groups the routes
// the dashboard polls.
package routes

import (
	"pulso/internal/handlers"
	"pulso/internal/repositories"
	"pulso/internal/services/alert"
	"pulso/internal/services/metrics"
	"pulso/internal/services/transaction"
	"pulso/internal/services/withdrawal"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes and returns the alert
// service so the evaluation scheduler in main can drive it.
func SetupRoutes(app *fiber.App, db *gorm.DB) alert.Service {
	// Initialize repositories
	transactionRepo := repositories.NewTransactionRepository(db)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	alertRepo := repositories.NewAlertRepository(db)
	thresholdRepo := repositories.NewThresholdRepository(db)

	// Initialize services
	metricsService := metrics.NewService(
		transactionRepo,
		withdrawalRepo,
		merchantRepo,
		alertRepo,
		repositories.CacheService,
	)
	transactionService := transaction.NewService(transactionRepo)
	withdrawalService := withdrawal.NewService(withdrawalRepo)
	alertService := alert.NewService(alertRepo, thresholdRepo, transactionRepo)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(metricsService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, metricsService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	alertHandler := handlers.NewAlertHandler(alertService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Pulso analytics API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")
	api.Get("/health", handlers.HealthCheck)

	api.Get("/dashboard/overview", dashboardHandler.GetOverview)
	api.Get("/revenue/breakdown", dashboardHandler.GetRevenueBreakdown)

	api.Get("/transactions", transactionHandler.List)
	api.Get("/transactions/stats", transactionHandler.GetStats)

	api.Get("/withdrawals", withdrawalHandler.List)

	api.Get("/alerts", alertHandler.List)
	api.Patch("/alerts/:id", alertHandler.Patch)
	api.Get("/alert-thresholds", alertHandler.ListThresholds)
	api.Put("/alert-thresholds/:type", alertHandler.UpdateThreshold)

	return alertService
}
