// Package main is the entry point for the analytics API.
// It initializes the databases, sets up the HTTP server and starts the
// alert evaluation scheduler.
package main

import (
	"context"
	"log"
	"time"

	"pulso/internal/config"
	"pulso/internal/repositories"
	"pulso/internal/routes"
	"pulso/internal/services/alert"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Initialize databases (PostgreSQL + Redis)
	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("✅ Successfully connected to database with connection pooling")

	// Seed the per-type alert thresholds if missing
	thresholdRepo := repositories.NewThresholdRepository(repositories.DB)
	if err := thresholdRepo.SeedDefaults(context.Background()); err != nil {
		log.Printf("⚠️ Failed to seed alert thresholds: %v", err)
	}

	// Clear stale snapshots on startup
	if repositories.CacheService != nil {
		if err := repositories.CacheService.FlushAll(context.Background()); err != nil {
			log.Printf("⚠️ Failed to flush Redis cache: %v", err)
		} else {
			log.Println("✅ Redis cache flushed on startup")
		}
	}

	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("⚠️ Failed to close database connection: %v", err)
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("⚠️ Failed to close Redis connection: %v", err)
			}
		}
	}()

	// Create Fiber app
	app := fiber.New()

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:3000"),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// The dashboard polls; keep an abusive client from hammering the
	// aggregation queries.
	app.Use("/api", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("RATE_LIMIT", 120),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(429).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))

	// Routes
	alertService := routes.SetupRoutes(app, repositories.DB)

	// Single-writer alert evaluation scheduler. One ticker per process
	// keeps concurrent cycles from racing on the same metric; the
	// partial unique index on active alerts is the backstop.
	go runAlertScheduler(alertService)

	// Start server
	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

func runAlertScheduler(alertService alert.Service) {
	interval := config.GetDurationEnv("ALERT_EVAL_INTERVAL", time.Minute)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		created, err := alertService.Evaluate(context.Background(), time.Now(), alert.Signals{})
		if err != nil {
			log.Printf("⚠️ Alert evaluation failed: %v", err)
			continue
		}
		if len(created) > 0 {
			log.Printf("Alert evaluation created %d alert(s)", len(created))
		}
	}
}
