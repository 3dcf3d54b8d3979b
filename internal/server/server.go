// Package server assembles the Fiber applications the service listens with.
package server

import (
	"time"

	"productapi/internal/database"
	"productapi/internal/handlers"
	"productapi/internal/metrics"
	"productapi/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewApp builds the public product API.
func NewApp(productHandler *handlers.ProductHandler, logger zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "productapi",
		DisableStartupMessage: true,
		Immutable:             true, // request values are stored past the handler
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(logger))

	productHandler.RegisterRoutes(app)
	return app
}

// NewAdminApp builds the operational app serving /health and /metrics.
func NewAdminApp(storage database.Pinger, storageName string, m *metrics.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "productapi-admin",
		DisableStartupMessage: true,
		Immutable:             true,
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		status, code, storageStatus := "healthy", fiber.StatusOK, "connected"
		if err := storage.Ping(c.UserContext()); err != nil {
			status, code, storageStatus = "unhealthy", fiber.StatusServiceUnavailable, err.Error()
		}
		return c.Status(code).JSON(fiber.Map{
			"status":  status,
			"time":    time.Now().Format(time.RFC3339),
			"storage": fiber.Map{"driver": storageName, "status": storageStatus},
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))

	return app
}
