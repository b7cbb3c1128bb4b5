package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/devansh-m12/faceify/internal/metrics"
)

func RegisterHealthRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func RegisterMetricsRoute(app *fiber.App, m *metrics.Metrics) {
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
}
