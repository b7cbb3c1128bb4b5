package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devansh-m12/faceify/internal/api/handlers"
	"github.com/devansh-m12/faceify/internal/metrics"
	"github.com/devansh-m12/faceify/internal/services/convert"
)

func NewServer(converter *convert.Converter, m *metrics.Metrics) *fiber.App {
	app := fiber.New()

	handlers.RegisterHealthRoutes(app)
	handlers.RegisterConvertRoutes(app, converter)
	handlers.RegisterMetricsRoute(app, m)

	return app
}
