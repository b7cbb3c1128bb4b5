package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devansh-m12/faceify/internal/services/convert"
	"github.com/devansh-m12/faceify/internal/workers"
)

func RegisterConvertRoutes(app *fiber.App, converter *convert.Converter) {
	app.Post("/convert", func(c *fiber.Ctx) error {
		return convertVideo(c, converter)
	})
	app.Post("/convert/async", convertVideoAsync)
}

func convertVideo(c *fiber.Ctx, converter *convert.Converter) error {
	var payload struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if payload.Path == "" {
		return c.Status(400).JSON(fiber.Map{"error": "path is required"})
	}

	result, err := converter.Convert(c.Context(), payload.Path)
	if err != nil {
		return errJson(c, err)
	}
	return c.JSON(result)
}

func convertVideoAsync(c *fiber.Ctx) error {
	var payload struct {
		Path string `json:"path"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
	}
	if payload.Path == "" {
		return c.Status(400).JSON(fiber.Map{"error": "path is required"})
	}

	if !workers.Enqueue(workers.ConvertJob{InputPath: payload.Path}) {
		return c.Status(503).JSON(fiber.Map{"error": "queue full"})
	}
	return c.Status(202).JSON(fiber.Map{"queued": payload.Path})
}

func errJson(c *fiber.Ctx, err error) error {
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
