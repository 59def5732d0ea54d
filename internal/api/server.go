package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber app with middleware, /health and all routes.
func NewApp(h *Handler, version string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "recruiter-service",
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(healthcheck.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "recruiter-service",
			"version": version,
		})
	})

	h.RegisterRoutes(app)
	return app
}
