package routes

import (
	"github.com/mockmate/interview-coach-server/internal/handler"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Session *handler.SessionHandler
}

func Setup(app *fiber.App, handlers Handlers) {
	app.Get("/health", healthCheck)

	setupSessionRoutes(app, handlers.Session)
}

func healthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "server is running",
	})
}
