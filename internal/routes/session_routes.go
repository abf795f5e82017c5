package routes

import (
	"github.com/mockmate/interview-coach-server/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func setupSessionRoutes(app *fiber.App, h *handler.SessionHandler) {
	app.Post("/start_session", h.StartSession)
	app.Post("/answer", h.SubmitAnswer)
	app.Get("/summary/:session_id", h.GetSummary)
	app.Get("/summary/:session_id/pdf", h.ExportSummaryPDF)
}
