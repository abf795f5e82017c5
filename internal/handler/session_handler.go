package handler

import (
	"errors"

	"github.com/mockmate/interview-coach-server/internal/domain"
	"github.com/mockmate/interview-coach-server/internal/service"
	"github.com/mockmate/interview-coach-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct {
	sessionService domain.SessionService
}

func NewSessionHandler(sessionService domain.SessionService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
	}
}

func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req domain.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateStartSessionRequest(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.sessionService.StartSession(c.UserContext(), &req)
	if err != nil {
		return response.InternalError(c, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req domain.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := validateAnswerRequest(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.sessionService.SubmitAnswer(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return response.NotFound(c, "session not found")
		}
		if errors.Is(err, service.ErrSessionCompleted) {
			return response.BadRequest(c, "session already completed")
		}
		if errors.Is(err, service.ErrQuestionMismatch) {
			return response.BadRequest(c, "question does not match the session state")
		}
		return response.InternalError(c, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SessionHandler) GetSummary(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	summary, err := h.sessionService.GetSummary(c.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return response.NotFound(c, "session not found")
		}
		return response.InternalError(c, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}

func (h *SessionHandler) ExportSummaryPDF(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")

	pdf, err := h.sessionService.ExportSummaryPDF(c.UserContext(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return response.NotFound(c, "session not found")
		}
		return response.InternalError(c, err.Error())
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="interview-summary.pdf"`)
	return c.Status(fiber.StatusOK).Send(pdf)
}

func validateStartSessionRequest(req *domain.StartSessionRequest) error {
	validate := validator.New()
	return validate.Struct(req)
}

func validateAnswerRequest(req *domain.AnswerRequest) error {
	validate := validator.New()
	return validate.Struct(req)
}
