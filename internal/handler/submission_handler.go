package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/service"
	"github.com/buddybud/buddybud-api/internal/utils"
)

// SubmissionHandler wires the written half of the student flow.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// RegisterEntry attaches the code-entry endpoint, which runs before any flow
// token exists.
func (h *SubmissionHandler) RegisterEntry(router fiber.Router) {
	router.Post("/assignments/code", h.enterCode)
}

// Register attaches the flow-scoped submission endpoints.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Post("/submissions", h.create)
	router.Post("/submissions/analyze", h.analyze)
	router.Get("/submissions/feedback", h.feedback)
}

func (h *SubmissionHandler) enterCode(c *fiber.Ctx) error {
	var payload dto.CodeEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	flow, err := h.service.EnterCode(c.Context(), payload)
	if err != nil {
		return h.respondError(c, err, "code entry failed")
	}

	return utils.SendSuccess(c, "assignment found", flow)
}

func (h *SubmissionHandler) create(c *fiber.Ctx) error {
	payload := dto.SubmissionCreateRequest{
		StudentName: c.FormValue("student_name"),
		AnswerText:  c.FormValue("answer_text"),
	}

	answerFile, err := c.FormFile("answer_file")
	if err != nil {
		answerFile = nil
	}

	submission, err := h.service.Create(c.Context(), middleware.GetFlowToken(c), payload, answerFile)
	if err != nil {
		return h.respondError(c, err, "submission creation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission received", submission)
}

func (h *SubmissionHandler) analyze(c *fiber.Ctx) error {
	feedback, err := h.service.AnalyzeWritten(c.Context(), middleware.GetFlowToken(c))
	if err != nil {
		return h.respondError(c, err, "written analysis failed")
	}

	return utils.SendSuccess(c, "analysis complete", feedback)
}

func (h *SubmissionHandler) feedback(c *fiber.Ctx) error {
	feedback, err := h.service.GetFeedback(c.Context(), middleware.GetFlowToken(c))
	if err != nil {
		return h.respondError(c, err, "feedback retrieval failed")
	}

	return utils.SendSuccess(c, "feedback retrieved", feedback)
}

func (h *SubmissionHandler) respondError(c *fiber.Ctx, err error, context string) error {
	status, message, expected := statusForError(err)
	if !expected {
		requestLogger(h.logger, c).Error().Err(err).Msg(context)
	}
	return utils.SendError(c, status, message)
}
