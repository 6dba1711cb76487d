package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/service"
	"github.com/buddybud/buddybud-api/internal/utils"
)

// InterviewHandler wires the verbal half of the student flow.
type InterviewHandler struct {
	service service.InterviewService
	logger  zerolog.Logger
}

// NewInterviewHandler constructs the handler.
func NewInterviewHandler(service service.InterviewService, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		service: service,
		logger:  logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register attaches the flow-scoped interview endpoints.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("/interview/prepare", h.prepare)
	router.Get("/interview", h.get)
	router.Post("/interview/recording", h.saveRecording)
	router.Post("/interview/complete", h.complete)
}

func (h *InterviewHandler) prepare(c *fiber.Ctx) error {
	session, err := h.service.Prepare(c.Context(), middleware.GetFlowToken(c))
	if err != nil {
		return h.respondError(c, err, "interview preparation failed")
	}

	return utils.SendSuccess(c, "interview ready", session)
}

func (h *InterviewHandler) get(c *fiber.Ctx) error {
	session, err := h.service.GetSession(c.Context(), middleware.GetFlowToken(c))
	if err != nil {
		return h.respondError(c, err, "interview retrieval failed")
	}

	return utils.SendSuccess(c, "interview retrieved", session)
}

func (h *InterviewHandler) saveRecording(c *fiber.Ctx) error {
	file, err := c.FormFile("recording")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "recording file is required")
	}

	url, err := h.service.SaveRecording(c.Context(), middleware.GetFlowToken(c), file)
	if err != nil {
		return h.respondError(c, err, "recording storage failed")
	}

	return utils.SendSuccess(c, "recording stored", fiber.Map{"recording_url": url})
}

func (h *InterviewHandler) complete(c *fiber.Ctx) error {
	result, err := h.service.Complete(c.Context(), middleware.GetFlowToken(c))
	if err != nil {
		return h.respondError(c, err, "interview completion failed")
	}

	return utils.SendSuccess(c, "interview scored", result)
}

func (h *InterviewHandler) respondError(c *fiber.Ctx, err error, context string) error {
	status, message, expected := statusForError(err)
	if !expected {
		requestLogger(h.logger, c).Error().Err(err).Msg(context)
	}
	return utils.SendError(c, status, message)
}
