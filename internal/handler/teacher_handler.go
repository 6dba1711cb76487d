package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/service"
	"github.com/buddybud/buddybud-api/internal/utils"
)

// TeacherHandler wires the teacher review surface: dashboard, class results,
// and per-student reports.
type TeacherHandler struct {
	service service.TeacherService
	logger  zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(service service.TeacherService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches review endpoints to the teacher router group.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboard)
	router.Get("/assignments/:id/results", h.assignmentResults)
	router.Get("/submissions/:id/report", h.studentReport)
}

func (h *TeacherHandler) dashboard(c *fiber.Ctx) error {
	teacherID, ok := middleware.TeacherID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	dashboard, err := h.service.Dashboard(c.Context(), teacherID)
	if err != nil {
		return h.respondError(c, err, "dashboard retrieval failed")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *TeacherHandler) assignmentResults(c *fiber.Ctx) error {
	teacherID, ok := middleware.TeacherID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	results, err := h.service.AssignmentResults(c.Context(), teacherID, id)
	if err != nil {
		return h.respondError(c, err, "assignment results retrieval failed")
	}

	return utils.SendSuccess(c, "assignment results retrieved", results)
}

func (h *TeacherHandler) studentReport(c *fiber.Ctx) error {
	teacherID, ok := middleware.TeacherID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	report, err := h.service.StudentReport(c.Context(), teacherID, id)
	if err != nil {
		return h.respondError(c, err, "student report retrieval failed")
	}

	return utils.SendSuccess(c, "student report retrieved", report)
}

func (h *TeacherHandler) respondError(c *fiber.Ctx, err error, context string) error {
	status, message, expected := statusForError(err)
	if !expected {
		requestLogger(h.logger, c).Error().Err(err).Msg(context)
	}
	return utils.SendError(c, status, message)
}
