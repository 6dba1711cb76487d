package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/service"
	"github.com/buddybud/buddybud-api/internal/utils"
)

// AssignmentHandler wires the teacher assignment routes.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the teacher router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("/assignments", h.list)
	router.Post("/assignments", h.create)
	router.Patch("/assignments/:id/status", h.updateStatus)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	teacherID, ok := middleware.TeacherID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	assignments, err := h.service.ListByTeacher(c.Context(), teacherID)
	if err != nil {
		return h.respondError(c, err, "assignment listing failed")
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) create(c *fiber.Ctx) error {
	teacherID, ok := middleware.TeacherID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	payload := dto.AssignmentCreateRequest{
		Title:        c.FormValue("title"),
		Subject:      c.FormValue("subject"),
		Level:        c.FormValue("level"),
		ClassName:    c.FormValue("class_name"),
		DueDate:      c.FormValue("due_date"),
		TotalMarks:   formInt(c, "total_marks"),
		NumQuestions: formInt(c, "num_questions"),
		Instructions: c.FormValue("instructions"),
	}

	attachments := collectAttachments(c)

	assignment, err := h.service.Create(c.Context(), teacherID, payload, attachments)
	if err != nil {
		return h.respondError(c, err, "assignment creation failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *AssignmentHandler) updateStatus(c *fiber.Ctx) error {
	teacherID, ok := middleware.TeacherID(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentStatusUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Status != "active" && payload.Status != "inactive" {
		return utils.SendError(c, fiber.StatusBadRequest, "status must be active or inactive")
	}

	assignment, err := h.service.UpdateStatus(c.Context(), teacherID, id, payload.Status)
	if err != nil {
		return h.respondError(c, err, "assignment status update failed")
	}

	return utils.SendSuccess(c, "assignment updated", assignment)
}

// collectAttachments pulls the typed attachment files from the multipart form.
// Each known attachment type maps to one optional form field.
func collectAttachments(c *fiber.Ctx) []service.AttachmentUpload {
	fields := map[string]string{
		"questions_file":     "questions",
		"mark_scheme_file":   "mark_scheme",
		"model_answers_file": "model_answers",
		"textbook_file":      "textbook",
	}

	var uploads []service.AttachmentUpload
	for field, fileType := range fields {
		file, err := c.FormFile(field)
		if err != nil || file == nil {
			continue
		}
		uploads = append(uploads, service.AttachmentUpload{FileType: fileType, File: file})
	}

	return uploads
}

func (h *AssignmentHandler) respondError(c *fiber.Ctx, err error, context string) error {
	status, message, expected := statusForError(err)
	if !expected {
		requestLogger(h.logger, c).Error().Err(err).Msg(context)
	}
	return utils.SendError(c, status, message)
}
