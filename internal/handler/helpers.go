package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/service"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	raw := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}

	return uint(parsed), nil
}

func formInt(c *fiber.Ctx, key string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(c.FormValue(key)))
	if err != nil {
		return 0
	}
	return parsed
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// statusForError maps service sentinels to HTTP status codes. Anything not
// recognised is reported as an internal error with a generic message.
func statusForError(err error) (int, string, bool) {
	switch {
	case isValidationError(err):
		return fiber.StatusBadRequest, err.Error(), true
	case errors.Is(err, service.ErrAssignmentNotFound):
		return fiber.StatusNotFound, service.ErrAssignmentNotFound.Error(), true
	case errors.Is(err, service.ErrAssignmentInactive):
		return fiber.StatusGone, service.ErrAssignmentInactive.Error(), true
	case errors.Is(err, service.ErrSubmissionNotFound):
		return fiber.StatusNotFound, service.ErrSubmissionNotFound.Error(), true
	case errors.Is(err, service.ErrInterviewNotFound):
		return fiber.StatusNotFound, service.ErrInterviewNotFound.Error(), true
	case errors.Is(err, service.ErrStudyPlanNotFound):
		return fiber.StatusNotFound, service.ErrStudyPlanNotFound.Error(), true
	case errors.Is(err, service.ErrFlowSessionNotFound):
		return fiber.StatusUnauthorized, service.ErrFlowSessionNotFound.Error(), true
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, service.ErrInvalidCredentials.Error(), true
	case errors.Is(err, service.ErrInterviewNotReady):
		return fiber.StatusConflict, err.Error(), true
	case errors.Is(err, service.ErrRecordingMissing):
		return fiber.StatusConflict, service.ErrRecordingMissing.Error(), true
	case errors.Is(err, service.ErrAnswerRequired):
		return fiber.StatusBadRequest, err.Error(), true
	case errors.Is(err, service.ErrInvalidRecording),
		errors.Is(err, service.ErrInvalidFileType),
		errors.Is(err, service.ErrFileTooLarge):
		return fiber.StatusUnprocessableEntity, err.Error(), true
	case errors.Is(err, service.ErrAIUnavailable):
		return fiber.StatusServiceUnavailable, service.ErrAIUnavailable.Error(), true
	default:
		return fiber.StatusInternalServerError, "internal server error", false
	}
}
