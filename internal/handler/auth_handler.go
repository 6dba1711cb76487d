package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/dto"
	"github.com/buddybud/buddybud-api/internal/service"
	"github.com/buddybud/buddybud-api/internal/utils"
)

// AuthHandler wires the teacher login route.
type AuthHandler struct {
	service   service.AuthService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, validator *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth endpoints to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	token, err := h.service.Login(c.Context(), payload.Username, payload.Password)
	if err != nil {
		status, message, expected := statusForError(err)
		if !expected {
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		}
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "login successful", token)
}
