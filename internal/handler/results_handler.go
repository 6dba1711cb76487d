package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/service"
	"github.com/buddybud/buddybud-api/internal/utils"
)

// ResultsHandler wires the final results endpoint of the student flow.
type ResultsHandler struct {
	service service.ResultsService
	logger  zerolog.Logger
}

// NewResultsHandler constructs the handler.
func NewResultsHandler(service service.ResultsService, logger zerolog.Logger) *ResultsHandler {
	return &ResultsHandler{
		service: service,
		logger:  logger.With().Str("component", "results_handler").Logger(),
	}
}

// Register attaches the flow-scoped results endpoint.
func (h *ResultsHandler) Register(router fiber.Router) {
	router.Get("/results", h.results)
}

func (h *ResultsHandler) results(c *fiber.Ctx) error {
	results, err := h.service.FinalResults(c.Context(), middleware.GetFlowToken(c))
	if err != nil {
		status, message, expected := statusForError(err)
		if !expected {
			requestLogger(h.logger, c).Error().Err(err).Msg("results retrieval failed")
		}
		return utils.SendError(c, status, message)
	}

	return utils.SendSuccess(c, "results retrieved", results)
}
