package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/buddybud/buddybud-api/internal/utils"
)

// FlowTokenHeader carries the student flow session token issued at code entry.
const FlowTokenHeader = "X-Flow-Token"

// FlowToken requires a flow session token on every student-flow request past
// code entry and binds it to the request. Token validity is checked by the
// session store when a handler resolves it.
func FlowToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := strings.TrimSpace(c.Get(FlowTokenHeader))
		if token == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "flow token missing")
		}

		c.Locals("flow_token", token)

		return c.Next()
	}
}

// GetFlowToken returns the flow token bound to the active request.
func GetFlowToken(c *fiber.Ctx) string {
	if value := c.Locals("flow_token"); value != nil {
		if token, ok := value.(string); ok {
			return token
		}
	}
	return ""
}
