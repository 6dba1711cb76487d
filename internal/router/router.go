package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/buddybud/buddybud-api/internal/config"
	"github.com/buddybud/buddybud-api/internal/handler"
	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	SubmissionHandler *handler.SubmissionHandler
	InterviewHandler  *handler.InterviewHandler
	ResultsHandler    *handler.ResultsHandler
	AssignmentHandler *handler.AssignmentHandler
	TeacherHandler    *handler.TeacherHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Student flow: code entry issues the flow token, everything after
	// requires it.
	if deps.SubmissionHandler != nil {
		student := api.Group("/student")
		student.Use(middleware.RateLimit("student", 30, time.Minute))
		deps.SubmissionHandler.RegisterEntry(student)

		flow := student.Group("/", middleware.FlowToken())
		deps.SubmissionHandler.Register(flow)

		if deps.InterviewHandler != nil {
			deps.InterviewHandler.Register(flow)
		}
		if deps.ResultsHandler != nil {
			deps.ResultsHandler.Register(flow)
		}
	}

	// Teacher surface: login is open, everything else requires a teacher JWT.
	if deps.AuthHandler != nil {
		auth := api.Group("/teacher/auth")
		auth.Use(middleware.RateLimit("teacher_auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	teacher := api.Group("/teacher", jwtMiddleware, middleware.RequireRole("teacher"))
	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(teacher)
	}
	if deps.TeacherHandler != nil {
		deps.TeacherHandler.Register(teacher)
	}
}
