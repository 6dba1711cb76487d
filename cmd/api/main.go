package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/buddybud/buddybud-api/internal/config"
	"github.com/buddybud/buddybud-api/internal/database"
	"github.com/buddybud/buddybud-api/internal/handler"
	"github.com/buddybud/buddybud-api/internal/middleware"
	"github.com/buddybud/buddybud-api/internal/models"
	"github.com/buddybud/buddybud-api/internal/repository"
	"github.com/buddybud/buddybud-api/internal/router"
	"github.com/buddybud/buddybud-api/internal/service"
	"github.com/buddybud/buddybud-api/pkg/ai"
	cloud "github.com/buddybud/buddybud-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// NATS is optional: without a broker configured, lifecycle events are
	// dropped.
	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, submission events disabled")
			natsConn = nil
		} else {
			defer natsConn.Close()
		}
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	// Without an API key the gateway stays nil and analysis endpoints report
	// unavailability instead of failing at startup.
	var gateway ai.Gateway
	var transcriber ai.Transcriber
	if cfg.AIEnabled() {
		openAI, err := ai.NewOpenAIGateway(ai.OpenAIConfig{
			APIKey:         cfg.OpenAIAPIKey,
			Model:          cfg.OpenAIModel,
			MaxTokens:      cfg.AIMaxTokens,
			RequestTimeout: cfg.AIRequestTimeout,
			Logger:         logger,
		})
		if err != nil {
			log.Fatalf("failed to create ai gateway: %v", err)
		}
		gateway = openAI
		transcriber = openAI
	} else {
		logger.Warn().Msg("openai api key not configured, grading disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	teacherRepo := repository.NewTeacherRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	studyPlanRepo := repository.NewStudyPlanRepository(db)

	defaultTeacher := models.Teacher{
		Username: cfg.TeacherUsername,
		Name:     cfg.TeacherName,
		Email:    cfg.TeacherEmail,
	}
	if err := teacherRepo.EnsureDefault(context.Background(), &defaultTeacher); err != nil {
		log.Fatalf("failed to provision teacher account: %v", err)
	}

	sessions := service.NewFlowSessionStore(redisClient, cfg.FlowSessionTTL, logger)
	events := service.NewEventPublisher(natsConn, "buddybud.submissions", logger)
	fetcher := service.NewHTTPRecordingFetcher(cfg.AIRequestTimeout)

	authService := service.NewAuthService(teacherRepo, service.AuthConfig{
		Username: cfg.TeacherUsername,
		Password: cfg.TeacherPassword,
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
	}, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, uploader, logger)
	submissionService := service.NewSubmissionService(assignmentService, submissionRepo, sessions, gateway, uploader, events, validate, logger)
	interviewService := service.NewInterviewService(submissionService, submissionRepo, interviewRepo, studyPlanRepo, gateway, transcriber, uploader, fetcher, events, logger)
	resultsService := service.NewResultsService(submissionService, submissionRepo, interviewRepo, studyPlanRepo, logger)
	teacherService := service.NewTeacherService(assignmentRepo, submissionRepo, interviewRepo, redisClient, cfg.DashboardCacheTTL, logger)

	authHandler := handler.NewAuthHandler(authService, validate, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, logger)
	interviewHandler := handler.NewInterviewHandler(interviewService, logger)
	resultsHandler := handler.NewResultsHandler(resultsService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	teacherHandler := handler.NewTeacherHandler(teacherService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    110 * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		SubmissionHandler: submissionHandler,
		InterviewHandler:  interviewHandler,
		ResultsHandler:    resultsHandler,
		AssignmentHandler: assignmentHandler,
		TeacherHandler:    teacherHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
