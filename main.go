package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/projetakip/projetakip-backend/database"
	"github.com/projetakip/projetakip-backend/internal/jobs"
	"github.com/projetakip/projetakip-backend/internal/routes"
	"github.com/projetakip/projetakip-backend/internal/services"
	"github.com/projetakip/projetakip-backend/internal/storage"
	"github.com/projetakip/projetakip-backend/pkg/config"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load(".env")

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	var store storage.Store
	if cfg.Database.UseInMemory {
		logger.Warn("using in-memory storage, data will not survive restarts")
		store = storage.NewMemoryStore()
	} else {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logger.Fatal("database connection failed", zap.Error(err))
		}
		store = storage.NewDatabaseStore(db)
		logger.Info("connected to PostgreSQL",
			zap.String("host", cfg.Database.Host),
			zap.String("dbname", cfg.Database.DBName))
	}

	var extractor services.Extractor
	if cfg.Assistant.OpenAIKey != "" {
		extractor = services.NewOpenAIExtractor(
			cfg.Assistant.OpenAIKey,
			cfg.Assistant.Model,
			cfg.Assistant.MaxTokens,
			cfg.Assistant.Temperature,
			time.Duration(cfg.Assistant.TimeoutSeconds)*time.Second,
			logger,
		)
		logger.Info("assistant extractor enabled", zap.String("model", cfg.Assistant.Model))
	} else {
		extractor = services.NoopExtractor{}
		logger.Info("no OpenAI key configured, assistant runs on keyword parsing only")
	}

	notifier := services.NewZapNotifier(logger)
	meetingService := services.NewMeetingService(store, notifier, cfg.Meetings.NearFutureDays, logger)
	drafts := services.NewDraftStore()
	assistant := services.NewAssistant(store, drafts, extractor, meetingService, notifier, cfg.Server.BaseURL, logger)

	reminderJob := jobs.NewReminderJob(store, meetingService, notifier,
		time.Duration(cfg.Meetings.ReminderIntervalMinutes)*time.Minute, logger)
	reminderJob.Start()

	app := fiber.New(fiber.Config{
		AppName: "ProjeTakip Backend v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app, routes.Deps{
		Store:     store,
		Assistant: assistant,
		Meetings:  meetingService,
		Notifier:  notifier,
		JWTSecret: cfg.Auth.JWTSecret,
		Version:   version,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down")
		reminderJob.Stop()
		_ = app.Shutdown()
	}()

	logger.Info("starting server", zap.String("address", cfg.Server.Address))
	if err := app.Listen(cfg.Server.Address); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
