package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/faisal420-png/bdcinema/internal/config"
	"github.com/faisal420-png/bdcinema/internal/database"
	"github.com/faisal420-png/bdcinema/internal/handlers"
	"github.com/faisal420-png/bdcinema/internal/logging"
	"github.com/faisal420-png/bdcinema/internal/middleware"
	"github.com/faisal420-png/bdcinema/internal/routes"
	"github.com/faisal420-png/bdcinema/internal/services"
	"github.com/faisal420-png/bdcinema/internal/tmdb"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout, optional rotating file)
	baseLog := logging.Setup(cfg.LogFile)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if cfg.TMDBAPIKey == "" {
		slog.Warn("TMDB_API_KEY is not set; metadata lookups and sync will fail")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if err := database.Seed(database.DB, cfg.AdminPassword); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(baseLog, dbLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Metadata provider
	gateway := tmdb.NewClient(cfg.TMDBAPIKey, cfg.TMDBBaseURL, cfg.TMDBImageURL, cfg.TMDBTimeout)

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	catalogService := services.NewCatalogService(database.DB)
	reviewService := services.NewReviewService(database.DB, catalogService, gateway)
	listService := services.NewListService(database.DB, catalogService)
	syncService := services.NewSyncService(catalogService, gateway, cfg.SyncRegions)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler()
	titleHandler := handlers.NewTitleHandler(catalogService, reviewService, gateway)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	listHandler := handlers.NewListHandler(listService)
	searchHandler := handlers.NewSearchHandler(gateway)
	profileHandler := handlers.NewProfileHandler(authService, reviewService, listService, cfg.UploadDir)
	adminHandler := handlers.NewAdminHandler(syncService, cfg.UploadDir)
	legalHandler := handlers.NewLegalHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Uploaded posters and avatars
	app.Static("/uploads", cfg.UploadDir)

	// Routes
	routes.Setup(app, cfg, database.DB,
		authHandler, healthHandler, titleHandler, reviewHandler,
		listHandler, searchHandler, profileHandler, adminHandler, legalHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
