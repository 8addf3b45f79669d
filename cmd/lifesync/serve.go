package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Valentin6743/LS/internal/config"
	"github.com/Valentin6743/LS/internal/database"
	"github.com/Valentin6743/LS/internal/handlers"
	"github.com/Valentin6743/LS/internal/localstore"
	"github.com/Valentin6743/LS/internal/logging"
	"github.com/Valentin6743/LS/internal/middleware"
	"github.com/Valentin6743/LS/internal/organizer"
	"github.com/Valentin6743/LS/internal/prefs"
	"github.com/Valentin6743/LS/internal/routes"
	"github.com/Valentin6743/LS/internal/services"
	"github.com/Valentin6743/LS/internal/storage"
	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg)
	},
}

func blobStore(ctx context.Context, cfg *config.Config) (storage.Blobs, error) {
	if cfg.S3Bucket == "" {
		slog.Warn("no S3 bucket configured, file payloads are kept in memory")
		return storage.NewMemory(cfg.S3PublicURL), nil
	}
	return storage.NewS3(ctx, cfg)
}

func serve(ctx context.Context, cfg *config.Config) error {
	// Database
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer database.Close(db)
	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	// Database log handler (ERROR+ async batch)
	dbLogHandler := logging.NewDBHandler(db)
	slog.SetDefault(slog.New(logging.NewMultiHandler(logging.NewJSON(os.Stdout), dbLogHandler)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	cleanupStopped := logging.StartCleanup(db, cleanupDone)

	blobs, err := blobStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("blob storage: %w", err)
	}
	set := services.New(db, cfg, blobs)

	var local *localstore.Store
	if cfg.Backend == config.BackendLocal {
		local = localstore.New(
			localstore.WithSeed(localstore.DemoSeed(time.Now())),
			localstore.WithSession(prefs.NewFile(cfg.SessionFile)),
		)
	}
	resolver, err := organizer.NewResolver(cfg, local, set)
	if err != nil {
		return err
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, resolver, routes.Handlers{
		Health:    handlers.NewHealthHandler(db, cfg.Backend),
		Auth:      handlers.NewAuthHandler(set.Auth, set.Users),
		Organizer: handlers.NewOrganizerHandler(resolver),
		Records:   handlers.NewRecordsHandler(set),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "backend", cfg.Backend)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-quit:
		slog.Info("shutting down server...")
	case err = <-listenErr:
		slog.Error("server failed to start", "error", err)
	}

	close(cleanupDone)
	<-cleanupStopped
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if shutdownErr := app.Shutdown(); shutdownErr != nil {
		slog.Error("server shutdown error", "error", shutdownErr)
	}
	slog.Info("server stopped")
	return err
}
