package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"formapi/internal/config"
	"formapi/internal/database"
	"formapi/internal/database/migration"
	"formapi/internal/filestore"
	handlers "formapi/internal/http/handler"
	"formapi/internal/http/middleware"
	"formapi/internal/logger"
	"formapi/internal/otel"
	"formapi/internal/repository/postgres"
	"formapi/internal/service"
	"formapi/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Formations & Publications API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", logger.ErrorFields(err)...)
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		dbURL, err := database.BuildMigrationURL(cfg.Database)
		if err != nil {
			return err
		}
		if err := migration.EnsureMigrated(dbURL, cfg.Database.Host, log); err != nil {
			return err
		}
	}

	backend, err := newStorage(cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	files := filestore.New(backend, log)
	if err := files.Initialize(ctx); err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	// Initialize repositories and services
	formationRepo := postgres.NewFormationPostgres(db)
	publicationRepo := postgres.NewPublicationPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	deps := handlers.Deps{
		DB:           db,
		Formations:   service.NewFormationService(formationRepo, files, log),
		Publications: service.NewPublicationService(publicationRepo, formationRepo, files, log),
		Users:        service.NewUserService(userRepo, log),
		Files:        files,
	}

	app, err := newApp(cfg, log)
	if err != nil {
		return err
	}
	handlers.RegisterRoutes(app, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("port", cfg.Port), zap.String("storage", cfg.Storage.Backend))
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

func newStorage(cfg *config.AppConfig) (storage.Storage, error) {
	switch cfg.Storage.Backend {
	case config.StorageMinIO:
		return storage.NewMinIO(cfg.MinIO)
	default:
		return storage.NewLocal(cfg.Storage.UploadDir)
	}
}

func newApp(cfg *config.AppConfig, log *zap.Logger) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		BodyLimit:             cfg.HTTP.BodyLimitMB * 1024 * 1024,
		DisableStartupMessage: true,
	})

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	// Register global middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSAllowOrigins}))
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(prom.Handler())
	// Logger renders handler errors, so it sits inside the metrics middleware
	app.Use(middleware.Logger(log))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", handlers.Swagger())

	return app, nil
}
