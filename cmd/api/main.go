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
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"internhub/internal/auth"
	"internhub/internal/config"
	"internhub/internal/database"
	"internhub/internal/database/migration"
	handlers "internhub/internal/http/handler"
	"internhub/internal/http/middleware"
	"internhub/internal/logger"
	"internhub/internal/metrics"
	"internhub/internal/otel"
	"internhub/internal/repository/postgres"
	"internhub/internal/service"
	"internhub/internal/storage"
)

// @title						internhub API
// @version					1.0
// @description				Internship management: mentor allocation, document review and internship applications.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}
	logger.Configure(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Location: loc})
	log := logger.With("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

// run owns every resource it opens and releases them on return, so main
// exits in exactly one place.
func run(ctx context.Context, cfg *config.AppConfig) error {
	log := logger.With("main")

	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Error().Err(err).Msg("tracing shutdown failed")
		}
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("initialize object storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	domainMetrics, err := metrics.NewDomain(reg)
	if err != nil {
		return fmt.Errorf("register domain metrics: %w", err)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.TTLMin)*time.Minute)
	if err != nil {
		return fmt.Errorf("initialize token service: %w", err)
	}

	// Initialize repositories and services
	txm := database.NewTxManager(db)
	userRepo := postgres.NewUserPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	feedbackRepo := postgres.NewFeedbackPostgres(db)
	allocRepo := postgres.NewAllocationPostgres(db)
	internshipRepo := postgres.NewInternshipPostgres(db)
	appRepo := postgres.NewApplicationPostgres(db)

	presignExpiry := time.Duration(cfg.MinIO.PresignExpirySec) * time.Second
	deps := handlers.Dependencies{
		Documents:    service.NewDocumentService(txm, objStore, docRepo, feedbackRepo, domainMetrics, presignExpiry),
		Allocations:  service.NewAllocationService(txm, userRepo, docRepo, allocRepo, domainMetrics),
		Internships:  service.NewInternshipService(internshipRepo),
		Applications: service.NewApplicationService(objStore, appRepo, internshipRepo, domainMetrics),
		Tokens:       tokens,
		Gatherer:     reg,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    20 * 1024 * 1024,
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, deps)

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}
