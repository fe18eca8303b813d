package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"qaportal/internal/config"
	"qaportal/internal/database"
	"qaportal/internal/database/migration"
	handlers "qaportal/internal/http/handler"
	"qaportal/internal/http/middleware"
	"qaportal/internal/otel"
	"qaportal/internal/repository/postgres"
	"qaportal/internal/service"
	"qaportal/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing degrades to a noop provider when no endpoint is configured.
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := newStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	// Repositories
	docRepo := postgres.NewDocumentPostgres(db)
	logRepo := postgres.NewStatusLogPostgres(db)
	notifRepo := postgres.NewNotificationPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	programRepo := postgres.NewProgramPostgres(db)
	deptRepo := postgres.NewDepartmentPostgres(db)
	activityRepo := postgres.NewActivityLogPostgres(db)

	// Services
	gate := service.NewUploadGate(cfg.Upload)
	notifSvc := service.NewNotificationService(notifRepo)
	activitySvc := service.NewActivityService(activityRepo)
	docSvc := service.NewDocumentService(gate, objStore, docRepo, logRepo,
		userRepo, notifSvc, activitySvc, cfg.Roles)
	userSvc := service.NewUserService(userRepo, cfg.Roles)
	programSvc := service.NewProgramService(programRepo)
	deptSvc := service.NewDepartmentService(deptRepo)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Upload.MaxFileSize) + 1024*1024,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(middleware.Identity())

	promMW, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, handlers.Services{
		Documents:     docSvc,
		Notifications: notifSvc,
		Users:         userSvc,
		Programs:      programSvc,
		Departments:   deptSvc,
		Activity:      activitySvc,
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newStorage selects the artifact store driver from configuration.
func newStorage(cfg config.StorageConfig) (storage.Storage, error) {
	if cfg.Driver == "minio" {
		return storage.NewMinIO(cfg.MinIO)
	}
	return storage.NewLocal(cfg.LocalRoot)
}
