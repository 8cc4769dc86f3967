package main

// @title Learning Catalog API
// @version 1.0.0
// @description Catalog of learning resources: wiki pages, articles, videos, places, learning paths and sessions.
// @description
// @description Resources are addressed by typed nested URLs, carry per-kind details,
// @description keep a version history and can be commented and annotated.

// @contact.name API Support
// @contact.email support@learning-catalog.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/learning-catalog/docs"
	"github.com/learning-catalog/internal/config"
	httpDelivery "github.com/learning-catalog/internal/delivery/http"
	"github.com/learning-catalog/internal/delivery/http/handler"
	"github.com/learning-catalog/internal/delivery/http/middleware"
	"github.com/learning-catalog/internal/domain"
	"github.com/learning-catalog/internal/infrastructure/nominatim"
	"github.com/learning-catalog/internal/pkg/logger"
	"github.com/learning-catalog/internal/repository/cache"
	"github.com/learning-catalog/internal/repository/postgres"
	redisRepo "github.com/learning-catalog/internal/repository/redis"
	"github.com/learning-catalog/internal/usecase"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Learning Catalog")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("default_language", cfg.Catalog.DefaultLanguage),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	resourceRepo := postgres.NewResourceRepository(db)
	languageRepo := postgres.NewLanguageRepository(db)
	imageRepo := postgres.NewImageRepository(db)
	versionRepo := postgres.NewVersionRepository(db)
	geoLocationRepo := postgres.NewGeoLocationRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	annotationRepo := postgres.NewAnnotationRepository(db)

	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	geocoder := nominatim.NewClient(&cfg.Geocoder, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	geoLocationUC := usecase.NewGeoLocationUseCase(geoLocationRepo, geocoder, log)

	resourceUC := usecase.NewResourceUseCase(
		resourceRepo,
		languageRepo,
		imageRepo,
		versionRepo,
		cacheRepo,
		streamRepo,
		geoLocationUC.Related(),
		log,
		cfg.Cache.SearchCacheTTL,
		cfg.Cache.ResourceCacheTTL,
	)

	commentUC := usecase.NewCommentUseCase(commentRepo, resourceRepo, log)
	annotationUC := usecase.NewAnnotationUseCase(annotationRepo, resourceRepo, log)
	versionUC := usecase.NewVersionUseCase(versionRepo, resourceRepo, log)
	imageUC := usecase.NewImageUseCase(imageRepo, log)
	profileUC := usecase.NewProfileUseCase(commentUC, annotationUC)
	registryUC := usecase.NewRegistryUseCase(domain.Resources)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	localeMatcher := middleware.NewLocaleMatcher(cfg.Catalog.DefaultLanguage, cfg.Catalog.SupportedLanguages)

	handlers := httpDelivery.Handlers{
		Health: handler.NewHealthHandler(version, map[string]handler.HealthChecker{
			"postgres": db,
			"redis":    redisClient,
		}),
		Catalog:     handler.NewCatalogHandler(resourceUC, registryUC, log),
		Resource:    handler.NewResourceHandler(resourceUC, log),
		Comment:     handler.NewCommentHandler(commentUC, log),
		Annotation:  handler.NewAnnotationHandler(annotationUC, log),
		Version:     handler.NewVersionHandler(versionUC, resourceUC, log),
		GeoLocation: handler.NewGeoLocationHandler(geoLocationUC, log),
		Image:       handler.NewImageHandler(imageUC, log),
		Profile:     handler.NewProfileHandler(profileUC),
		I18n:        handler.NewI18nHandler(cfg.Catalog.LocaleCookie, localeMatcher),
	}

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(cfg, log, localeMatcher, handlers)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
