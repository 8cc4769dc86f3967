package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/learning-catalog/internal/config"
	"github.com/learning-catalog/internal/delivery/http/handler"
	"github.com/learning-catalog/internal/delivery/http/middleware"
	"github.com/learning-catalog/internal/pkg/errors"
	"github.com/learning-catalog/internal/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Health      *handler.HealthHandler
	Catalog     *handler.CatalogHandler
	Resource    *handler.ResourceHandler
	Comment     *handler.CommentHandler
	Annotation  *handler.AnnotationHandler
	Version     *handler.VersionHandler
	GeoLocation *handler.GeoLocationHandler
	Image       *handler.ImageHandler
	Profile     *handler.ProfileHandler
	I18n        *handler.I18nHandler
}

// Server is the Fiber HTTP server of the catalog API
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	locale   *middleware.LocaleMatcher
}

func NewServer(cfg *config.Config, logger *zap.Logger, locale *middleware.LocaleMatcher, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Learning Catalog",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		locale:   locale,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App exposes the underlying Fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	if s.config.Metrics.Enabled {
		s.app.Use(middleware.Metrics())
	}
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	s.app.Use(middleware.Locale(s.config.Catalog.LocaleCookie, s.locale))
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	if s.config.Metrics.Enabled {
		s.app.Get(s.config.Metrics.Path, adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := s.app.Group("/api/v1")

	api.Get("/health", h.Health.Health)

	// Catalog browsing
	api.Get("/", h.Catalog.Home)
	api.Get("/kinds", h.Catalog.Kinds)
	api.Get("/search-engines", h.Catalog.SearchEngines)
	api.Get("/search-engines/:type", h.Catalog.SearchURL)
	api.Get("/catalog/*", h.Catalog.Resolve)

	// Resources
	resources := api.Group("/resources")
	resources.Get("/", h.Resource.List)
	resources.Post("/", h.Resource.Create)
	resources.Get("/:id", h.Resource.Get)
	resources.Put("/:id", h.Resource.Update)
	resources.Delete("/:id", h.Resource.Delete)
	resources.Get("/:id/url", h.Resource.URL)
	resources.Get("/:id/preview", h.Resource.Preview)
	resources.Get("/:id/children", h.Resource.Children)
	resources.Put("/:id/see-also", h.Resource.SetSeeAlso)

	resources.Get("/:id/comments", h.Comment.List)
	resources.Post("/:id/comments", h.Comment.Add)
	resources.Get("/:id/annotations", h.Annotation.List)
	resources.Post("/:id/annotations", h.Annotation.Add)
	api.Delete("/annotations/:id", h.Annotation.Delete)

	// History
	resources.Get("/:id/versions", h.Version.List)
	resources.Get("/:id/versions/:versionId", h.Version.Get)
	resources.Post("/:id/versions/:versionId/revert", h.Version.Revert)

	// Locations and images
	api.Post("/geolocations", h.GeoLocation.Create)
	api.Get("/geolocations/from-slug/:slug", h.GeoLocation.FromSlug)
	api.Get("/geolocations/:id", h.GeoLocation.Get)
	api.Post("/images", h.Image.Register)
	api.Get("/images/:id", h.Image.Get)

	api.Get("/profiles/:username", h.Profile.Get)
	api.Post("/i18n/setlang", h.I18n.SetLanguage)
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler renders errors that escaped the handlers, including
// Fiber's own 404 and 405
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := err.(*fiber.Error); ok {
			appErr := errors.New("HTTP_ERROR", e.Message, e.Code)
			if e.Code == fiber.StatusNotFound {
				appErr = errors.ErrResourceNotFound.WithMessage("Route not found")
			}
			return utils.SendError(c, appErr)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}
}
