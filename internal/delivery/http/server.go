package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/geoquery-service/internal/config"
	"github.com/geoquery-service/internal/delivery/http/handler"
	"github.com/geoquery-service/internal/delivery/http/middleware"
	"github.com/geoquery-service/internal/pkg/errors"
	"github.com/geoquery-service/internal/pkg/metrics"
)

// Handlers - обработчики, которые регистрирует сервер
type Handlers struct {
	Health  *handler.HealthHandler
	Nearest *handler.NearestHandler
	Route   *handler.RouteHandler
	Search  *handler.SearchHandler
	Stats   *handler.StatsHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	handlers Handlers
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics, handlers Handlers) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "GeoQuery Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		metrics:  m,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(s.metrics.Handler()))

	api := s.app.Group("/api/v1")

	api.Get("/health", s.handlers.Health.Health)
	api.Get("/nearest", s.handlers.Nearest.Nearest)

	// Поиск маршрута ограничен по частоте, один запрос может занимать ядро до ROUTE_TIMEOUT
	api.Post("/route",
		middleware.RateLimit(s.config.Engine.RouteRateLimit, s.config.Engine.RouteRateBurst),
		s.handlers.Route.Route)

	search := api.Group("/search")
	search.Get("/autocomplete", s.handlers.Search.Autocomplete)
	search.Get("/locations", s.handlers.Search.Locations)

	api.Get("/stats", s.handlers.Stats.GetStatistics)
}

// App - fiber приложение, используется в тестах
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные в handler'ах: неизвестные
// маршруты, паники и ошибки fiber
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if stderrors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"error": errors.New("HTTP_ERROR", fe.Message, fe.Code),
			})
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errors.ErrInternalServer,
		})
	}
}
