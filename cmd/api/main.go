package main

// @title GeoQuery Service API
// @version 1.0
// @description Маршруты, ближайшие узлы и автодополнение названий по дорожному графу OpenStreetMap.
// @description
// @description Основные возможности:
// @description - Поиск ближайшего узла дорожного графа
// @description - Кратчайший маршрут (A*) с ограничением по времени
// @description - Автодополнение названий с учетом популярности
// @description - Статистика загруженного графа

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

	"go.uber.org/zap"

	_ "github.com/geoquery-service/docs"
	"github.com/geoquery-service/internal/config"
	httpDelivery "github.com/geoquery-service/internal/delivery/http"
	"github.com/geoquery-service/internal/delivery/http/handler"
	"github.com/geoquery-service/internal/domain"
	"github.com/geoquery-service/internal/domain/repository"
	"github.com/geoquery-service/internal/pkg/logger"
	"github.com/geoquery-service/internal/pkg/metrics"
	"github.com/geoquery-service/internal/repository/cache"
	"github.com/geoquery-service/internal/repository/osmpbf"
	"github.com/geoquery-service/internal/repository/postgresosm"
	redisrepo "github.com/geoquery-service/internal/repository/redis"
	"github.com/geoquery-service/internal/streetmap"
	"github.com/geoquery-service/internal/usecase"
	"github.com/geoquery-service/internal/worker"
	"github.com/geoquery-service/internal/worker/popularity"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting GeoQuery Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("map_source", cfg.Map.Source),
		zap.Bool("stream_enabled", cfg.Stream.Enabled),
	)

	m := metrics.New()

	// 3. Load map data
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Map.LoadTimeout)
	data, err := loadMap(loadCtx, cfg, log)
	cancelLoad()
	if err != nil {
		log.Fatal("Failed to load map", zap.Error(err))
	}

	// 4. Build indexes
	sm := streetmap.Build(data, logger.Component(log, "streetmap"))

	// 5. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	cancel()
	log.Info("Redis connected")

	// 6. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)

	var streamRepo repository.StreamRepository
	if cfg.Stream.Enabled {
		streamRepo = redisrepo.NewStreamRepository(redisClient.Client(), logger.Component(log, "stream"), redisrepo.Options{
			BatchSize: int64(cfg.Stream.BatchSize),
			Block:     cfg.Stream.ReadTimeout,
		})
	}

	// Группа реплики создается до старта сервера: события, опубликованные раньше, ей не доставляются
	var (
		popularityWorker *popularity.Worker
		consumer         usecase.ConsumerStatus
	)
	if streamRepo != nil {
		popularityWorker = popularity.NewWorker(
			streamRepo,
			sm,
			m,
			cfg.Stream.Name,
			cfg.Stream.ConsumerGroup,
			log,
		)
		prepareCtx, cancelPrepare := context.WithTimeout(context.Background(), 10*time.Second)
		err := popularityWorker.Prepare(prepareCtx)
		cancelPrepare()
		if err != nil {
			log.Fatal("Failed to prepare popularity stream", zap.Error(err))
		}
		consumer = popularityWorker
	}

	// 7. Initialize Use Cases
	nearestUC := usecase.NewNearestUseCase(sm, log)
	routeUC := usecase.NewRouteUseCase(sm, cacheRepo, m, log, cfg.Engine.RouteTimeout, cfg.Cache.RouteCacheTTL)
	searchUC := usecase.NewSearchUseCase(sm, streamRepo, m, log, usecase.SearchOptions{
		DefaultLimit: cfg.Engine.AutocompleteLimit,
		MaxLimit:     cfg.Engine.AutocompleteMaxLimit,
		Stream:       cfg.Stream.Name,
		Instance:     popularity.InstanceName(),
		Consumer:     consumer,
	})
	statsUC := usecase.NewStatsUseCase(sm, cacheRepo, m, log, cfg.Cache.StatsCacheTTL)

	// Статистика другой реплики может описывать другой граф
	if _, err := statsUC.RefreshStatistics(context.Background()); err != nil {
		log.Warn("Failed to refresh statistics", zap.Error(err))
	}

	log.Info("Use cases initialized")

	// 8. Start workers
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var workers *worker.WorkerManager
	if popularityWorker != nil {
		workers = worker.NewWorkerManager(log, worker.DefaultShutdownTimeout)
		workers.Register(popularityWorker)
		if err := workers.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, m, httpDelivery.Handlers{
		Health:  handler.NewHealthHandler(sm),
		Nearest: handler.NewNearestHandler(nearestUC, log),
		Route:   handler.NewRouteHandler(routeUC, log),
		Search:  handler.NewSearchHandler(searchUC, log),
		Stats:   handler.NewStatsHandler(statsUC, log),
	})

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

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workers != nil {
		if err := workers.Stop(); err != nil {
			log.Error("Workers shutdown error", zap.Error(err))
		}
	}
	cancelWorkers()

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

// loadMap читает дорожный граф из настроенного источника.
// Подключение к OSM базе нужно только на время загрузки
func loadMap(ctx context.Context, cfg *config.Config, log *zap.Logger) (*domain.MapData, error) {
	var mapRepo repository.MapRepository

	switch cfg.Map.Source {
	case config.MapSourcePBF:
		mapRepo = osmpbf.NewMapRepository(cfg.Map.PBFPath, cfg.Map.Highways, logger.Component(log, "osmpbf"))

	default:
		osmDB, err := postgresosm.New(&cfg.OSMDB, log)
		if err != nil {
			return nil, fmt.Errorf("connect to OSM PostgreSQL: %w", err)
		}
		defer func() {
			if err := osmDB.Close(); err != nil {
				log.Error("Failed to close OSM PostgreSQL connection", zap.Error(err))
			}
		}()

		if err := osmDB.Health(ctx); err != nil {
			return nil, fmt.Errorf("OSM PostgreSQL health check: %w", err)
		}
		mapRepo = postgresosm.NewMapRepository(osmDB, cfg.Map.Highways)
	}

	started := time.Now()
	data, err := mapRepo.LoadMap(ctx)
	if err != nil {
		return nil, err
	}

	log.Info("Map loaded",
		zap.String("source", data.Source),
		zap.Int("nodes", len(data.Nodes)),
		zap.Int("ways", len(data.Ways)),
		zap.Duration("took", time.Since(started)),
	)
	return data, nil
}
