package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/api"
	"github.com/BaronguyenVinasu/riftcounter/internal/api/handlers"
	"github.com/BaronguyenVinasu/riftcounter/internal/cache"
	"github.com/BaronguyenVinasu/riftcounter/internal/config"
	"github.com/BaronguyenVinasu/riftcounter/internal/data"
	"github.com/BaronguyenVinasu/riftcounter/internal/database"
	"github.com/BaronguyenVinasu/riftcounter/internal/logging"
	"github.com/BaronguyenVinasu/riftcounter/internal/middleware"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
	"github.com/BaronguyenVinasu/riftcounter/internal/telemetry"
	"github.com/BaronguyenVinasu/riftcounter/internal/workers"
)

const shutdownTimeout = 30 * time.Second

// analysisCache is the cache as both the engine and the admin endpoints use it.
type analysisCache interface {
	services.AnalysisCache
	handlers.CacheStore
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.Environment)

	ctx := context.Background()
	provider, err := telemetry.InitTelemetry(ctx, &telemetry.TelemetryConfig{
		Enabled:        cfg.Telemetry.Enabled,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: telemetry.ServiceVersion,
		Environment:    cfg.Environment,
		SampleRate:     cfg.Telemetry.SampleRatio,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Failed to shutdown telemetry")
		}
	}()

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.close()

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	app.startWorkers(workerCtx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.LogStartup(logger, telemetry.ServiceName, telemetry.ServiceVersion, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logging.LogShutdown(logger, telemetry.ServiceName, sig.String())
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	stopWorkers()
	app.stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited gracefully")
	return nil
}

// application is the wired service graph behind the HTTP server.
type application struct {
	router  *gin.Engine
	refresh *services.RefreshService
	watcher *workers.PatchWatcher
	worker  *workers.RefreshWorker
	closers []func()
}

func newApplication(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*application, error) {
	app := &application{}

	store, err := data.NewStore(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	tracker := data.NewSourceTracker(trackerConfig(cfg), time.Now())

	analysisStore, redisDep, closeRedis := connectCache(ctx, cfg, logger)
	if closeRedis != nil {
		app.closers = append(app.closers, closeRedis)
	}
	healthDeps := []handlers.Dependency{redisDep}

	var repo services.MatchupRepository
	if cfg.Database.Enabled {
		db, err := database.NewPostgresConnection(ctx, cfg.Database, logger)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.closers = append(app.closers, db.Close)
		matchups := database.NewMatchupRepository(database.NewTracedDB(db.Pool, logger))
		if err := matchups.EnsureSchema(ctx); err != nil {
			app.close()
			return nil, err
		}
		repo = matchups
		healthDeps = append(healthDeps, handlers.Dependency{Name: "database", Checker: db, Required: true})
	} else {
		healthDeps = append(healthDeps, handlers.Dependency{Name: "database", Fallback: "disabled"})
	}

	champions := services.NewChampionService(store, logger, cfg.Features.FuzzySearch)
	analysis := services.NewAnalysisService(store, champions, tracker, analysisStore, services.AnalysisConfig{
		CacheTTL:         cfg.Cache.AnalysisTTL,
		CounterPicks:     cfg.Features.CounterPicks,
		BuildAggregation: cfg.Features.BuildAggregation,
	}, logger)
	app.refresh = services.NewRefreshService(store, repo, tracker, tracker, analysisStore, logger)

	app.worker = workers.NewRefreshWorker(app.refresh, cfg.Sources.RefreshInterval, logger)
	if cfg.Patch.Enabled {
		app.watcher = workers.NewPatchWatcher(workers.PatchWatcherConfig{
			FeedURL:        cfg.Patch.FeedURL,
			PollInterval:   cfg.Patch.PollInterval,
			RequestTimeout: cfg.Patch.RequestTimeout,
		}, tracker, analysisStore, app.refresh, logger)
	}

	app.router = newRouter(cfg, logger, api.Dependencies{
		Catalog:     champions,
		Engine:      analysis,
		Analyzer:    analysis,
		Items:       store,
		Sources:     tracker,
		Refresher:   app.refresh,
		Cache:       analysisStore,
		HealthDeps:  healthDeps,
		Version:     telemetry.ServiceVersion,
		AdminAPIKey: cfg.Security.AdminAPIKey,
		Logger:      logger,
	})
	return app, nil
}

// connectCache prefers Redis and falls back to the in-process cache when Redis
// is disabled or unreachable.
func connectCache(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (analysisCache, handlers.Dependency, func()) {
	dep := handlers.Dependency{Name: "redis", Fallback: "disabled"}
	if !cfg.Redis.Enabled {
		return cache.NewMemoryAnalysisCache(), dep, nil
	}

	client, err := database.NewRedisConnection(ctx, cfg.Redis, logger)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, using in-memory analysis cache")
		dep.Fallback = "memory"
		return cache.NewMemoryAnalysisCache(), dep, nil
	}
	dep.Checker = client
	dep.Fallback = ""
	return cache.NewRedisAnalysisCache(client.Client, cfg.Cache.KeyPrefix, logger), dep, client.Close
}

func trackerConfig(cfg *config.Config) data.TrackerConfig {
	sources := make([]data.SourceConfig, 0, len(cfg.Sources.List))
	for _, s := range cfg.Sources.List {
		sources = append(sources, data.SourceConfig{Name: s.Name, URL: s.URL, Reliability: s.Reliability})
	}
	return data.TrackerConfig{
		Sources:         sources,
		Weights:         cfg.Sources.Weights,
		RefreshInterval: cfg.Sources.RefreshInterval,
		PatchVersion:    cfg.Patch.InitialVersion,
		PatchDate:       cfg.Patch.ReleaseDate(),
	}
}

func newRouter(cfg *config.Config, logger *logrus.Logger, deps api.Dependencies) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(gin.Recovery())

	api.SetupRoutes(router, deps)
	return router
}

func (a *application) startWorkers(ctx context.Context) {
	a.worker.Start(ctx)
	if a.watcher != nil {
		a.watcher.Start(ctx)
	}
}

func (a *application) stopWorkers() {
	a.worker.Stop()
	if a.watcher != nil {
		a.watcher.Stop()
	}
}

// close releases connections in reverse order of acquisition.
func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
