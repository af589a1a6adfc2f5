package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/planweave/planweave-backend/internal/clients/redis"
	"github.com/planweave/planweave-backend/internal/db"
	"github.com/planweave/planweave-backend/internal/observability"
	"github.com/planweave/planweave-backend/internal/pkg/parallel"
	"github.com/planweave/planweave-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services

	pool         *parallel.Pool
	bus          redisclient.PlanEventBus
	otelShutdown func(context.Context) error
	httpServer   *http.Server
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "planweave-backend",
		Environment: cfg.Environment,
	})

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	// Enrichment worker pool: one per process, shared by every
	// planning run, shut down with the app.
	pool := parallel.NewPool(cfg.EnrichPoolSize)

	var bus redisclient.PlanEventBus
	if os.Getenv("REDIS_ADDR") != "" {
		bus, err = redisclient.NewPlanEventBus(log)
		if err != nil {
			log.Warn("plan event bus unavailable, continuing without it", "error", err)
			bus = nil
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, reposet, pool, bus)
	if err != nil {
		pool.Shutdown()
		log.Sync()
		return nil, err
	}

	if cfg.CatalogSeedPath != "" {
		if err := serviceset.Catalog.SeedFromFile(context.Background(), cfg.CatalogSeedPath); err != nil {
			log.Warn("catalog seed failed, lookups fall back to synthesized descriptors", "error", err)
		}
	}

	handlerset := wireHandlers(log, serviceset)
	router := wireRouter(cfg, handlerset)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		pool:         pool,
		bus:          bus,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Start() error {
	a.httpServer = &http.Server{
		Addr:    ":" + a.Cfg.HTTPPort,
		Handler: a.Router,
	}
	a.Log.Info("http server listening", "port", a.Cfg.HTTPPort)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Stop(ctx context.Context) {
	if a.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Warn("http server shutdown", "error", err)
		}
	}
	a.pool.Shutdown()
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.Log.Warn("plan event bus close", "error", err)
		}
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown", "error", err)
		}
	}
	a.Log.Sync()
}
