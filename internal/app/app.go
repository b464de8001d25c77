package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/shepherd-backend/internal/data/db"
	httpserver "github.com/yungbote/shepherd-backend/internal/http"
	"github.com/yungbote/shepherd-backend/internal/observability"
	"github.com/yungbote/shepherd-backend/internal/platform/logger"
	"github.com/yungbote/shepherd-backend/internal/realtime"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Registry *realtime.Registry
	Metrics  *observability.Metrics

	dbService    *db.Service
	server       *httpserver.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	if logMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.NewMetrics(cfg.MetricsEnabled)

	dbService, err := db.NewService(cfg.DB, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	registry := realtime.NewRegistry(log)
	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, clients, registry, metrics)
	if err != nil {
		clients.Close()
		_ = dbService.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(log, theDB, cfg, serviceset, registry, metrics)
	middleware := wireMiddleware(log, serviceset)
	server := httpserver.NewServer(":"+cfg.Port, routerConfig(log, cfg, handlerset, middleware, metrics))

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       server.Engine,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clients,
		Registry:     registry,
		Metrics:      metrics,
		dbService:    dbService,
		server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP and, when a bus is configured, forwards bus events into the
// local registry. It returns after ctx is cancelled and the server has shut
// down, or on the first fatal error.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}

	g, gctx := errgroup.WithContext(ctx)

	if a.Clients.EventBus != nil {
		if err := a.Clients.EventBus.StartForwarder(gctx, a.Registry.Broadcast); err != nil {
			return fmt.Errorf("start event forwarder: %w", err)
		}
		a.Log.Info("Event bus forwarder started", "channel", a.Cfg.Redis.Channel)
	}

	g.Go(func() error {
		a.Log.Info("Server listening", "port", a.Cfg.Port)
		return a.server.Run(gctx, a.Cfg.ShutdownTimeout)
	})

	err := g.Wait()
	a.Log.Info("Server stopped", "subscribers", a.Registry.Len())
	return err
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
