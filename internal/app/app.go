package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/db"
	"github.com/yungbote/shortsview-backend/internal/http"
	"github.com/yungbote/shortsview-backend/internal/observability"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	media        MediaProvider
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
	LoadDotEnv(log)
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.ServiceName,
		Environment: cfg.OtelEnvironment,
		Version:     cfg.ServiceVersion,
		Endpoint:    cfg.OtelEndpoint,
		Insecure:    cfg.OtelInsecure,
		SampleRatio: cfg.OtelSampleRatio,
	})

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
		if err := metrics.Register(); err != nil {
			log.Sync()
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}

	theDB, err := db.Open(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}

	media, err := resolveMediaStore(ctx, log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)

	serviceset, err := wireServices(theDB, log, cfg, reposet, media.Store, metrics)
	if err != nil {
		_ = media.Close()
		log.Sync()
		return nil, err
	}

	seedAdmin(ctx, log, serviceset.Auth, cfg)

	handlerset := wireHandlers(log, theDB, cfg, serviceset)
	middleware := wireMiddleware(log, serviceset)
	server, err := wireServer(log, cfg, handlerset, middleware, media, metrics)
	if err != nil {
		_ = serviceset.Close()
		_ = media.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		media:        media,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Starting server", "addr", addr)
	return a.Server.Run(addr)
}

// Shutdown stops accepting requests, waits for in-flight ones, then releases
// every client.
func (a *App) Shutdown(ctx context.Context) error {
	if a == nil {
		return nil
	}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.Server != nil {
		keep(a.Server.Shutdown(ctx))
	}
	keep(a.Services.Close())
	if a.media.Close != nil {
		keep(a.media.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			keep(sqlDB.Close())
		}
	}
	if a.otelShutdown != nil {
		keep(a.otelShutdown(ctx))
	}
	if a.Log != nil {
		a.Log.Sync()
	}
	return firstErr
}
