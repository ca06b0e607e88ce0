package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/http"
	httpH "github.com/yungbote/shortsview-backend/internal/http/handlers"
	httpMW "github.com/yungbote/shortsview-backend/internal/http/middleware"
	"github.com/yungbote/shortsview-backend/internal/http/templates"
	"github.com/yungbote/shortsview-backend/internal/observability"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Catalog   *httpH.CatalogHandler
	Tracking  *httpH.TrackingHandler
	Analytics *httpH.AnalyticsHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(dbPinger(db)),
		Auth:      httpH.NewAuthHandler(services.Auth, cfg.CookieSecure),
		Catalog:   httpH.NewCatalogHandler(services.Catalog, cfg.MaxUploadBytes),
		Tracking:  httpH.NewTrackingHandler(services.Tracking, services.Emotion),
		Analytics: httpH.NewAnalyticsHandler(services.Analytics),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(
	log *logger.Logger,
	cfg Config,
	handlers Handlers,
	middleware Middleware,
	media MediaProvider,
	metrics *observability.Metrics,
) (*http.Server, error) {
	pages, err := templates.Load()
	if err != nil {
		return nil, err
	}
	return http.NewServer(http.RouterConfig{
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		CatalogHandler:   handlers.Catalog,
		TrackingHandler:  handlers.Tracking,
		AnalyticsHandler: handlers.Analytics,
		HealthHandler:    handlers.Health,
		Templates:        pages,
		Log:              log,
		Metrics:          metrics,
		CORSOrigins:      cfg.CORSOrigins,
		MediaDir:         media.Dir,
		MediaPrefix:      media.Prefix,
		ServiceName:      cfg.ServiceName,
		Tracing:          cfg.OtelEnabled,
	}), nil
}

func dbPinger(db *gorm.DB) httpH.Pinger {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
