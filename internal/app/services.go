package app

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/clients/redis"
	"github.com/yungbote/shortsview-backend/internal/modules/wellbeing"
	"github.com/yungbote/shortsview-backend/internal/observability"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
	"github.com/yungbote/shortsview-backend/internal/services"
)

type Services struct {
	Sessions  services.SessionStore
	Auth      services.AuthService
	Catalog   services.CatalogService
	Tracking  services.TrackingService
	Emotion   services.EmotionService
	Analytics services.AnalyticsService
	Wellbeing *wellbeing.Usecases

	// closers run in reverse order on shutdown.
	closers []func() error
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	media services.MediaStore,
	metrics *observability.Metrics,
) (Services, error) {
	log.Info("Wiring services...")
	var out Services

	// Sessions live in Redis when configured, otherwise in the database.
	if cfg.RedisAddr != "" {
		store, err := redis.NewSessionStore(log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return Services{}, fmt.Errorf("init redis session store: %w", err)
		}
		out.Sessions = store
		out.closers = append(out.closers, store.Close)
	} else {
		out.Sessions = services.NewDBSessionStore(reposet.Session)
	}

	now := func() time.Time { return time.Now().UTC() }

	out.Auth = services.NewAuthService(db, log, reposet.Account, out.Sessions, cfg.SessionSecret, cfg.SessionTTL)
	out.Catalog = services.NewCatalogService(db, log, reposet.Video, reposet.ViewEvent, reposet.EmotionSample, media, metrics)
	out.Tracking = services.NewTrackingService(db, log, reposet.Video, reposet.ViewEvent, metrics)
	out.Wellbeing = wellbeing.New(wellbeing.UsecasesDeps{
		Log:      log,
		Accounts: reposet.Account,
		Samples:  reposet.EmotionSample,
		Warnings: reposet.WarningEvent,
		Now:      now,
	})
	out.Emotion = services.NewEmotionService(db, log, reposet.Video, reposet.EmotionSample, out.Wellbeing, metrics, now)
	out.Analytics = services.NewAnalyticsService(log, reposet.ViewEvent, reposet.EmotionSample, reposet.WarningEvent)
	return out, nil
}

func (s *Services) Close() error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.closers = nil
	return firstErr
}
