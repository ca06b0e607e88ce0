package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/domain/analytics"
	"github.com/yungbote/shortsview-backend/internal/observability"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

// TrackingService records playback. TrackView and IncrementView both move
// Video.views and are not reconciled against each other.
type TrackingService interface {
	TrackView(dbc dbctx.Context, accountID, videoID uint, duration float64, completed bool) (int, error)
	IncrementView(dbc dbctx.Context, videoID uint) (int, error)
}

type trackingService struct {
	db      *gorm.DB
	log     *logger.Logger
	videos  repos.VideoRepo
	views   repos.ViewEventRepo
	metrics *observability.Metrics
	now     func() time.Time
}

func NewTrackingService(
	db *gorm.DB,
	log *logger.Logger,
	videos repos.VideoRepo,
	views repos.ViewEventRepo,
	metrics *observability.Metrics,
) TrackingService {
	return &trackingService{
		db:      db,
		log:     log.With("service", "TrackingService"),
		videos:  videos,
		views:   views,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// TrackView appends a ViewEvent and, when the report starts a new view,
// bumps the video's counter. It returns the video's view count afterwards.
func (ts *trackingService) TrackView(dbc dbctx.Context, accountID, videoID uint, duration float64, completed bool) (int, error) {
	counted := false
	track := func(inner dbctx.Context) (int, error) {
		video, err := ts.videos.GetByID(inner, videoID)
		if err != nil {
			return 0, fmt.Errorf("load video: %w", err)
		}
		if video == nil {
			return 0, fmt.Errorf("video %d: %w", videoID, pkgerrors.ErrNotFound)
		}
		if err := ts.views.Create(inner, &types.ViewEvent{
			AccountID:     accountID,
			VideoID:       videoID,
			WatchDuration: duration,
			Completed:     completed,
			WatchDate:     ts.now(),
		}); err != nil {
			return 0, fmt.Errorf("create view event: %w", err)
		}
		if !analytics.IsNewView(duration) {
			return video.Views, nil
		}
		views, err := ts.videos.IncrementViews(inner, videoID)
		if err != nil {
			return 0, fmt.Errorf("increment views: %w", err)
		}
		counted = true
		return views, nil
	}

	var (
		views int
		err   error
	)
	if dbc.Tx != nil {
		views, err = track(dbc)
	} else {
		err = ts.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
			var inner error
			views, inner = track(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
			return inner
		})
	}
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrNotFound) {
			ts.log.Error("TrackView failed", "account_id", accountID, "video_id", videoID, "error", err)
		}
		return 0, err
	}

	ts.metrics.IncViewEvent(completed)
	if counted {
		ts.metrics.IncViewCounted(observability.ViewPathTrack)
	}
	return views, nil
}

func (ts *trackingService) IncrementView(dbc dbctx.Context, videoID uint) (int, error) {
	views, err := ts.videos.IncrementViews(dbc, videoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("video %d: %w", videoID, pkgerrors.ErrNotFound)
	}
	if err != nil {
		ts.log.Error("IncrementView failed", "video_id", videoID, "error", err)
		return 0, fmt.Errorf("increment views: %w", err)
	}
	ts.metrics.IncViewCounted(observability.ViewPathIncrement)
	return views, nil
}
