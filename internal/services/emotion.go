package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/modules/wellbeing"
	"github.com/yungbote/shortsview-backend/internal/observability"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type EmotionService interface {
	// TrackEmotion stores one sample and re-evaluates the account's recent
	// window in the same transaction. A nil Warning means none was raised.
	TrackEmotion(dbc dbctx.Context, accountID, videoID uint, timestamp float64, scores types.EmotionScores) (*wellbeing.Warning, error)
}

type emotionService struct {
	db        *gorm.DB
	log       *logger.Logger
	videos    repos.VideoRepo
	samples   repos.EmotionSampleRepo
	wellbeing *wellbeing.Usecases
	metrics   *observability.Metrics
	now       func() time.Time
}

// NewEmotionService takes the clock shared with the wellbeing usecases so a
// sample's recorded_at and the evaluation window line up. A nil now means
// time.Now in UTC.
func NewEmotionService(
	db *gorm.DB,
	log *logger.Logger,
	videos repos.VideoRepo,
	samples repos.EmotionSampleRepo,
	wb *wellbeing.Usecases,
	metrics *observability.Metrics,
	now func() time.Time,
) EmotionService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &emotionService{
		db:        db,
		log:       log.With("service", "EmotionService"),
		videos:    videos,
		samples:   samples,
		wellbeing: wb,
		metrics:   metrics,
		now:       now,
	}
}

func (es *emotionService) TrackEmotion(dbc dbctx.Context, accountID, videoID uint, timestamp float64, scores types.EmotionScores) (*wellbeing.Warning, error) {
	track := func(inner dbctx.Context) (*wellbeing.Warning, error) {
		video, err := es.videos.GetByID(inner, videoID)
		if err != nil {
			return nil, fmt.Errorf("load video: %w", err)
		}
		if video == nil {
			return nil, fmt.Errorf("video %d: %w", videoID, pkgerrors.ErrNotFound)
		}
		if err := es.samples.Create(inner, &types.EmotionSample{
			AccountID:     accountID,
			VideoID:       videoID,
			Timestamp:     timestamp,
			RecordedAt:    es.now().UTC(),
			EmotionScores: scores,
		}); err != nil {
			return nil, fmt.Errorf("create emotion sample: %w", err)
		}
		warning, _, err := es.wellbeing.Evaluate(inner, accountID)
		if err != nil {
			return nil, fmt.Errorf("evaluate wellbeing: %w", err)
		}
		return warning, nil
	}

	var (
		warning *wellbeing.Warning
		err     error
	)
	if dbc.Tx != nil {
		warning, err = track(dbc)
	} else {
		err = es.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
			var inner error
			warning, inner = track(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
			return inner
		})
	}
	if err != nil {
		if !errors.Is(err, pkgerrors.ErrNotFound) {
			es.log.Error("TrackEmotion failed", "account_id", accountID, "video_id", videoID, "error", err)
		}
		return nil, err
	}

	es.metrics.IncEmotionSample()
	if warning != nil {
		es.metrics.IncWarning(warning.Reasons)
	}
	return warning, nil
}
