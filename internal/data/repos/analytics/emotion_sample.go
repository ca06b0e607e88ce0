package analytics

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type EmotionSampleRepo interface {
	Create(dbc dbctx.Context, sample *types.EmotionSample) error
	ListRecentByAccount(dbc dbctx.Context, accountID uint, since time.Time) ([]*types.EmotionSample, error)
	StatsByVideo(dbc dbctx.Context) ([]types.VideoEmotionStat, error)
	StatsByAccountVideo(dbc dbctx.Context) ([]types.AccountVideoEmotionStat, error)
	DeleteByVideo(dbc dbctx.Context, videoID uint) (int64, error)
}

type emotionSampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmotionSampleRepo(db *gorm.DB, baseLog *logger.Logger) EmotionSampleRepo {
	return &emotionSampleRepo{db: db, log: baseLog.With("repo", "EmotionSampleRepo")}
}

func (r *emotionSampleRepo) Create(dbc dbctx.Context, sample *types.EmotionSample) error {
	return dbc.DB(r.db).Create(sample).Error
}

// ListRecentByAccount returns samples recorded at or after since, most recent
// first.
func (r *emotionSampleRepo) ListRecentByAccount(dbc dbctx.Context, accountID uint, since time.Time) ([]*types.EmotionSample, error) {
	var out []*types.EmotionSample
	err := dbc.DB(r.db).
		Where("account_id = ? AND recorded_at >= ?", accountID, since.UTC()).
		Order("recorded_at DESC").
		Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

const avgEmotionColumns = `AVG(emotion_sample.happy) AS avg_happy,
	AVG(emotion_sample.sad) AS avg_sad,
	AVG(emotion_sample.angry) AS avg_angry,
	AVG(emotion_sample.surprised) AS avg_surprised,
	AVG(emotion_sample.neutral) AS avg_neutral`

func (r *emotionSampleRepo) StatsByVideo(dbc dbctx.Context) ([]types.VideoEmotionStat, error) {
	var out []types.VideoEmotionStat
	err := dbc.DB(r.db).
		Table("video").
		Select("video.id AS video_id, video.title AS title, " + avgEmotionColumns).
		Joins("JOIN emotion_sample ON emotion_sample.video_id = video.id").
		Group("video.id, video.title").
		Order("video.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *emotionSampleRepo) StatsByAccountVideo(dbc dbctx.Context) ([]types.AccountVideoEmotionStat, error) {
	var out []types.AccountVideoEmotionStat
	err := dbc.DB(r.db).
		Table("emotion_sample").
		Select(`account.id AS account_id, account.username AS username, account.warning_level AS warning_level,
			video.id AS video_id, video.title AS title, ` + avgEmotionColumns + `,
			COUNT(emotion_sample.id) AS total_reactions`).
		Joins("JOIN account ON account.id = emotion_sample.account_id").
		Joins("JOIN video ON video.id = emotion_sample.video_id").
		Group("account.id, account.username, account.warning_level, video.id, video.title").
		Order("account.id ASC").
		Order("video.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *emotionSampleRepo) DeleteByVideo(dbc dbctx.Context, videoID uint) (int64, error) {
	res := dbc.DB(r.db).Where("video_id = ?", videoID).Delete(&types.EmotionSample{})
	return res.RowsAffected, res.Error
}
