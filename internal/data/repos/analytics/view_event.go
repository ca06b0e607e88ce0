package analytics

import (
	"gorm.io/gorm"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type ViewEventRepo interface {
	Create(dbc dbctx.Context, ev *types.ViewEvent) error
	Totals(dbc dbctx.Context) (types.ViewTotals, error)
	StatsByVideo(dbc dbctx.Context) ([]types.VideoViewStat, error)
	StatsByAccount(dbc dbctx.Context) ([]types.AccountViewStat, error)
	DeleteByVideo(dbc dbctx.Context, videoID uint) (int64, error)
}

type viewEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewViewEventRepo(db *gorm.DB, baseLog *logger.Logger) ViewEventRepo {
	return &viewEventRepo{db: db, log: baseLog.With("repo", "ViewEventRepo")}
}

func (r *viewEventRepo) Create(dbc dbctx.Context, ev *types.ViewEvent) error {
	return dbc.DB(r.db).Create(ev).Error
}

func (r *viewEventRepo) Totals(dbc dbctx.Context) (types.ViewTotals, error) {
	var out types.ViewTotals
	err := dbc.DB(r.db).
		Table("view_event").
		Select("COUNT(*) AS total_views, COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS total_completed").
		Scan(&out).Error
	return out, err
}

// StatsByVideo rolls view events up per video. Videos without events are left
// out.
func (r *viewEventRepo) StatsByVideo(dbc dbctx.Context) ([]types.VideoViewStat, error) {
	var out []types.VideoViewStat
	err := dbc.DB(r.db).
		Table("video").
		Select(`video.id AS video_id, video.title AS title, video.filename AS filename, video.views AS views,
			COUNT(view_event.id) AS view_count,
			AVG(view_event.watch_duration) AS avg_duration,
			SUM(CASE WHEN view_event.completed THEN 1 ELSE 0 END) AS completions`).
		Joins("JOIN view_event ON view_event.video_id = video.id").
		Group("video.id, video.title, video.filename, video.views").
		Order("video.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *viewEventRepo) StatsByAccount(dbc dbctx.Context) ([]types.AccountViewStat, error) {
	var out []types.AccountViewStat
	err := dbc.DB(r.db).
		Table("account").
		Select(`account.id AS account_id, account.username AS username, account.warning_level AS warning_level,
			COUNT(view_event.id) AS videos_watched,
			SUM(view_event.watch_duration) AS total_watch_time`).
		Joins("JOIN view_event ON view_event.account_id = account.id").
		Group("account.id, account.username, account.warning_level").
		Order("account.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *viewEventRepo) DeleteByVideo(dbc dbctx.Context, videoID uint) (int64, error) {
	res := dbc.DB(r.db).Where("video_id = ?", videoID).Delete(&types.ViewEvent{})
	return res.RowsAffected, res.Error
}
