package catalog

import (
	"gorm.io/gorm"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type VideoRepo interface {
	Create(dbc dbctx.Context, video *types.Video) (*types.Video, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Video, error)
	ListNewestFirst(dbc dbctx.Context) ([]*types.Video, error)
	ListAll(dbc dbctx.Context) ([]*types.Video, error)
	IncrementViews(dbc dbctx.Context, id uint) (int, error)
	Delete(dbc dbctx.Context, id uint) (int64, error)
}

type videoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoRepo(db *gorm.DB, baseLog *logger.Logger) VideoRepo {
	return &videoRepo{db: db, log: baseLog.With("repo", "VideoRepo")}
}

func (r *videoRepo) Create(dbc dbctx.Context, video *types.Video) (*types.Video, error) {
	if err := dbc.DB(r.db).Create(video).Error; err != nil {
		return nil, err
	}
	return video, nil
}

// GetByID returns nil, nil when the video does not exist.
func (r *videoRepo) GetByID(dbc dbctx.Context, id uint) (*types.Video, error) {
	var out []*types.Video
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *videoRepo) ListNewestFirst(dbc dbctx.Context) ([]*types.Video, error) {
	var out []*types.Video
	if err := dbc.DB(r.db).Order("upload_date DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *videoRepo) ListAll(dbc dbctx.Context) ([]*types.Video, error) {
	var out []*types.Video
	if err := dbc.DB(r.db).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// IncrementViews adds one to the counter in place and returns the new total.
// It returns 0, gorm.ErrRecordNotFound for an unknown id.
func (r *videoRepo) IncrementViews(dbc dbctx.Context, id uint) (int, error) {
	transaction := dbc.DB(r.db)
	res := transaction.
		Model(&types.Video{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	var views int
	if err := transaction.
		Model(&types.Video{}).
		Where("id = ?", id).
		Select("views").
		Scan(&views).Error; err != nil {
		return 0, err
	}
	return views, nil
}

func (r *videoRepo) Delete(dbc dbctx.Context, id uint) (int64, error) {
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Video{})
	return res.RowsAffected, res.Error
}
