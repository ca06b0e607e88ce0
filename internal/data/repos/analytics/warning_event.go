package analytics

import (
	"gorm.io/gorm"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type WarningEventRepo interface {
	Create(dbc dbctx.Context, ev *types.WarningEvent) error
	ListByAccount(dbc dbctx.Context, accountID uint) ([]*types.WarningEvent, error)
}

type warningEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWarningEventRepo(db *gorm.DB, baseLog *logger.Logger) WarningEventRepo {
	return &warningEventRepo{db: db, log: baseLog.With("repo", "WarningEventRepo")}
}

func (r *warningEventRepo) Create(dbc dbctx.Context, ev *types.WarningEvent) error {
	return dbc.DB(r.db).Create(ev).Error
}

func (r *warningEventRepo) ListByAccount(dbc dbctx.Context, accountID uint) ([]*types.WarningEvent, error) {
	var out []*types.WarningEvent
	if err := dbc.DB(r.db).
		Where("account_id = ?", accountID).
		Order("raised_at ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
