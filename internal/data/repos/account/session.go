package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(dbc dbctx.Context, sess *types.Session) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Session, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{db: db, log: baseLog.With("repo", "SessionRepo")}
}

func (r *sessionRepo) Create(dbc dbctx.Context, sess *types.Session) error {
	return dbc.DB(r.db).Create(sess).Error
}

func (r *sessionRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Session, error) {
	var out []*types.Session
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *sessionRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	return dbc.DB(r.db).Where("id = ?", id).Delete(&types.Session{}).Error
}

func (r *sessionRepo) DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	res := dbc.DB(r.db).Where("expires_at <= ?", now.UTC()).Delete(&types.Session{})
	return res.RowsAffected, res.Error
}
