package account

import (
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type AccountRepo interface {
	Create(dbc dbctx.Context, acc *types.Account) (*types.Account, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Account, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.Account, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	IncrementWarningLevel(dbc dbctx.Context, id uint, at time.Time) (int, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return &accountRepo{db: db, log: baseLog.With("repo", "AccountRepo")}
}

func (r *accountRepo) Create(dbc dbctx.Context, acc *types.Account) (*types.Account, error) {
	if err := dbc.DB(r.db).Create(acc).Error; err != nil {
		return nil, err
	}
	return acc, nil
}

// GetByID returns nil, nil when no account has the id.
func (r *accountRepo) GetByID(dbc dbctx.Context, id uint) (*types.Account, error) {
	var out []*types.Account
	if err := dbc.DB(r.db).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *accountRepo) GetByUsername(dbc dbctx.Context, username string) (*types.Account, error) {
	var out []*types.Account
	if err := dbc.DB(r.db).Where("username = ?", username).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *accountRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.Account{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := dbc.DB(r.db).
		Model(&types.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// IncrementWarningLevel bumps warning_level in a single UPDATE and returns the
// new level. It returns 0, gorm.ErrRecordNotFound for an unknown id.
func (r *accountRepo) IncrementWarningLevel(dbc dbctx.Context, id uint, at time.Time) (int, error) {
	transaction := dbc.DB(r.db)
	res := transaction.
		Model(&types.Account{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"warning_level":     gorm.Expr("warning_level + ?", 1),
			"last_warning_date": at.UTC(),
			"updated_at":        at.UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	var level int
	if err := transaction.
		Model(&types.Account{}).
		Where("id = ?", id).
		Select("warning_level").
		Scan(&level).Error; err != nil {
		return 0, err
	}
	return level, nil
}
