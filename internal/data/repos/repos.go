package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos/account"
	"github.com/yungbote/shortsview-backend/internal/data/repos/analytics"
	"github.com/yungbote/shortsview-backend/internal/data/repos/catalog"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type AccountRepo = account.AccountRepo
type SessionRepo = account.SessionRepo

type VideoRepo = catalog.VideoRepo

type ViewEventRepo = analytics.ViewEventRepo
type EmotionSampleRepo = analytics.EmotionSampleRepo
type WarningEventRepo = analytics.WarningEventRepo

func NewAccountRepo(db *gorm.DB, log *logger.Logger) AccountRepo {
	return account.NewAccountRepo(db, log)
}

func NewSessionRepo(db *gorm.DB, log *logger.Logger) SessionRepo {
	return account.NewSessionRepo(db, log)
}

func NewVideoRepo(db *gorm.DB, log *logger.Logger) VideoRepo {
	return catalog.NewVideoRepo(db, log)
}

func NewViewEventRepo(db *gorm.DB, log *logger.Logger) ViewEventRepo {
	return analytics.NewViewEventRepo(db, log)
}

func NewEmotionSampleRepo(db *gorm.DB, log *logger.Logger) EmotionSampleRepo {
	return analytics.NewEmotionSampleRepo(db, log)
}

func NewWarningEventRepo(db *gorm.DB, log *logger.Logger) WarningEventRepo {
	return analytics.NewWarningEventRepo(db, log)
}
