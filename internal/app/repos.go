package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type Repos struct {
	Account       repos.AccountRepo
	Session       repos.SessionRepo
	Video         repos.VideoRepo
	ViewEvent     repos.ViewEventRepo
	EmotionSample repos.EmotionSampleRepo
	WarningEvent  repos.WarningEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Account:       repos.NewAccountRepo(db, log),
		Session:       repos.NewSessionRepo(db, log),
		Video:         repos.NewVideoRepo(db, log),
		ViewEvent:     repos.NewViewEventRepo(db, log),
		EmotionSample: repos.NewEmotionSampleRepo(db, log),
		WarningEvent:  repos.NewWarningEventRepo(db, log),
	}
}
