package domain

import (
	"github.com/yungbote/shortsview-backend/internal/domain/account"
	"github.com/yungbote/shortsview-backend/internal/domain/analytics"
	"github.com/yungbote/shortsview-backend/internal/domain/catalog"
)

type Account = account.Account
type Session = account.Session

type Video = catalog.Video

type ViewEvent = analytics.ViewEvent
type EmotionSample = analytics.EmotionSample
type EmotionScores = analytics.EmotionScores
type WarningEvent = analytics.WarningEvent

type ViewTotals = analytics.ViewTotals
type VideoViewStat = analytics.VideoViewStat
type AccountViewStat = analytics.AccountViewStat
type VideoEmotionStat = analytics.VideoEmotionStat
type AccountVideoEmotionStat = analytics.AccountVideoEmotionStat

// Models lists every persisted type in migration order.
func Models() []interface{} {
	return []interface{}{
		&account.Account{},
		&account.Session{},
		&catalog.Video{},
		&analytics.ViewEvent{},
		&analytics.EmotionSample{},
		&analytics.WarningEvent{},
	}
}
