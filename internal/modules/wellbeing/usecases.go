package wellbeing

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

// Warning is what the client sees when an evaluation raised the level.
type Warning struct {
	Level   int      `json:"level"`
	Reasons []string `json:"reasons"`
}

type UsecasesDeps struct {
	Log      *logger.Logger
	Accounts repos.AccountRepo
	Samples  repos.EmotionSampleRepo
	Warnings repos.WarningEventRepo
	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) *Usecases {
	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	deps.Log = deps.Log.With("module", "wellbeing")
	return &Usecases{deps: deps}
}

// Evaluate assesses the account's samples inside the window ending now and,
// when a flag trips, raises the warning level by one and records the event.
// It must run inside the caller's transaction so the sample that triggered it
// is visible. A nil Warning means nothing was raised.
func (u *Usecases) Evaluate(dbc dbctx.Context, accountID uint) (*Warning, Assessment, error) {
	now := u.deps.Now().UTC()

	recent, err := u.deps.Samples.ListRecentByAccount(dbc, accountID, WindowStart(now))
	if err != nil {
		return nil, Assessment{}, fmt.Errorf("load recent samples: %w", err)
	}
	scores := make([]types.EmotionScores, 0, len(recent))
	for _, s := range recent {
		scores = append(scores, s.EmotionScores)
	}
	a := Assess(scores)
	if !a.Warn() {
		return nil, a, nil
	}

	level, err := u.deps.Accounts.IncrementWarningLevel(dbc, accountID, now)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, a, fmt.Errorf("account %d: %w", accountID, pkgerrors.ErrNotFound)
	}
	if err != nil {
		return nil, a, fmt.Errorf("raise warning level: %w", err)
	}

	reasons, err := json.Marshal(a.Reasons)
	if err != nil {
		return nil, a, err
	}
	if err := u.deps.Warnings.Create(dbc, &types.WarningEvent{
		AccountID: accountID,
		Level:     level,
		Reasons:   datatypes.JSON(reasons),
		RaisedAt:  now,
	}); err != nil {
		return nil, a, fmt.Errorf("record warning event: %w", err)
	}

	u.deps.Log.Info("Warning level raised",
		"account_id", accountID,
		"level", level,
		"samples", a.Samples,
		"mean_angry", a.MeanAngry,
		"mean_sad", a.MeanSad,
		"mean_neutral", a.MeanNeutral,
	)
	return &Warning{Level: level, Reasons: append([]string(nil), a.Reasons...)}, a, nil
}
