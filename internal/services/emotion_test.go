package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	"github.com/yungbote/shortsview-backend/internal/data/repos/testutil"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/modules/wellbeing"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
)

func TestTrackEmotion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	samples := repos.NewEmotionSampleRepo(db, log)
	wb := wellbeing.New(wellbeing.UsecasesDeps{
		Log:      log,
		Accounts: repos.NewAccountRepo(db, log),
		Samples:  samples,
		Warnings: repos.NewWarningEventRepo(db, log),
		Now:      clock,
	})
	svc := NewEmotionService(db, log, repos.NewVideoRepo(db, log), samples, wb, nil, clock)

	acc := testutil.SeedAccount(t, ctx, tx, "hana")
	video := testutil.SeedVideo(t, ctx, tx, "clip", 0)

	w, err := svc.TrackEmotion(dbc, acc.ID, video.ID, 1.0, types.EmotionScores{Happy: 0.8, Neutral: 0.2})
	if err != nil {
		t.Fatalf("TrackEmotion (calm): %v", err)
	}
	if w != nil {
		t.Fatalf("TrackEmotion (calm): expected no warning, got %+v", w)
	}

	// Mean angry over the window is (0 + 0.9) / 2 = 0.45.
	w, err = svc.TrackEmotion(dbc, acc.ID, video.ID, 2.0, types.EmotionScores{Angry: 0.9})
	if err != nil {
		t.Fatalf("TrackEmotion (angry): %v", err)
	}
	if w == nil {
		t.Fatalf("TrackEmotion (angry): expected a warning")
	}
	if w.Level != 1 || !reflect.DeepEqual(w.Reasons, []string{wellbeing.ReasonNegativeEmotions}) {
		t.Fatalf("TrackEmotion (angry): unexpected warning %+v", w)
	}

	var stored types.Account
	if err := tx.First(&stored, acc.ID).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	if stored.WarningLevel != 1 || stored.LastWarningDate == nil || !stored.LastWarningDate.Equal(now) {
		t.Fatalf("account not updated: %+v", stored)
	}
	if n := testutil.CountRows(t, ctx, tx, &types.EmotionSample{}, "account_id = ?", acc.ID); n != 2 {
		t.Fatalf("samples: got=%d want=2", n)
	}
	if n := testutil.CountRows(t, ctx, tx, &types.WarningEvent{}, "account_id = ?", acc.ID); n != 1 {
		t.Fatalf("warning events: got=%d want=1", n)
	}

	if _, err := svc.TrackEmotion(dbc, acc.ID, 777, 0, types.EmotionScores{}); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("TrackEmotion (unknown video): expected ErrNotFound, got %v", err)
	}
	if n := testutil.CountRows(t, ctx, tx, &types.EmotionSample{}, "video_id = ?", 777); n != 0 {
		t.Fatalf("unknown video must not get samples")
	}
}
