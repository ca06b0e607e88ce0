package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/shortsview-backend/internal/domain"
)

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.Account {
	tb.Helper()
	a := &types.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "pw",
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedAdmin(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.Account {
	tb.Helper()
	a := &types.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "pw",
		IsAdmin:      true,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed admin: %v", err)
	}
	return a
}

func SeedVideo(tb testing.TB, ctx context.Context, tx *gorm.DB, title string, views int) *types.Video {
	tb.Helper()
	v := &types.Video{
		Title:      title,
		Filename:   title + ".mp4",
		UploadDate: time.Now().UTC(),
		Views:      views,
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed video: %v", err)
	}
	return v
}

func SeedViewEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, accountID, videoID uint, duration float64, completed bool) *types.ViewEvent {
	tb.Helper()
	ev := &types.ViewEvent{
		AccountID:     accountID,
		VideoID:       videoID,
		WatchDuration: duration,
		Completed:     completed,
		WatchDate:     time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(ev).Error; err != nil {
		tb.Fatalf("seed view event: %v", err)
	}
	return ev
}

func SeedEmotionSample(tb testing.TB, ctx context.Context, tx *gorm.DB, accountID, videoID uint, at time.Time, scores types.EmotionScores) *types.EmotionSample {
	tb.Helper()
	s := &types.EmotionSample{
		AccountID:     accountID,
		VideoID:       videoID,
		Timestamp:     1.5,
		RecordedAt:    at.UTC(),
		EmotionScores: scores,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed emotion sample: %v", err)
	}
	return s
}

func CountRows(tb testing.TB, ctx context.Context, tx *gorm.DB, model interface{}, where string, args ...interface{}) int64 {
	tb.Helper()
	var n int64
	q := tx.WithContext(ctx).Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		tb.Fatalf("count rows: %v", err)
	}
	return n
}

func PtrTime(v time.Time) *time.Time { return &v }
