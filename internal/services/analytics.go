package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/shortsview-backend/internal/data/repos"
	types "github.com/yungbote/shortsview-backend/internal/domain"
	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

type ViewDashboard struct {
	TotalViews     int64                   `json:"total_views"`
	TotalCompleted int64                   `json:"total_completed"`
	Videos         []types.VideoViewStat   `json:"video_stats"`
	Accounts       []types.AccountViewStat `json:"user_stats"`
}

type EmotionDashboard struct {
	Videos        []types.VideoEmotionStat        `json:"video_emotions"`
	AccountVideos []types.AccountVideoEmotionStat `json:"user_emotions"`
	// Warnings holds one entry per account in AccountVideos whose warning
	// level is above zero, in the same order.
	Warnings []AccountWarningHistory `json:"user_warnings"`
}

type WarningRecord struct {
	Level    int       `json:"level"`
	Reasons  []string  `json:"reasons"`
	RaisedAt time.Time `json:"raised_at"`
}

type AccountWarningHistory struct {
	AccountID    uint            `json:"user_id"`
	Username     string          `json:"username"`
	WarningLevel int             `json:"warning_level"`
	Warnings     []WarningRecord `json:"warnings"`
}

// AnalyticsService computes the admin dashboards on every call. The queries
// behind one dashboard run concurrently outside any transaction.
type AnalyticsService interface {
	ViewDashboard(ctx context.Context) (*ViewDashboard, error)
	EmotionDashboard(ctx context.Context) (*EmotionDashboard, error)
}

type analyticsService struct {
	log      *logger.Logger
	views    repos.ViewEventRepo
	samples  repos.EmotionSampleRepo
	warnings repos.WarningEventRepo
}

func NewAnalyticsService(
	log *logger.Logger,
	views repos.ViewEventRepo,
	samples repos.EmotionSampleRepo,
	warnings repos.WarningEventRepo,
) AnalyticsService {
	return &analyticsService{
		log:      log.With("service", "AnalyticsService"),
		views:    views,
		samples:  samples,
		warnings: warnings,
	}
}

func (as *analyticsService) ViewDashboard(ctx context.Context) (*ViewDashboard, error) {
	var (
		totals   types.ViewTotals
		videos   []types.VideoViewStat
		accounts []types.AccountViewStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = as.views.Totals(dbctx.New(gctx))
		if err != nil {
			return fmt.Errorf("view totals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		videos, err = as.views.StatsByVideo(dbctx.New(gctx))
		if err != nil {
			return fmt.Errorf("view stats by video: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		accounts, err = as.views.StatsByAccount(dbctx.New(gctx))
		if err != nil {
			return fmt.Errorf("view stats by account: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		as.log.Error("View dashboard failed", "error", err)
		return nil, err
	}
	return &ViewDashboard{
		TotalViews:     totals.TotalViews,
		TotalCompleted: totals.TotalCompleted,
		Videos:         nonNil(videos),
		Accounts:       nonNil(accounts),
	}, nil
}

func (as *analyticsService) EmotionDashboard(ctx context.Context) (*EmotionDashboard, error) {
	var (
		videos        []types.VideoEmotionStat
		accountVideos []types.AccountVideoEmotionStat
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		videos, err = as.samples.StatsByVideo(dbctx.New(gctx))
		if err != nil {
			return fmt.Errorf("emotion stats by video: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		accountVideos, err = as.samples.StatsByAccountVideo(dbctx.New(gctx))
		if err != nil {
			return fmt.Errorf("emotion stats by account and video: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		as.log.Error("Emotion dashboard failed", "error", err)
		return nil, err
	}

	histories, err := as.warningHistories(ctx, accountVideos)
	if err != nil {
		as.log.Error("Emotion dashboard failed", "error", err)
		return nil, err
	}
	return &EmotionDashboard{
		Videos:        nonNil(videos),
		AccountVideos: nonNil(accountVideos),
		Warnings:      nonNil(histories),
	}, nil
}

func (as *analyticsService) warningHistories(ctx context.Context, rows []types.AccountVideoEmotionStat) ([]AccountWarningHistory, error) {
	var out []AccountWarningHistory
	seen := map[uint]bool{}
	for _, row := range rows {
		if row.WarningLevel <= 0 || seen[row.AccountID] {
			continue
		}
		seen[row.AccountID] = true
		out = append(out, AccountWarningHistory{
			AccountID:    row.AccountID,
			Username:     row.Username,
			WarningLevel: row.WarningLevel,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range out {
		h := &out[i]
		g.Go(func() error {
			events, err := as.warnings.ListByAccount(dbctx.New(gctx), h.AccountID)
			if err != nil {
				return fmt.Errorf("warning events for account %d: %w", h.AccountID, err)
			}
			h.Warnings = make([]WarningRecord, 0, len(events))
			for _, ev := range events {
				rec := WarningRecord{Level: ev.Level, RaisedAt: ev.RaisedAt}
				if len(ev.Reasons) > 0 {
					if err := json.Unmarshal(ev.Reasons, &rec.Reasons); err != nil {
						return fmt.Errorf("decode reasons of warning event %d: %w", ev.ID, err)
					}
				}
				h.Warnings = append(h.Warnings, rec)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// nonNil keeps empty dashboards rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
