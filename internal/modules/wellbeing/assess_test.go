package wellbeing

import (
	"reflect"
	"testing"
	"time"

	types "github.com/yungbote/shortsview-backend/internal/domain"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name        string
		samples     []types.EmotionScores
		wantWarn    bool
		wantReasons []string
	}{
		{
			name:     "no samples",
			samples:  nil,
			wantWarn: false,
		},
		{
			name: "within thresholds",
			samples: []types.EmotionScores{
				{Angry: 0.4, Sad: 0.4, Neutral: 0.6},
				{Angry: 0.1, Sad: 0.2, Neutral: 0.3},
			},
			wantWarn: false,
		},
		{
			name: "angry above threshold",
			samples: []types.EmotionScores{
				{Angry: 0.5},
				{Angry: 0.5},
			},
			wantWarn:    true,
			wantReasons: []string{ReasonNegativeEmotions},
		},
		{
			name: "sad alone trips negative flag",
			samples: []types.EmotionScores{
				{Sad: 0.9},
				{Sad: 0.1},
			},
			wantWarn:    true,
			wantReasons: []string{ReasonNegativeEmotions},
		},
		{
			name:        "single neutral sample",
			samples:     []types.EmotionScores{{Neutral: 0.7}},
			wantWarn:    true,
			wantReasons: []string{ReasonLowConcentration},
		},
		{
			name:        "both flags keep negative first",
			samples:     []types.EmotionScores{{Angry: 0.5, Neutral: 0.7}},
			wantWarn:    true,
			wantReasons: []string{ReasonNegativeEmotions, ReasonLowConcentration},
		},
		{
			name: "mean below despite one spike",
			samples: []types.EmotionScores{
				{Angry: 1.0},
				{Angry: 0},
				{Angry: 0},
			},
			wantWarn: false,
		},
		{
			name:     "happy and surprised are ignored",
			samples:  []types.EmotionScores{{Happy: 1, Surprised: 1}},
			wantWarn: false,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Assess(tc.samples)
			if got.Warn() != tc.wantWarn {
				t.Fatalf("Warn: got=%v want=%v (%+v)", got.Warn(), tc.wantWarn, got)
			}
			if !reflect.DeepEqual(got.Reasons, tc.wantReasons) {
				t.Fatalf("Reasons: got=%v want=%v", got.Reasons, tc.wantReasons)
			}
			if got.Samples != len(tc.samples) {
				t.Fatalf("Samples: got=%d want=%d", got.Samples, len(tc.samples))
			}
		})
	}
}

func TestAssessMeans(t *testing.T) {
	got := Assess([]types.EmotionScores{
		{Angry: 0.2, Sad: 0.6, Neutral: 0.1},
		{Angry: 0.4, Sad: 0.0, Neutral: 0.5},
	})
	if got.MeanAngry < 0.2999 || got.MeanAngry > 0.3001 {
		t.Fatalf("MeanAngry: got=%v", got.MeanAngry)
	}
	if got.MeanSad < 0.2999 || got.MeanSad > 0.3001 {
		t.Fatalf("MeanSad: got=%v", got.MeanSad)
	}
	if got.MeanNeutral < 0.2999 || got.MeanNeutral > 0.3001 {
		t.Fatalf("MeanNeutral: got=%v", got.MeanNeutral)
	}
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	want := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	if got := WindowStart(now); !got.Equal(want) {
		t.Fatalf("WindowStart: got=%v want=%v", got, want)
	}
}
