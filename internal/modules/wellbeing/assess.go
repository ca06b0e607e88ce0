package wellbeing

import (
	"time"

	types "github.com/yungbote/shortsview-backend/internal/domain"
)

const (
	// Window is how far back samples count toward an assessment.
	Window = 30 * time.Minute

	// NegativeThreshold applies separately to the mean angry and mean sad scores.
	NegativeThreshold = 0.4
	// ConcentrationThreshold applies to the mean neutral score.
	ConcentrationThreshold = 0.6

	// ReasonNegativeEmotions is reported when mean angry or mean sad is too high.
	ReasonNegativeEmotions = "High levels of negative emotions detected"
	// ReasonLowConcentration is reported when mean neutral is too high.
	ReasonLowConcentration = "Decreased concentration detected"
)

// Assessment is the outcome of averaging one window of samples.
type Assessment struct {
	Samples     int
	MeanAngry   float64
	MeanSad     float64
	MeanNeutral float64

	HighNegativeEmotions bool
	LowConcentration     bool
	// Reasons lists the triggered flags, negative emotions first.
	Reasons []string
}

// Warn reports whether either flag was raised.
func (a Assessment) Warn() bool {
	return a.HighNegativeEmotions || a.LowConcentration
}

// WindowStart is the earliest recorded_at included in an assessment made at now.
func WindowStart(now time.Time) time.Time {
	return now.Add(-Window)
}

// Assess averages the angry, sad and neutral scores over samples and applies
// the thresholds. The comparisons are strict. An empty slice yields the zero
// Assessment, which never warns.
func Assess(samples []types.EmotionScores) Assessment {
	var a Assessment
	if len(samples) == 0 {
		return a
	}
	var angry, sad, neutral float64
	for _, s := range samples {
		angry += s.Angry
		sad += s.Sad
		neutral += s.Neutral
	}
	n := float64(len(samples))
	a.Samples = len(samples)
	a.MeanAngry = angry / n
	a.MeanSad = sad / n
	a.MeanNeutral = neutral / n

	if a.MeanAngry > NegativeThreshold || a.MeanSad > NegativeThreshold {
		a.HighNegativeEmotions = true
		a.Reasons = append(a.Reasons, ReasonNegativeEmotions)
	}
	if a.MeanNeutral > ConcentrationThreshold {
		a.LowConcentration = true
		a.Reasons = append(a.Reasons, ReasonLowConcentration)
	}
	return a
}
