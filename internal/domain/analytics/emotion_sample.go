package analytics

import (
	"encoding/json"
	"time"
)

// Emotion names accepted from the client.
const (
	EmotionHappy     = "happy"
	EmotionSad       = "sad"
	EmotionAngry     = "angry"
	EmotionSurprised = "surprised"
	EmotionNeutral   = "neutral"
)

// EmotionScores is one independent snapshot of detector output. Scores are
// stored as reported and never normalised against each other.
type EmotionScores struct {
	Happy     float64 `gorm:"column:happy;not null;default:0" json:"happy"`
	Sad       float64 `gorm:"column:sad;not null;default:0" json:"sad"`
	Angry     float64 `gorm:"column:angry;not null;default:0" json:"angry"`
	Surprised float64 `gorm:"column:surprised;not null;default:0" json:"surprised"`
	Neutral   float64 `gorm:"column:neutral;not null;default:0" json:"neutral"`
}

type EmotionSample struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID  uint      `gorm:"column:account_id;not null;index:idx_emotion_sample_account_recorded,priority:1" json:"account_id"`
	VideoID    uint      `gorm:"column:video_id;not null;index" json:"video_id"`
	Timestamp  float64   `gorm:"column:timestamp;not null" json:"timestamp"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null;index:idx_emotion_sample_account_recorded,priority:2" json:"recorded_at"`

	EmotionScores `gorm:"embedded"`
}

func (EmotionSample) TableName() string { return "emotion_sample" }

// ParseEmotionScores decodes a client payload leniently. Anything that is not
// a JSON object yields all zeros, and non-numeric values count as zero.
// Names must match exactly; any other key is ignored.
func ParseEmotionScores(raw json.RawMessage) EmotionScores {
	var s EmotionScores
	if len(raw) == 0 {
		return s
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return s
	}
	for k, v := range m {
		f, ok := v.(float64)
		if !ok {
			continue
		}
		s.set(k, f)
	}
	return s
}

func (s *EmotionScores) set(name string, v float64) {
	switch name {
	case EmotionHappy:
		s.Happy = v
	case EmotionSad:
		s.Sad = v
	case EmotionAngry:
		s.Angry = v
	case EmotionSurprised:
		s.Surprised = v
	case EmotionNeutral:
		s.Neutral = v
	}
}
