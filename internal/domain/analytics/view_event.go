package analytics

import "time"

// ViewEvent is appended for every playback report. WatchDuration is in seconds.
type ViewEvent struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID     uint      `gorm:"column:account_id;not null;index" json:"account_id"`
	VideoID       uint      `gorm:"column:video_id;not null;index" json:"video_id"`
	WatchDuration float64   `gorm:"column:watch_duration;not null;default:0" json:"watch_duration"`
	Completed     bool      `gorm:"column:completed;not null;default:false" json:"completed"`
	WatchDate     time.Time `gorm:"column:watch_date;not null" json:"watch_date"`
}

func (ViewEvent) TableName() string { return "view_event" }

// NewViewThreshold is the watch duration below which a report counts as the
// start of a new view.
const NewViewThreshold = 1.0

// IsNewView reports whether a playback report with this duration starts a view.
func IsNewView(duration float64) bool {
	return duration < NewViewThreshold
}
