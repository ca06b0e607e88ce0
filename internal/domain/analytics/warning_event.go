package analytics

import (
	"time"

	"gorm.io/datatypes"
)

// WarningEvent records each time the wellbeing check raised an account's
// warning level. Reasons is a JSON array of strings.
type WarningEvent struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID uint           `gorm:"column:account_id;not null;index" json:"account_id"`
	Level     int            `gorm:"column:level;not null" json:"level"`
	Reasons   datatypes.JSON `gorm:"column:reasons;not null" json:"reasons"`
	RaisedAt  time.Time      `gorm:"column:raised_at;not null;index" json:"raised_at"`
}

func (WarningEvent) TableName() string { return "warning_event" }
