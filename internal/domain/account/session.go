package account

import (
	"time"

	"github.com/google/uuid"
)

// Session is the server side half of a login. The cookie token only carries
// its ID, so deleting the row (or the Redis key) ends the session.
type Session struct {
	ID        uuid.UUID `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"column:account_id;not null;index" json:"account_id"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Session) TableName() string { return "account_session" }

func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
