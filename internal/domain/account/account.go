package account

import (
	"time"
)

type Account struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username        string     `gorm:"column:username;size:80;uniqueIndex;not null" json:"username"`
	Email           string     `gorm:"column:email;size:120;uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"column:password_hash;size:120;not null" json:"-"`
	IsAdmin         bool       `gorm:"column:is_admin;not null;default:false" json:"is_admin"`
	WarningLevel    int        `gorm:"column:warning_level;not null;default:0" json:"warning_level"`
	LastWarningDate *time.Time `gorm:"column:last_warning_date" json:"last_warning_date,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "account" }
