package catalog

import (
	"path"
	"strings"
	"time"
)

// AllowedExtensions lists the accepted upload extensions, lower case, no dot.
var AllowedExtensions = map[string]struct{}{
	"mp4": {},
	"mov": {},
	"avi": {},
}

type Video struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string    `gorm:"column:title;size:100;not null" json:"title"`
	Filename   string    `gorm:"column:filename;size:200;not null" json:"filename"`
	UploadDate time.Time `gorm:"column:upload_date;not null;index" json:"upload_date"`
	Views      int       `gorm:"column:views;not null;default:0" json:"views"`

	// URL is resolved from the media store at read time.
	URL string `gorm:"-" json:"url,omitempty"`
}

func (Video) TableName() string { return "video" }

// AllowedFile reports whether name carries one of AllowedExtensions.
func AllowedFile(name string) bool {
	if !strings.Contains(name, ".") {
		return false
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	_, ok := AllowedExtensions[ext]
	return ok
}
