package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/shortsview-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return err
	}
	return ensureIndexes(db)
}

// Indexes the dashboard group-bys lean on; AutoMigrate only knows the
// single-column ones declared on the models.
func ensureIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_view_event_video_completed ON view_event(video_id, completed);`,
		`CREATE INDEX IF NOT EXISTS idx_emotion_sample_account_video ON emotion_sample(account_id, video_id);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
	}
	return nil
}
