package app

import (
	"context"

	"github.com/yungbote/shortsview-backend/internal/platform/logger"
	"github.com/yungbote/shortsview-backend/internal/services"
)

// seedAdmin creates the configured administrator on first start. Failures are
// logged and do not stop the server.
func seedAdmin(ctx context.Context, log *logger.Logger, auth services.AuthService, cfg Config) {
	created, err := auth.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Error("Failed to create admin account", "username", cfg.AdminUsername, "error", err)
		return
	}
	if created {
		log.Info("Created admin account", "username", cfg.AdminUsername)
	}
}
