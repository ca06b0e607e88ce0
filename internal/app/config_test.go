package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

func TestLoadConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "port: 9000\nmedia_storage: gcs\nmedia_gcs_bucket: clips\ncors_allowed_origins:\n  - https://a.example\n  - https://b.example\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7000")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL_SECONDS", "60")

	cfg := LoadConfig(logger.Nop())

	if cfg.Port != "7000" {
		t.Fatalf("env should win over file: port=%q", cfg.Port)
	}
	if cfg.MediaStorage != MediaStorageGCS || cfg.GCS.Bucket != "clips" {
		t.Fatalf("file values not applied: storage=%q bucket=%q", cfg.MediaStorage, cfg.GCS.Bucket)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.SessionSecret != "s3cret" || cfg.SessionTTL != time.Minute {
		t.Fatalf("session config: secret=%q ttl=%s", cfg.SessionSecret, cfg.SessionTTL)
	}
}

func TestLoadConfigGeneratesSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	a := LoadConfig(logger.Nop())
	b := LoadConfig(logger.Nop())
	if a.SessionSecret == "" || a.SessionSecret == b.SessionSecret {
		t.Fatalf("expected a fresh random secret per load")
	}
	if a.MaxUploadBytes != 512<<20 {
		t.Fatalf("max upload: got=%d", a.MaxUploadBytes)
	}
}
