package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/shortsview-backend/internal/platform/gcp"
	"github.com/yungbote/shortsview-backend/internal/platform/localmedia"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
	"github.com/yungbote/shortsview-backend/internal/services"
)

var (
	newGCSMediaStore   = gcp.NewMediaStore
	newLocalMediaStore = localmedia.New
)

type StorageProviderBootstrapErrorCode string

const (
	StorageProviderBootstrapErrorInvalidMode   StorageProviderBootstrapErrorCode = "invalid_mode"
	StorageProviderBootstrapErrorInvalidConfig StorageProviderBootstrapErrorCode = "invalid_config"
	StorageProviderBootstrapErrorConnectFailed StorageProviderBootstrapErrorCode = "connect_failed"
)

type StorageProviderBootstrapError struct {
	Code  StorageProviderBootstrapErrorCode
	Mode  string
	Cause error
}

func (e *StorageProviderBootstrapError) Error() string {
	if e == nil {
		return "media storage bootstrap failed"
	}
	return fmt.Sprintf("media storage bootstrap failed (code=%s mode=%q): %v", e.Code, e.Mode, e.Cause)
}

func (e *StorageProviderBootstrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// MediaProvider is the resolved media backend. Dir is set only for local
// storage, where the router serves the files itself.
type MediaProvider struct {
	Store  services.MediaStore
	Dir    string
	Prefix string
	Close  func() error
}

func resolveMediaStore(ctx context.Context, log *logger.Logger, cfg Config) (MediaProvider, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.MediaStorage))
	log.Info("Selecting media storage provider", "mode", mode)

	switch mode {
	case MediaStorageLocal, "":
		store, err := newLocalMediaStore(log, cfg.UploadDir, cfg.MediaURLPrefix)
		if err != nil {
			err = &StorageProviderBootstrapError{Code: StorageProviderBootstrapErrorConnectFailed, Mode: MediaStorageLocal, Cause: err}
			log.Error("Media storage provider bootstrap failed", "mode", MediaStorageLocal, "error", err)
			return MediaProvider{}, err
		}
		return MediaProvider{
			Store:  store,
			Dir:    store.Dir(),
			Prefix: store.URLPrefix(),
			Close:  func() error { return nil },
		}, nil
	case MediaStorageGCS:
		store, err := newGCSMediaStore(ctx, log, cfg.GCS)
		if err != nil {
			classified := classifyStorageProviderBootstrapError(mode, err)
			log.Error(
				"Media storage provider bootstrap failed",
				"mode", mode,
				"bucket", cfg.GCS.Bucket,
				"emulator_host", cfg.GCS.EmulatorHost,
				"error_code", storageProviderBootstrapErrorCode(classified),
				"error", classified,
			)
			return MediaProvider{}, classified
		}
		return MediaProvider{Store: store, Close: store.Close}, nil
	default:
		err := &StorageProviderBootstrapError{
			Code:  StorageProviderBootstrapErrorInvalidMode,
			Mode:  mode,
			Cause: fmt.Errorf("unsupported MEDIA_STORAGE %q", mode),
		}
		log.Error("Media storage provider selection failed", "mode", mode, "error_code", err.Code, "error", err)
		return MediaProvider{}, err
	}
}

func classifyStorageProviderBootstrapError(mode string, err error) error {
	var cfgErr *gcp.ConfigError
	if errors.As(err, &cfgErr) {
		return &StorageProviderBootstrapError{Code: StorageProviderBootstrapErrorInvalidConfig, Mode: mode, Cause: err}
	}
	return &StorageProviderBootstrapError{Code: StorageProviderBootstrapErrorConnectFailed, Mode: mode, Cause: err}
}

func storageProviderBootstrapErrorCode(err error) StorageProviderBootstrapErrorCode {
	var bootstrapErr *StorageProviderBootstrapError
	if errors.As(err, &bootstrapErr) && bootstrapErr.Code != "" {
		return bootstrapErr.Code
	}
	return StorageProviderBootstrapErrorConnectFailed
}
