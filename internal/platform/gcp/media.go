package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/shortsview-backend/internal/pkg/dbctx"
	pkgerrors "github.com/yungbote/shortsview-backend/internal/pkg/errors"
	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

// MediaStore keeps uploaded videos as objects in one GCS bucket, keyed by
// their sanitised filename.
type MediaStore struct {
	log           *logger.Logger
	client        *storage.Client
	bucket        string
	cdnDomain     string
	mode          StorageMode
	emulatorHost  string
	publicBaseURL string
}

func NewMediaStore(ctx context.Context, log *logger.Logger, cfg MediaConfig) (*MediaStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate media storage config: %w", err)
	}
	client, err := newStorageClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	ms := newMediaStore(log, client, cfg)
	ms.log.Info(
		"Media storage initialized",
		"mode", ms.mode,
		"bucket", ms.bucket,
		"cdn_domain", ms.cdnDomain,
		"public_base_url", ms.publicBaseURL,
	)
	return ms, nil
}

func newMediaStore(log *logger.Logger, client *storage.Client, cfg MediaConfig) *MediaStore {
	emulatorHost := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
	publicBase := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if publicBase == "" {
		publicBase = emulatorHost
	}
	return &MediaStore{
		log:           log.With("service", "GCSMediaStore"),
		client:        client,
		bucket:        strings.TrimSpace(cfg.Bucket),
		cdnDomain:     strings.TrimSpace(cfg.CDNDomain),
		mode:          cfg.Mode(),
		emulatorHost:  emulatorHost,
		publicBaseURL: publicBase,
	}
}

func newStorageClient(ctx context.Context, cfg MediaConfig) (*storage.Client, error) {
	if cfg.Mode() == StorageModeGCSEmulator {
		endpoint := strings.TrimRight(strings.TrimSpace(cfg.EmulatorHost), "/")
		_ = os.Setenv("STORAGE_EMULATOR_HOST", endpoint)
		return storage.NewClient(ctx, option.WithoutAuthentication())
	}
	opts := ClientOptions(cfg.Credentials)
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	return storage.NewClient(ctx, opts...)
}

func (ms *MediaStore) Save(dbc dbctx.Context, key string, file io.Reader) error {
	ctx, cancel := context.WithTimeout(dbc.Ctx, 2*time.Minute)
	defer cancel()

	w := ms.client.Bucket(ms.bucket).Object(key).NewWriter(ctx)
	if ct := contentTypeForKey(key); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return nil
}

func (ms *MediaStore) Delete(dbc dbctx.Context, key string) error {
	ctx, cancel := context.WithTimeout(dbc.Ctx, 30*time.Second)
	defer cancel()
	err := ms.client.Bucket(ms.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("GCS object %q: %w", key, pkgerrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to delete GCS object %q in bucket %q: %w", key, ms.bucket, err)
	}
	return nil
}

// URL returns the public address of key: the CDN when configured, the
// emulator or override base next, storage.googleapis.com otherwise.
func (ms *MediaStore) URL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if ms.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", ms.cdnDomain, key)
	}
	if ms.mode == StorageModeGCSEmulator && ms.publicBaseURL != "" {
		return fmt.Sprintf(
			"%s/storage/v1/b/%s/o/%s?alt=media",
			ms.publicBaseURL,
			url.PathEscape(ms.bucket),
			url.PathEscape(key),
		)
	}
	if ms.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", ms.publicBaseURL, ms.bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", ms.bucket, key)
}

func (ms *MediaStore) Close() error {
	if ms == nil || ms.client == nil {
		return nil
	}
	return ms.client.Close()
}

func contentTypeForKey(key string) string {
	s := strings.ToLower(strings.TrimSpace(key))
	switch {
	case strings.HasSuffix(s, ".mp4"), strings.HasSuffix(s, ".m4v"):
		return "video/mp4"
	case strings.HasSuffix(s, ".mov"):
		return "video/quicktime"
	case strings.HasSuffix(s, ".avi"):
		return "video/x-msvideo"
	case strings.HasSuffix(s, ".webm"):
		return "video/webm"
	default:
		return ""
	}
}
