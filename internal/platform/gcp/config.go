package gcp

import (
	"fmt"
	"net/url"
	"strings"

	"google.golang.org/api/option"
)

type StorageMode string

const (
	StorageModeGCS         StorageMode = "gcs"
	StorageModeGCSEmulator StorageMode = "gcs_emulator"
)

// MediaConfig describes the bucket holding uploaded videos.
type MediaConfig struct {
	Bucket    string
	CDNDomain string
	// EmulatorHost switches the client to a fake-gcs style emulator.
	EmulatorHost string
	// PublicBaseURL overrides the host used in public object URLs.
	PublicBaseURL string
	// Credentials is a service account JSON document or a path to one.
	Credentials string
}

func (cfg MediaConfig) Mode() StorageMode {
	if strings.TrimSpace(cfg.EmulatorHost) != "" {
		return StorageModeGCSEmulator
	}
	return StorageModeGCS
}

type ConfigErrorCode string

const (
	ConfigErrorMissingBucket       ConfigErrorCode = "missing_bucket"
	ConfigErrorInvalidEmulatorHost ConfigErrorCode = "invalid_emulator_host"
	ConfigErrorInvalidPublicBase   ConfigErrorCode = "invalid_public_base_url"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid media storage config"
	}
	switch e.Code {
	case ConfigErrorMissingBucket:
		return "MEDIA_STORAGE=gcs requires MEDIA_GCS_BUCKET to be set"
	case ConfigErrorInvalidEmulatorHost:
		return fmt.Sprintf("invalid STORAGE_EMULATOR_HOST=%q; expected absolute URL like http://fake-gcs:4443", e.Value)
	case ConfigErrorInvalidPublicBase:
		return fmt.Sprintf("invalid MEDIA_PUBLIC_BASE_URL=%q; expected absolute URL like http://localhost:4443", e.Value)
	default:
		return "invalid media storage config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func (cfg MediaConfig) Validate() error {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return &ConfigError{Code: ConfigErrorMissingBucket}
	}
	if host := strings.TrimSpace(cfg.EmulatorHost); host != "" && !absoluteURL(host) {
		return &ConfigError{Code: ConfigErrorInvalidEmulatorHost, Value: host}
	}
	if base := strings.TrimSpace(cfg.PublicBaseURL); base != "" && !absoluteURL(base) {
		return &ConfigError{Code: ConfigErrorInvalidPublicBase, Value: base}
	}
	return nil
}

func absoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && strings.TrimSpace(u.Scheme) != "" && strings.TrimSpace(u.Host) != ""
}

// ClientOptions turns an inline JSON key or a key file path into client
// options. Empty means application default credentials.
func ClientOptions(creds string) []option.ClientOption {
	creds = strings.TrimSpace(creds)
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
