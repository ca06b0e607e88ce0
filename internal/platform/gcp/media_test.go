package gcp

import (
	"errors"
	"testing"

	"github.com/yungbote/shortsview-backend/internal/platform/logger"
)

func TestMediaConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  MediaConfig
		code ConfigErrorCode
	}{
		{name: "ok", cfg: MediaConfig{Bucket: "videos"}},
		{name: "ok emulator", cfg: MediaConfig{Bucket: "videos", EmulatorHost: "http://fake-gcs:4443"}},
		{name: "missing bucket", cfg: MediaConfig{Bucket: "  "}, code: ConfigErrorMissingBucket},
		{name: "relative emulator host", cfg: MediaConfig{Bucket: "videos", EmulatorHost: "fake-gcs:4443"}, code: ConfigErrorInvalidEmulatorHost},
		{name: "relative public base", cfg: MediaConfig{Bucket: "videos", PublicBaseURL: "/media"}, code: ConfigErrorInvalidPublicBase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.code == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cerr.Code != tc.code {
				t.Fatalf("code: want=%q got=%q", tc.code, cerr.Code)
			}
		})
	}
}

func TestMediaStoreURL(t *testing.T) {
	log := logger.Nop()
	cases := []struct {
		name string
		cfg  MediaConfig
		key  string
		want string
	}{
		{
			name: "gcs default",
			cfg:  MediaConfig{Bucket: "videos"},
			key:  "clip.mp4",
			want: "https://storage.googleapis.com/videos/clip.mp4",
		},
		{
			name: "cdn wins",
			cfg:  MediaConfig{Bucket: "videos", CDNDomain: "cdn.example.com", EmulatorHost: "http://fake-gcs:4443"},
			key:  "/clip.mp4",
			want: "https://cdn.example.com/clip.mp4",
		},
		{
			name: "emulator",
			cfg:  MediaConfig{Bucket: "videos", EmulatorHost: "http://fake-gcs:4443/"},
			key:  "my clip.mp4",
			want: "http://fake-gcs:4443/storage/v1/b/videos/o/my%20clip.mp4?alt=media",
		},
		{
			name: "emulator with public override",
			cfg:  MediaConfig{Bucket: "videos", EmulatorHost: "http://fake-gcs:4443", PublicBaseURL: "http://localhost:4443"},
			key:  "clip.mp4",
			want: "http://localhost:4443/storage/v1/b/videos/o/clip.mp4?alt=media",
		},
		{
			name: "public base",
			cfg:  MediaConfig{Bucket: "videos", PublicBaseURL: "https://media.example.com/"},
			key:  "clip.mp4",
			want: "https://media.example.com/videos/clip.mp4",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ms := newMediaStore(log, nil, tc.cfg)
			if got := ms.URL(tc.key); got != tc.want {
				t.Fatalf("URL: want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestContentTypeForKey(t *testing.T) {
	for key, want := range map[string]string{
		"a.mp4": "video/mp4",
		"A.MOV": "video/quicktime",
		"b.avi": "video/x-msvideo",
		"c.txt": "",
		"":      "",
	} {
		if got := contentTypeForKey(key); got != want {
			t.Fatalf("contentTypeForKey(%q): want=%q got=%q", key, want, got)
		}
	}
}
