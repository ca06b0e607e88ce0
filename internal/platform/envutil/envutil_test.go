package envutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSourcePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "PORT: 9090\nmax_upload_mb: 64\nCORS_ALLOWED_ORIGINS:\n  - http://a.test\n  - http://b.test\nCOOKIE_SECURE: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	file, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	t.Setenv("PORT", "7070")
	src := NewSource(nil, file)

	if got := src.String("PORT", "8080"); got != "7070" {
		t.Fatalf("env should win over file: got=%q", got)
	}
	if got := src.Int("MAX_UPLOAD_MB", 10); got != 64 {
		t.Fatalf("file value should win over default: got=%d", got)
	}
	if got := src.Int("SESSION_TTL_SECONDS", 3600); got != 3600 {
		t.Fatalf("default expected: got=%d", got)
	}
	if got := src.Bool("COOKIE_SECURE", false); !got {
		t.Fatalf("expected COOKIE_SECURE true from file")
	}
	want := []string{"http://a.test", "http://b.test"}
	if got := src.List("CORS_ALLOWED_ORIGINS", nil); !reflect.DeepEqual(got, want) {
		t.Fatalf("List: got=%v want=%v", got, want)
	}
}

func TestSourceBadValuesFallBack(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_BOOL", "maybe")
	t.Setenv("SOME_FLOAT", "x")
	src := NewSource(nil, nil)
	if got := src.Int("SOME_INT", 5); got != 5 {
		t.Fatalf("Int: got=%d", got)
	}
	if got := src.Bool("SOME_BOOL", true); !got {
		t.Fatalf("Bool: expected default")
	}
	if got := src.Float("SOME_FLOAT", 0.25); got != 0.25 {
		t.Fatalf("Float: got=%v", got)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
