package templates

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoadDefinesEveryPage(t *testing.T) {
	tmpl, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, name := range []string{
		"login.html",
		"register.html",
		"index.html",
		"admin.html",
		"analytics.html",
		"emotion_analytics.html",
		"not_found.html",
	} {
		if tmpl.Lookup(name) == nil {
			t.Fatalf("template %q not defined", name)
		}
	}
}

func TestNotFoundRendersMessage(t *testing.T) {
	tmpl, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var buf bytes.Buffer
	data := struct {
		Title   string
		User    interface{}
		Flashes []struct{ Category, Text string }
		Message string
	}{Title: "Not found", Message: "Video <42> not found"}
	if err := tmpl.ExecuteTemplate(&buf, "not_found.html", data); err != nil {
		t.Fatalf("ExecuteTemplate: %v", err)
	}
	if !strings.Contains(buf.String(), "Video &lt;42&gt; not found") {
		t.Fatalf("expected escaped message in output:\n%s", buf.String())
	}
}
