package templates

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed html/*.html
var files embed.FS

// Funcs are available to every page.
var Funcs = template.FuncMap{
	"num": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04")
	},
}

// Load parses the embedded pages. Each page is addressed by its file name,
// for example "index.html".
func Load() (*template.Template, error) {
	t, err := template.New("pages").Funcs(Funcs).ParseFS(files, "html/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}
