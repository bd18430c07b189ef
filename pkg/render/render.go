package render

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
)

// Renderer holds the page templates, parsed once at startup. A parse
// failure aborts startup rather than serving broken pages.
type Renderer struct {
	templates *template.Template
}

func Load(dir string) (*Renderer, error) {
	t, err := template.ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("parse templates in %s: %w", dir, err)
	}
	return &Renderer{templates: t}, nil
}

// HTML renders the named template with the page's view model.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return r.templates.ExecuteTemplate(w, name, data)
}
