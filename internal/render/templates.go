package render

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

const (
	baseTemplate  = "base.html"
	indexTemplate = "index.html"
	dayTemplate   = "day.html"
)

// TemplateNames lists the files a templates directory may override.
var TemplateNames = []string{baseTemplate, indexTemplate, dayTemplate}

// readTemplate prefers dir/name and falls back to the embedded copy.
func readTemplate(dir, name string) ([]byte, string, error) {
	if dir != "" {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		if !os.IsNotExist(err) {
			return nil, path, err
		}
	}
	data, err := defaultTemplates.ReadFile("templates/" + name)
	return data, "embedded:" + name, err
}

// parsePage parses the base layout together with one page template.
func parsePage(dir, page string) (*template.Template, error) {
	tmpl := template.New("journalsite")
	for _, name := range []string{baseTemplate, page} {
		data, source, err := readTemplate(dir, name)
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", source, err)
		}
		if _, err := tmpl.New(name).Parse(string(data)); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", source, err)
		}
	}
	if tmpl.Lookup("base") == nil || tmpl.Lookup("content") == nil {
		return nil, fmt.Errorf("template set for %s must define \"base\" and \"content\"", page)
	}
	return tmpl, nil
}
