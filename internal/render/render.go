// Package render executes the family history page layouts.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/Bitlatte/areyou/internal/model"
)

//go:embed layouts
var defaultLayouts embed.FS

// layoutFiles are parsed in order: the base layout, its partials, then the page.
var layoutFiles = []string{
	"base.html",
	"partials/metadata.html",
	"partials/contact.html",
	"partials/lightbox.html",
	"partials/record.html",
	"areyou.html",
}

// Renderer holds the parsed page templates.
type Renderer struct {
	templates *template.Template
}

// New parses the built-in layouts. A file with the same relative path under
// overrideDir replaces the built-in one; an empty overrideDir uses only the
// built-in layouts.
func New(overrideDir string) (*Renderer, error) {
	tmpl := template.New("areyou")
	for _, name := range layoutFiles {
		src, err := readLayout(overrideDir, name)
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.New(name).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("failed to parse layout '%s': %w", name, err)
		}
	}
	for _, name := range []string{"base", "content", "metadata", "contact", "lightbox", "record"} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("layout template %q is not defined", name)
		}
	}
	return &Renderer{templates: tmpl}, nil
}

func readLayout(overrideDir, name string) ([]byte, error) {
	if overrideDir != "" {
		src, err := os.ReadFile(filepath.Join(overrideDir, filepath.FromSlash(name)))
		if err == nil {
			return src, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read layout override '%s': %w", name, err)
		}
	}
	src, err := fs.ReadFile(defaultLayouts, path.Join("layouts", name))
	if err != nil {
		return nil, fmt.Errorf("built-in layout '%s': %w", name, err)
	}
	return src, nil
}

// Page writes the full family history page for data.
func (r *Renderer) Page(w io.Writer, data model.PageData) error {
	if err := r.templates.ExecuteTemplate(w, "base", data); err != nil {
		return fmt.Errorf("failed to execute page template: %w", err)
	}
	return nil
}
