// Package view renders the embedded HTML pages.  Every page template defines
// a "content" block that is executed inside layout.html.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"rating":  ratingText,
	"ranking": rankingText,
	"text":    textOrEmpty,
}

// New parses layout.html together with each page template.
func New() (*Renderer, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := path.Base(f)
		t, err := template.New(name).Funcs(Funcs).ParseFS(templateFS, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the layout with the page named name.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func ratingText(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func rankingText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func textOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
