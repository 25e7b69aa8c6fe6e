package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/km-arc/go-jsvalidation/framework/jsvalidation"
)

//go:embed views
var bundledViews embed.FS

// ErrViewNotFound is returned when no layer holds the requested template.
var ErrViewNotFound = errors.New("http: view not found")

// ── View / Templates ─────────────────────────────────────────────────────────

// ViewEngine renders html/template files looked up across layers. The first
// layer holding a template wins; the bundled jsvalidation scripts are
// always the last layer, so an app can override "jsvalidation/bootstrap"
// by shipping its own copy.
type ViewEngine struct {
	layers []fs.FS
	ext    string
}

// NewViewEngine creates a ViewEngine. ext is the file extension (e.g.
// ".html"); layers are searched in order before the bundled views.
//
//	views := gohttp.NewViewEngine(".html", os.DirFS("./resources/views"))
func NewViewEngine(ext string, layers ...fs.FS) *ViewEngine {
	bundled, _ := fs.Sub(bundledViews, "views")
	return &ViewEngine{layers: append(append([]fs.FS(nil), layers...), bundled), ext: ext}
}

// Render executes the named template (and any partials it pulls in through
// the extra names) and returns the output.
//
//	html, err := engine.Render("home", map[string]any{"title": "Home"})
func (ve *ViewEngine) Render(name string, data any, partials ...string) (template.HTML, error) {
	tmpl, err := ve.parse(append([]string{name}, partials...)...)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("http: render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// RenderScript renders the client validation script for a jsvalidation view.
func (ve *ViewEngine) RenderScript(view string, data jsvalidation.ViewData) (template.HTML, error) {
	return ve.Render("jsvalidation/"+view, data)
}

var _ jsvalidation.Renderer = (*ViewEngine)(nil)

// View renders a template file with data.
//
//	engine.View(res.Raw(), "register", map[string]any{"title": "Sign up"})
func (ve *ViewEngine) View(w http.ResponseWriter, name string, data any) {
	ve.write(w, name, data)
}

// ViewWithLayout renders a template with a base layout. The view defines
// the blocks the layout pulls in.
func (ve *ViewEngine) ViewWithLayout(w http.ResponseWriter, layout, name string, data any) {
	ve.write(w, layout, data, name)
}

func (ve *ViewEngine) write(w http.ResponseWriter, name string, data any, partials ...string) {
	out, err := ve.Render(name, data, partials...)
	switch {
	case errors.Is(err, ErrViewNotFound):
		http.Error(w, "Template not found: "+name, http.StatusInternalServerError)
		return
	case err != nil:
		http.Error(w, "Template render error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(out))
}

// parse loads every name into one template set.
func (ve *ViewEngine) parse(names ...string) (*template.Template, error) {
	root := template.New("")
	for _, name := range names {
		src, err := ve.read(name)
		if err != nil {
			return nil, err
		}
		if _, err := root.New(name).Parse(string(src)); err != nil {
			return nil, fmt.Errorf("http: parse %s: %w", name, err)
		}
	}
	return root, nil
}

func (ve *ViewEngine) read(name string) ([]byte, error) {
	file := name + ve.ext
	for _, layer := range ve.layers {
		src, err := fs.ReadFile(layer, file)
		if err == nil {
			return src, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("http: read %s: %w", file, err)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrViewNotFound, name)
}
