// Package views renders the blog's HTML pages from embedded templates.
package views

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/Masterminds/sprig/v3"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// ErrResponseWrite marks a Render failure that happened after the status
// line was sent, so the caller can no longer answer with an error page.
var ErrResponseWrite = errors.New("failed to write response")

// Page template names.
const (
	PageIndex    = "index"
	PageDetail   = "detail"
	PageContact  = "contact"
	PageNotFound = "not_found"
	PageError    = "error"
)

var pages = []string{PageIndex, PageDetail, PageContact, PageNotFound, PageError}

// Options configures a Renderer.
type Options struct {
	SiteTitle string
	Minify    bool
}

// Renderer executes page templates inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
	minifier  *minify.M
}

// New parses every page template against the layout.
func New(opts Options) (*Renderer, error) {
	funcs := sprig.FuncMap()
	funcs["siteTitle"] = func() string { return opts.SiteTitle }

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		r.templates[page] = tmpl
	}

	if opts.Minify {
		r.minifier = minify.New()
		r.minifier.AddFunc("text/html", minhtml.Minify)
	}
	return r, nil
}

// Render writes the named page with the given status. The page is rendered
// into a buffer first so a template failure never leaves a half-written
// response.
func (v *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	tmpl, ok := v.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	body := buf.Bytes()
	if v.minifier != nil {
		if out, err := v.minifier.Bytes("text/html", body); err == nil {
			body = out
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseWrite, err)
	}
	return nil
}

// StaticHandler serves the embedded stylesheet and other assets under prefix.
func StaticHandler(prefix string) http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub)))
}
