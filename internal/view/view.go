package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

const (
	templatePattern = "templates/*.html"
	templateExt     = ".html"
	mediaTypeHTML   = "text/html"
)

var ErrTemplateNotFound = errors.New("view: template not found")

//go:embed templates/*.html
var embedded embed.FS

// Renderer executes named HTML templates. It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
	minifier  *minify.M
}

type Option func(*Renderer)

// WithMinify strips whitespace and comments from rendered pages.
func WithMinify(enabled bool) Option {
	return func(r *Renderer) {
		if !enabled {
			r.minifier = nil
			return
		}
		m := minify.New()
		m.AddFunc(mediaTypeHTML, html.Minify)
		m.AddFunc("text/css", css.Minify)
		r.minifier = m
	}
}

// New parses the templates bundled with the binary.
func New(opts ...Option) (*Renderer, error) {
	return NewFromFS(embedded, templatePattern, opts...)
}

// NewFromFS parses every file in fsys matching pattern. Templates are
// addressed by file name without the .html extension.
func NewFromFS(fsys fs.FS, pattern string, opts ...Option) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates %q: %w", pattern, err)
	}

	r := &Renderer{templates: tmpl}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Render executes the named template with data and writes the page to w.
// Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl := r.templates.Lookup(name + templateExt)
	if tmpl == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	if r.minifier == nil {
		_, err := buf.WriteTo(w)
		return err
	}

	var out bytes.Buffer
	if err := r.minifier.Minify(mediaTypeHTML, &out, &buf); err != nil {
		return fmt.Errorf("minify template %s: %w", name, err)
	}

	_, err := out.WriteTo(w)
	return err
}
