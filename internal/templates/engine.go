// Package templates compiles and executes artifact templates. One Engine is
// built per run and handed to every renderer.
package templates

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"
	"time"

	rerrors "git.home.luguber.info/inful/publisher/internal/render/errors"
)

// LayoutBlock is the template name a layout invokes to place the page body.
const LayoutBlock = "content"

const layoutName = "layout"

// Options configures an Engine.
type Options struct {
	// Root resolves relative template paths.
	Root string
	// Layout is the optional base template wrapping page bodies.
	Layout string
	// Link maps a source path to its public link for the outputLink helper.
	Link func(string) string
	// Now is used for undated feed entries; defaults to time.Now.
	Now func() time.Time
}

// Engine holds the helper set and the parsed layout.
type Engine struct {
	root   string
	funcs  template.FuncMap
	layout *template.Template

	mu    sync.Mutex
	cache map[cacheKey]*Template
}

type cacheKey struct {
	path string
	wrap bool
}

// Template is a compiled artifact template.
type Template struct {
	name  string
	entry string
	t     *template.Template
}

// Name returns the template path it was loaded from.
func (t *Template) Name() string { return t.name }

// New builds an engine, reading and parsing the layout when one is configured.
func New(opts Options) (*Engine, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Link == nil {
		opts.Link = func(s string) string { return s }
	}
	e := &Engine{
		root:  opts.Root,
		funcs: helpers(opts.Link, opts.Now),
		cache: map[cacheKey]*Template{},
	}
	if opts.Layout != "" {
		body, err := e.read(opts.Layout)
		if err != nil {
			return nil, err
		}
		layout, err := template.New(layoutName).Funcs(e.funcs).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("%w: layout %s: %w", rerrors.ErrTemplateRender, opts.Layout, err)
		}
		e.layout = layout
	}
	return e, nil
}

// HasLayout reports whether page bodies are wrapped.
func (e *Engine) HasLayout() bool { return e.layout != nil }

// Load reads and compiles the template at path. With wrap set and a layout
// configured, the body is bound as the "content" block of a layout copy.
// Compiled templates are cached for the lifetime of the engine.
func (e *Engine) Load(path string, wrap bool) (*Template, error) {
	key := cacheKey{path: path, wrap: wrap && e.layout != nil}
	e.mu.Lock()
	if t, ok := e.cache[key]; ok {
		e.mu.Unlock()
		return t, nil
	}
	e.mu.Unlock()

	body, err := e.read(path)
	if err != nil {
		return nil, err
	}
	t, err := e.Compile(path, body, key.wrap)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[key] = t
	e.mu.Unlock()
	return t, nil
}

// Source returns the raw text of the template at path.
func (e *Engine) Source(path string) (string, error) { return e.read(path) }

// Compile parses body under name.
func (e *Engine) Compile(name, body string, wrap bool) (*Template, error) {
	if wrap && e.layout != nil {
		t, err := e.layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("%w: clone layout: %w", rerrors.ErrTemplateRender, err)
		}
		if _, err := t.New(LayoutBlock).Parse(body); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", rerrors.ErrTemplateRender, name, err)
		}
		return &Template{name: name, entry: layoutName, t: t}, nil
	}
	t, err := template.New(name).Funcs(e.funcs).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", rerrors.ErrTemplateRender, name, err)
	}
	return &Template{name: name, entry: name, t: t}, nil
}

// Execute renders the template against data.
func (t *Template) Execute(data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.t.ExecuteTemplate(&buf, t.entry, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", rerrors.ErrTemplateRender, t.name, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) read(path string) (string, error) {
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(e.root, filepath.FromSlash(path))
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", rerrors.ErrTemplateRead, path, err)
	}
	return string(data), nil
}
