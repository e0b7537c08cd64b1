package page

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// DefaultTemplate is the name of the built-in page layout.
const DefaultTemplate = "page.html.tpl"

// TemplatesFS exposes the built-in templates so callers can extend them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Page is the data handed to the layout template.
type Page struct {
	Title      string
	Lang       string
	Stylesheet string
	// Body is the converted document HTML. It is sanitised before rendering.
	Body []byte
}

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
	policy    *bluemonday.Policy
	globals   map[string]any
}

// WithTemplates loads layouts from files instead of the built-in set.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithTemplate selects the layout template by name.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithPolicy replaces the sanitising policy applied to page bodies.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.policy = policy
	}
}

// WithGlobalData seeds values available to every template.
func WithGlobalData(data map[string]any) Option {
	return func(cfg *config) {
		if len(data) == 0 {
			return
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(data))
		}
		for key, value := range data {
			cfg.globals[key] = value
		}
	}
}

// Renderer wraps converted Markdown into a standalone HTML page.
type Renderer struct {
	engine *engine
	name   string
	policy *bluemonday.Policy
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{
		templates: TemplatesFS(),
		name:      DefaultTemplate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.policy == nil {
		cfg.policy = DefaultPolicy()
	}

	eng, err := newEngine(cfg.templates, cfg.globals)
	if err != nil {
		return nil, err
	}
	return &Renderer{engine: eng, name: cfg.name, policy: cfg.policy}, nil
}

// DefaultPolicy allows user generated content plus heading IDs and table
// alignment, which generated model tables rely on for links.
func DefaultPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("align").OnElements("th", "td")
	return policy
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	if r == nil || r.engine == nil {
		return errors.New("page: renderer is nil")
	}
	if w == nil {
		return errors.New("page: writer is required")
	}

	body := r.policy.SanitizeBytes(p.Body)
	out, err := r.engine.execute(r.name, pongo2.Context{
		"title":      p.Title,
		"lang":       p.Lang,
		"stylesheet": p.Stylesheet,
		"body":       string(body),
	})
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("page: write: %w", err)
	}
	return nil
}
