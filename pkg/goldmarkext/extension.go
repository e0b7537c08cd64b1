package goldmarkext

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

const (
	parserPriority   = 90
	rendererPriority = 500
)

// Option customises the extension.
type Option func(*Extender)

// WithConverter replaces the goldmark instance used to turn generated tables
// into HTML.
func WithConverter(converter goldmark.Markdown) Option {
	return func(e *Extender) {
		e.converter = converter
	}
}

// Extender registers the directive parser and renderer with a goldmark
// instance.
type Extender struct {
	tables    DirectiveRenderer
	converter goldmark.Markdown
}

var _ goldmark.Extender = (*Extender)(nil)

// New returns an extension rendering directives through tables, typically an
// *orchestrator.Orchestrator.
func New(tables DirectiveRenderer, options ...Option) *Extender {
	e := &Extender{tables: tables}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Extend implements goldmark.Extender.
func (e *Extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewParser(), parserPriority),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(NewHTMLRenderer(e.tables, e.converter), rendererPriority),
	))
}
