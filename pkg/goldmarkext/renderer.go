package goldmarkext

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-docdantic/pkg/directive"
)

// DirectiveRenderer turns a directive into Markdown.
type DirectiveRenderer interface {
	Render(d directive.Directive) (string, error)
}

type htmlRenderer struct {
	tables    DirectiveRenderer
	converter goldmark.Markdown
}

// NewHTMLRenderer returns a node renderer writing each directive as HTML. The
// generated Markdown is converted with converter, or with a GFM table
// converter generating heading IDs when converter is nil.
func NewHTMLRenderer(tables DirectiveRenderer, converter goldmark.Markdown) renderer.NodeRenderer {
	if converter == nil {
		converter = defaultConverter()
	}
	return &htmlRenderer{tables: tables, converter: converter}
}

func defaultConverter() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

func (r *htmlRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDirective, r.renderDirective)
}

func (r *htmlRenderer) renderDirective(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*Directive)
	if n.Err != nil {
		return ast.WalkStop, fmt.Errorf("goldmarkext: %s: %w", n.Target, n.Err)
	}
	if r.tables == nil {
		return ast.WalkStop, fmt.Errorf("goldmarkext: %s: no directive renderer configured", n.Target)
	}

	table, err := r.tables.Render(directive.Directive{Target: n.Target, Config: n.Config})
	if err != nil {
		return ast.WalkStop, fmt.Errorf("goldmarkext: %s: %w", n.Target, err)
	}

	var opts []parser.ParseOption
	if n.ids != nil {
		// Share the document's IDs so repeated model headings get unique anchors.
		opts = append(opts, parser.WithContext(parser.NewContext(parser.WithIDs(n.ids))))
	}
	var buf bytes.Buffer
	if err := r.converter.Convert([]byte(table), &buf, opts...); err != nil {
		return ast.WalkStop, fmt.Errorf("goldmarkext: %s: convert table: %w", n.Target, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}
