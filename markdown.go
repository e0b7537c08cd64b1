package docdantic

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/goliatone/go-docdantic/pkg/orchestrator"
)

// NewMarkdown builds the goldmark instance used by Convert: GFM, automatic
// heading IDs and the directive extension.
func NewMarkdown(orch *orchestrator.Orchestrator, extra ...goldmark.Extender) goldmark.Markdown {
	extensions := append([]goldmark.Extender{extension.GFM, Extension(orch)}, extra...)
	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}
