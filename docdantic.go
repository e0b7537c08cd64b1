package docdantic

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/goliatone/go-docdantic/pkg/goldmarkext"
	"github.com/goliatone/go-docdantic/pkg/orchestrator"
	"github.com/goliatone/go-docdantic/pkg/preprocess"
	"github.com/goliatone/go-docdantic/pkg/registry"
)

// NewRegistry returns an empty type registry. Register every declaration a
// document may name before rendering.
func NewRegistry() *registry.Registry {
	return registry.New()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Extension returns the goldmark extension rendering directives through orch.
func Extension(orch *orchestrator.Orchestrator, options ...goldmarkext.Option) goldmark.Extender {
	return goldmarkext.New(orch, options...)
}

// Expand replaces every directive in the Markdown source with its tables.
func Expand(source string, options ...orchestrator.Option) (string, error) {
	return preprocess.New(orchestrator.New(options...)).Expand(source)
}

// Convert renders Markdown source to HTML with directives expanded. The
// goldmark instance enables the GFM table extension so generated tables use
// the same dialect as the rest of the document.
func Convert(source []byte, options ...orchestrator.Option) ([]byte, error) {
	md := NewMarkdown(orchestrator.New(options...))
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
