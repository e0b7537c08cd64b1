package preprocess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-docdantic/pkg/directive"
)

// DirectiveRenderer renders a parsed directive into Markdown.
type DirectiveRenderer interface {
	Render(d directive.Directive) (string, error)
}

// DirectiveError reports the directive that stopped an expansion.
type DirectiveError struct {
	// Line is the 1-based line number of the directive marker.
	Line   int
	Target string
	Err    error
}

func (e *DirectiveError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("preprocess: line %d: %s: %v", e.Line, e.Target, e.Err)
}

func (e *DirectiveError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Expander rewrites Markdown source, replacing each directive and its
// configuration block with the generated tables.
type Expander struct {
	renderer DirectiveRenderer
}

// New returns an Expander rendering through renderer.
func New(renderer DirectiveRenderer) *Expander {
	return &Expander{renderer: renderer}
}

// ExpandLines returns lines with every directive replaced by its rendered
// table lines. The first failing directive stops the expansion.
func (e *Expander) ExpandLines(lines []string) ([]string, error) {
	if e == nil || e.renderer == nil {
		return nil, errors.New("preprocess: renderer is required")
	}

	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if _, ok := directive.Match(lines[i]); !ok {
			out = append(out, lines[i])
			continue
		}

		d, last, err := directive.Parse(lines, i)
		if err != nil {
			return nil, &DirectiveError{Line: i + 1, Target: d.Target, Err: err}
		}
		table, err := e.renderer.Render(d)
		if err != nil {
			return nil, &DirectiveError{Line: i + 1, Target: d.Target, Err: err}
		}
		out = append(out, strings.Split(strings.TrimSuffix(table, "\n"), "\n")...)
		i = last
	}
	return out, nil
}

// Expand is ExpandLines over a whole document. Line endings are normalised to
// "\n" and a trailing newline is preserved.
func (e *Expander) Expand(source string) (string, error) {
	if source == "" {
		return "", nil
	}
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	trailing := strings.HasSuffix(normalized, "\n")
	lines := strings.Split(strings.TrimSuffix(normalized, "\n"), "\n")

	expanded, err := e.ExpandLines(lines)
	if err != nil {
		return "", err
	}
	result := strings.Join(expanded, "\n")
	if trailing {
		result += "\n"
	}
	return result, nil
}
