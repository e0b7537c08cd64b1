package goldmarkext

import (
	"errors"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-docdantic/pkg/directive"
)

type directiveParser struct{}

// NewParser returns the block parser recognising directive lines and their
// indented configuration block.
func NewParser() parser.BlockParser {
	return &directiveParser{}
}

func (p *directiveParser) Trigger() []byte {
	return []byte{'!'}
}

func (p *directiveParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if parent == nil || parent.Kind() != ast.KindDocument {
		return nil, parser.NoChildren
	}
	line, segment := reader.PeekLine()
	if !atLineStart(reader.Source(), segment.Start) {
		return nil, parser.NoChildren
	}
	target, ok := directive.Match(string(line))
	if !ok {
		return nil, parser.NoChildren
	}
	reader.Advance(segment.Len() - 1)
	return NewDirective(target), parser.NoChildren
}

// atLineStart reports whether offset is the first byte of a source line.
func atLineStart(source []byte, offset int) bool {
	return offset == 0 || (offset <= len(source) && source[offset-1] == '\n')
}

func (p *directiveParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if !directive.IsConfigLine(string(line)) {
		return parser.Close
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *directiveParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	n, ok := node.(*Directive)
	if !ok {
		return
	}
	lines := n.Lines()
	block := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		block = append(block, strings.TrimRight(string(seg.Value(reader.Source())), "\r\n"))
	}

	n.ids = pc.IDs()
	cfg, err := directive.ParseConfig(block)
	if err != nil {
		var syntaxErr *directive.SyntaxError
		if errors.As(err, &syntaxErr) {
			syntaxErr.Target = n.Target
		}
		n.Err = err
		return
	}
	n.Config = cfg
}

func (p *directiveParser) CanInterruptParagraph() bool {
	return true
}

func (p *directiveParser) CanAcceptIndentedLine() bool {
	return false
}
