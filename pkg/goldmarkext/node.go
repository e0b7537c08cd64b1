package goldmarkext

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"

	"github.com/goliatone/go-docdantic/pkg/directive"
)

// KindDirective is the NodeKind of Directive.
var KindDirective = ast.NewNodeKind("Docdantic")

// Directive is a block holding a parsed `!docdantic:` directive. Err is set
// when the configuration block failed to parse; rendering reports it.
type Directive struct {
	ast.BaseBlock
	Target string
	Config directive.Config
	Err    error

	// ids is the heading ID registry of the enclosing document.
	ids parser.IDs
}

// NewDirective returns a Directive node for target.
func NewDirective(target string) *Directive {
	return &Directive{Target: target}
}

// Kind implements ast.Node.
func (n *Directive) Kind() ast.NodeKind {
	return KindDirective
}

// IsRaw implements ast.Node. Configuration lines are kept verbatim.
func (n *Directive) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *Directive) Dump(source []byte, level int) {
	kv := map[string]string{
		"Target":  n.Target,
		"Exclude": fmt.Sprint(len(n.Config.Exclude)),
	}
	if n.Err != nil {
		kv["Err"] = n.Err.Error()
	}
	ast.DumpHelper(n, source, level, kv, nil)
}
