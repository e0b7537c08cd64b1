package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-docdantic/pkg/model"
)

// Resolver looks up nested models referenced by field types.
type Resolver interface {
	Resolve(path string) (model.Declaration, error)
}

// Renderer converts model declarations into Markdown tables.
type Renderer struct {
	resolver Resolver
	opts     Options
}

// New constructs a Renderer. The resolver is consulted for nested model
// references; a nil resolver makes any nested reference an error.
func New(resolver Resolver, options ...Option) *Renderer {
	return &Renderer{
		resolver: resolver,
		opts:     newOptions(options...),
	}
}

// section is one rendered model table.
type section struct {
	name string
	rows [][]string
}

// renderContext is scoped to a single Render call.
type renderContext struct {
	exclude  model.Exclusions
	visited  map[string]struct{}
	sections []section
}

var tableHeaders = []string{"Name", "Type", "Required", "Default"}

// Render produces one section per model reachable from decl: decl first, then
// nested models in the order they are first referenced. A model that was
// already visited is linked but not rendered again, so cyclic graphs
// terminate.
func (r *Renderer) Render(decl model.Declaration, exclude model.Exclusions) (string, error) {
	if r == nil {
		return "", errors.New("render: renderer is nil")
	}
	if !decl.IsModel() {
		return "", fmt.Errorf("render: %q is a %s declaration, not a model", declKey(decl), decl.Kind)
	}

	ctx := &renderContext{
		exclude: exclude,
		visited: make(map[string]struct{}),
	}
	if err := r.walk(ctx, decl); err != nil {
		return "", err
	}

	var b strings.Builder
	heading := strings.Repeat("#", r.opts.HeadingLevel)
	for i, sec := range ctx.sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(heading)
		b.WriteString(" ")
		b.WriteString(sec.name)
		b.WriteString("\n\n")
		writeTable(&b, tableHeaders, sec.rows)
	}
	return b.String(), nil
}

func (r *Renderer) walk(ctx *renderContext, decl model.Declaration) error {
	ctx.visited[declKey(decl)] = struct{}{}

	idx := len(ctx.sections)
	ctx.sections = append(ctx.sections, section{name: decl.Name})

	rows := make([][]string, 0, len(decl.Fields))
	for _, field := range decl.Fields {
		if ctx.exclude.Excludes(decl.Name, field.Name) {
			continue
		}
		for _, ref := range field.Type.Models() {
			if ctx.seen(ref) {
				continue
			}
			nested, err := r.resolve(ref)
			if err != nil {
				return fmt.Errorf("render: %s.%s: %w", decl.Name, field.Name, err)
			}
			if err := r.walk(ctx, nested); err != nil {
				return err
			}
		}
		rows = append(rows, []string{
			highlightName(field.Name),
			FormatType(field.Type),
			strconv.FormatBool(field.Required),
			r.formatDefault(field),
		})
	}

	ctx.sections[idx].rows = rows
	return nil
}

// seen reports whether the model at path was already rendered. A root passed
// without a Path is keyed by its short name, so a reference back to it is
// matched by the last path segment.
func (ctx *renderContext) seen(path string) bool {
	if _, ok := ctx.visited[path]; ok {
		return true
	}
	_, ok := ctx.visited[model.NameFromPath(path)]
	return ok
}

func (r *Renderer) resolve(path string) (model.Declaration, error) {
	if r.resolver == nil {
		return model.Declaration{}, fmt.Errorf("no resolver configured for nested model %q", path)
	}
	decl, err := r.resolver.Resolve(path)
	if err != nil {
		return model.Declaration{}, err
	}
	if !decl.IsModel() {
		return model.Declaration{}, fmt.Errorf("nested %q is a %s declaration, not a model", path, decl.Kind)
	}
	if decl.Path == "" {
		decl.Path = path
	}
	return decl, nil
}

func declKey(decl model.Declaration) string {
	if decl.Path != "" {
		return decl.Path
	}
	return decl.Name
}

func highlightName(name string) string {
	return "**" + name + "**"
}
