package page

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine is a pongo2 template set with a compiled template cache.
type engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

func newEngine(files fs.FS, globals map[string]any) (*engine, error) {
	if files == nil {
		return nil, errors.New("page: template filesystem is required")
	}
	set := pongo2.NewSet("docdantic", pongo2.NewFSLoader(files))
	if len(globals) > 0 {
		set.Globals = make(pongo2.Context, len(globals))
		for key, value := range globals {
			if key = strings.TrimSpace(key); key != "" {
				set.Globals[key] = value
			}
		}
	}
	registerDefaultFilters()
	return &engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
	}, nil
}

func (e *engine) execute(name string, data pongo2.Context) ([]byte, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(data, &buf)
	e.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("page: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (e *engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("page: load template %q: %w", name, err)
	}
	e.templates[name] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
