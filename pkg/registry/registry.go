package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-docdantic/pkg/model"
)

// Registry maps dotted paths (`namespace.Name`) to declarations. The embedding
// application populates it at startup; documents can only name what was
// registered, so resolving a directive never loads or executes code.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]model.Declaration
}

// New creates an empty registry instance.
func New() *Registry {
	return &Registry{
		namespaces: make(map[string]map[string]model.Declaration),
	}
}

// Register adds declarations under namespace. Each declaration's Path is set
// to its qualified form. Duplicate paths return an error and leave the
// registry unchanged.
func (r *Registry) Register(namespace string, decls ...model.Declaration) error {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return fmt.Errorf("registry: namespace is required")
	}
	if strings.HasPrefix(namespace, ".") || strings.HasSuffix(namespace, ".") {
		return fmt.Errorf("registry: invalid namespace %q", namespace)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.namespaces[namespace]
	staged := make(map[string]model.Declaration, len(decls))
	for _, decl := range decls {
		if err := decl.Validate(); err != nil {
			return fmt.Errorf("registry: %w", err)
		}
		path := model.JoinPath(namespace, decl.Name)
		if _, exists := entries[decl.Name]; exists {
			return fmt.Errorf("registry: declaration %q already registered", path)
		}
		if _, exists := staged[decl.Name]; exists {
			return fmt.Errorf("registry: declaration %q already registered", path)
		}
		decl.Path = path
		staged[decl.Name] = decl
	}

	if entries == nil {
		entries = make(map[string]model.Declaration, len(staged))
		r.namespaces[namespace] = entries
	}
	for name, decl := range staged {
		entries[name] = decl
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(namespace string, decls ...model.Declaration) {
	if err := r.Register(namespace, decls...); err != nil {
		panic(err)
	}
}

// Lookup returns the declaration registered under path regardless of kind.
func (r *Registry) Lookup(path string) (model.Declaration, error) {
	namespace, name, err := splitPath(path)
	if err != nil {
		return model.Declaration{}, &ResolutionError{Path: path, Err: err}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, ok := r.namespaces[namespace]
	if !ok {
		return model.Declaration{}, &ResolutionError{Path: path, Err: ErrNamespaceNotFound}
	}
	decl, ok := entries[name]
	if !ok {
		return model.Declaration{}, &ResolutionError{Path: path, Err: ErrDeclarationNotFound}
	}
	return decl, nil
}

// Resolve returns the model registered under path. Declarations of any other
// kind produce a TypeError.
func (r *Registry) Resolve(path string) (model.Declaration, error) {
	decl, err := r.Lookup(path)
	if err != nil {
		return model.Declaration{}, err
	}
	if !decl.IsModel() {
		return model.Declaration{}, &TypeError{Path: decl.Path, Kind: decl.Kind}
	}
	return decl, nil
}

// Has reports whether a declaration is registered under path.
func (r *Registry) Has(path string) bool {
	_, err := r.Lookup(path)
	return err == nil
}

// Namespaces returns the sorted list of registered namespaces.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns every registered qualified path, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var paths []string
	for namespace, entries := range r.namespaces {
		for name := range entries {
			paths = append(paths, model.JoinPath(namespace, name))
		}
	}
	sort.Strings(paths)
	return paths
}

// Models returns the qualified paths of registered model declarations, sorted.
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var paths []string
	for _, entries := range r.namespaces {
		for _, decl := range entries {
			if decl.IsModel() {
				paths = append(paths, decl.Path)
			}
		}
	}
	sort.Strings(paths)
	return paths
}

// splitPath separates the namespace from the declaration name at the last dot.
func splitPath(path string) (string, string, error) {
	trimmed := strings.TrimSpace(path)
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 || idx == len(trimmed)-1 {
		return "", "", ErrInvalidPath
	}
	return trimmed[:idx], trimmed[idx+1:], nil
}
