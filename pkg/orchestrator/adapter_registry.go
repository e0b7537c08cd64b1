package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-docdantic/pkg/schema"
)

// AdapterRegistry holds the declaration formats Load can read, kept sorted by
// format name so detection is deterministic.
type AdapterRegistry struct {
	mu      sync.RWMutex
	formats []schema.FormatAdapter
}

// NewAdapterRegistry returns a registry with no formats.
func NewAdapterRegistry() *AdapterRegistry {
	return &AdapterRegistry{}
}

// Register adds a format. Names are case-insensitive and must be unique.
func (r *AdapterRegistry) Register(adapter schema.FormatAdapter) error {
	if adapter == nil {
		return fmt.Errorf("orchestrator: format adapter is nil")
	}
	name := formatName(adapter.Name())
	if name == "" {
		return fmt.Errorf("orchestrator: format adapter has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx, found := r.search(name)
	if found {
		return fmt.Errorf("orchestrator: format %q already registered", name)
	}
	r.formats = append(r.formats, nil)
	copy(r.formats[idx+1:], r.formats[idx:])
	r.formats[idx] = adapter
	return nil
}

// MustRegister is Register for static wiring.
func (r *AdapterRegistry) MustRegister(adapter schema.FormatAdapter) {
	if err := r.Register(adapter); err != nil {
		panic(err)
	}
}

// Get returns the format registered as name.
func (r *AdapterRegistry) Get(name string) (schema.FormatAdapter, error) {
	key := formatName(name)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: format name is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx, found := r.search(key); found {
		return r.formats[idx], nil
	}
	return nil, fmt.Errorf("orchestrator: adapter %q not found (known: %s)", key, strings.Join(r.namesLocked(), ", "))
}

// List returns the registered format names in order.
func (r *AdapterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

// Detect returns the formats that recognise raw.
func (r *AdapterRegistry) Detect(src schema.Source, raw []byte) []schema.FormatAdapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []schema.FormatAdapter
	for _, adapter := range r.formats {
		if adapter.Detect(src, raw) {
			matches = append(matches, adapter)
		}
	}
	return matches
}

func (r *AdapterRegistry) search(name string) (int, bool) {
	idx := sort.Search(len(r.formats), func(i int) bool {
		return formatName(r.formats[i].Name()) >= name
	})
	return idx, idx < len(r.formats) && formatName(r.formats[idx].Name()) == name
}

func (r *AdapterRegistry) namesLocked() []string {
	names := make([]string, 0, len(r.formats))
	for _, adapter := range r.formats {
		names = append(names, formatName(adapter.Name()))
	}
	return names
}

func formatName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
