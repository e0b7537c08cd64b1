package model

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a declaration. Only KindModel declarations render as tables.
type Kind string

const (
	KindModel  Kind = "model"
	KindEnum   Kind = "enum"
	KindScalar Kind = "scalar"
)

// Declaration is a named data-type definition exposing an ordered field list.
type Declaration struct {
	Name        string  `json:"name"`
	Path        string  `json:"path,omitempty"`
	Kind        Kind    `json:"kind"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

// Field describes a single declared field. HasDefault distinguishes an
// explicit nil default from the absence of a default.
type Field struct {
	Name        string `json:"name"`
	Type        Type   `json:"type"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
	HasDefault  bool   `json:"hasDefault,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsModel reports whether the declaration can be rendered as a table.
func (d Declaration) IsModel() bool {
	return d.Kind == KindModel
}

// Field looks up a field by name.
func (d Declaration) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Validate checks the structural invariants adapters must uphold.
func (d Declaration) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("model: declaration name is required")
	}
	if strings.Contains(d.Name, ".") {
		return fmt.Errorf("model: declaration name %q must not contain dots", d.Name)
	}
	switch d.Kind {
	case KindModel, KindEnum, KindScalar:
	default:
		return fmt.Errorf("model: declaration %q has unknown kind %q", d.Name, d.Kind)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for _, field := range d.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("model: declaration %q has a field without a name", d.Name)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("model: declaration %q declares field %q twice", d.Name, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// NameFromPath returns the last segment of a dotted path.
func NameFromPath(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// JoinPath builds the qualified path for a declaration inside a namespace.
func JoinPath(namespace, name string) string {
	namespace = strings.TrimSpace(namespace)
	name = strings.TrimSpace(name)
	if namespace == "" {
		return name
	}
	if name == "" {
		return namespace
	}
	return namespace + "." + name
}
