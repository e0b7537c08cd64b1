package registry

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-docdantic/pkg/model"
)

var (
	// ErrInvalidPath reports a path without a namespace and name separated by a dot.
	ErrInvalidPath = errors.New("invalid path, expected namespace.Name")
	// ErrNamespaceNotFound reports a path whose namespace was never registered.
	ErrNamespaceNotFound = errors.New("namespace not registered")
	// ErrDeclarationNotFound reports a namespace without the named declaration.
	ErrDeclarationNotFound = errors.New("declaration not found")
	// ErrNotModel reports a declaration that cannot be rendered as a table.
	ErrNotModel = errors.New("declaration is not a model")
)

// ResolutionError is returned when a path does not name a registered
// declaration.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("registry: resolve %q: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// TypeError is returned when a path resolves to a declaration that is not a
// model.
type TypeError struct {
	Path string
	Kind model.Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("registry: %q is a %s declaration, not a model", e.Path, e.Kind)
}

func (e *TypeError) Unwrap() error {
	return ErrNotModel
}
