package schema

import (
	"context"

	"github.com/goliatone/go-docdantic/pkg/model"
)

// FormatAdapter converts one document format into declarations.
type FormatAdapter interface {
	Name() string
	Detect(src Source, raw []byte) bool
	Declarations(ctx context.Context, namespace string, doc Document) ([]model.Declaration, error)
}

// Loader fetches raw documents from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}
