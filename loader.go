package docdantic

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-docdantic/internal/loader"
	"github.com/goliatone/go-docdantic/pkg/schema"
)

// LoaderOption customises NewLoader.
type LoaderOption func(*loader.Options)

// WithHTTP enables URL sources, optionally with a custom client.
func WithHTTP(client *http.Client) LoaderOption {
	return func(o *loader.Options) {
		o.AllowHTTP = true
		o.HTTPClient = client
	}
}

// WithFileSystem backs fs sources with files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(o *loader.Options) {
		o.FileSystem = files
	}
}

// WithTimeout bounds remote fetches.
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(o *loader.Options) {
		o.Timeout = timeout
	}
}

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...LoaderOption) schema.Loader {
	var cfg loader.Options
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return loader.New(cfg)
}
