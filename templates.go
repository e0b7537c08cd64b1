package docdantic

import (
	"io/fs"

	"github.com/goliatone/go-docdantic/pkg/page"
)

// EmbeddedTemplates exposes the built-in HTML page layouts so callers can reuse
// or extend them without importing the page package directly.
func EmbeddedTemplates() fs.FS {
	return page.TemplatesFS()
}
