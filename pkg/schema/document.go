package schema

import (
	"bytes"
	"errors"
)

// Document is the raw payload of a declaration source. Adapters read it
// through Raw, which hands out a copy so the payload cannot change after
// loading.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument pairs raw with the source it was read from. A blank payload is
// rejected since no adapter can produce declarations from it.
func NewDocument(src Source, raw []byte) (Document, error) {
	switch {
	case src == nil:
		return Document{}, errors.New("schema: document has no source")
	case len(bytes.TrimSpace(raw)) == 0:
		return Document{}, errors.New("schema: document is blank")
	}
	return Document{source: src, raw: bytes.Clone(raw)}, nil
}

// MustNewDocument is NewDocument for fixtures.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source { return d.source }

func (d Document) Raw() []byte { return bytes.Clone(d.raw) }

// Location names the origin in error messages, empty for the zero Document.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// IsJSON reports whether the payload is a JSON object or array. Anything else
// is read as YAML.
func (d Document) IsJSON() bool {
	trimmed := bytes.TrimSpace(d.raw)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}
