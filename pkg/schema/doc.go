// Package schema holds the source, document and adapter contracts shared by
// the JSON Schema and OpenAPI declaration sources.
package schema
