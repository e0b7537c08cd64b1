// Package jsonschema builds declarations from JSON Schema, using
// github.com/invopop/jsonschema both to reflect Go structs and to decode
// schema documents. Object definitions become model declarations, enum and
// scalar definitions are registered with their kind so directives naming
// them fail with a type error.
package jsonschema
