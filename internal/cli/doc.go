// Package cli implements the docdantic command line: render expands
// documents, table renders a single model, list shows registered paths and
// check verifies nested references.
//
// Sources come from --openapi / --jsonschema flags or a docdantic.yaml file:
//
//	sources:
//	  - namespace: petstore
//	    kind: openapi
//	    location: api/openapi.yaml
//
// Relative locations in the file resolve against the file's directory.
//
// Settings can be overridden with DOCDANTIC_* environment variables.
package cli
