// Package openapi registers OpenAPI 3 component schemas as declarations. It
// loads documents with github.com/getkin/kin-openapi and keeps the property
// order of the source document.
package openapi
