// Package model defines the declaration IR consumed by the table renderer.
// Declarations are produced by source adapters (Go struct reflection, JSON
// Schema documents, OpenAPI components) or built by hand, registered once at
// startup and never mutated afterwards. Field types form an explicit tree so
// renderers can walk nested model references without inspecting the original
// schema payloads. A model type inside a field refers to another declaration by
// its qualified registry path (`namespace.Name`), which keeps cyclic model
// graphs representable as plain values.
package model
