// Package orchestrator wires the registry, the format adapters and the table
// renderer: Load registers declaration documents, Render turns a directive
// into Markdown.
package orchestrator
