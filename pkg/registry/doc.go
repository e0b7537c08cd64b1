// Package registry holds the explicit type registry directives resolve
// against. Paths split at the last dot: everything before it names the
// namespace the application registered declarations under, the final segment
// names the declaration.
package registry
