// Package render turns model declarations into Markdown tables with the
// columns Name, Type, Required and Default. Nested models referenced anywhere
// in a field type get their own section and are linked from the Type column.
package render
