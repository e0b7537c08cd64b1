// Package page renders converted documents as standalone HTML pages using
// pongo2 layouts. Bodies are sanitised with bluemonday before they reach the
// template.
package page
