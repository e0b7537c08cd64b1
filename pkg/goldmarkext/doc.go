// Package goldmarkext plugs docdantic directives into goldmark.
//
//	md := goldmark.New(goldmark.WithExtensions(goldmarkext.New(orch)))
//	err := md.Convert(source, &out)
//
// A directive line must start at the beginning of a block:
//
//	!docdantic: app.User
//	    exclude:
//	      User: [name]
//
// Rendering errors abort Convert.
package goldmarkext
