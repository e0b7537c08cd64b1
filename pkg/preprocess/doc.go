// Package preprocess expands docdantic directives in Markdown source before
// any Markdown engine sees it. Use it with engines other than goldmark, or to
// produce Markdown with the tables inlined.
package preprocess
