package render

import "strings"

const (
	defaultHeadingLevel = 3
	// DefaultPlaceholder marks a field without a default value.
	DefaultPlaceholder = "..."
)

// Options configures the table output.
type Options struct {
	// HeadingLevel sets the Markdown heading level of each model section.
	HeadingLevel int
	// Placeholder is written in the Default column when a field has no default.
	Placeholder string
}

// Option mutates Options prior to construction.
type Option func(*Options)

// WithHeadingLevel overrides the section heading level (1-6).
func WithHeadingLevel(level int) Option {
	return func(opts *Options) {
		if level < 1 || level > 6 {
			return
		}
		opts.HeadingLevel = level
	}
}

// WithPlaceholder overrides the token used for fields without a default.
func WithPlaceholder(token string) Option {
	return func(opts *Options) {
		if strings.TrimSpace(token) == "" {
			return
		}
		opts.Placeholder = token
	}
}

func newOptions(options ...Option) Options {
	opts := Options{
		HeadingLevel: defaultHeadingLevel,
		Placeholder:  DefaultPlaceholder,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}
