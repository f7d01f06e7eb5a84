// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize is the maximum accepted size for a CUE input file (1 MB).
// Config files are small; anything larger is almost certainly a mistake.
const DefaultMaxFileSize int64 = 1 << 20

// Option configures a ParseAndDecode call.
type Option func(*options)

type options struct {
	filename    string
	maxFileSize int64
	concrete    bool
}

func defaultOptions() options {
	return options{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
}

// WithFilename sets the filename reported in error messages.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithMaxFileSize overrides the maximum accepted input size in bytes.
func WithMaxFileSize(max int64) Option {
	return func(o *options) {
		o.maxFileSize = max
	}
}

// WithConcrete controls whether validation requires concrete values.
// Pass false for schemas where fields are optional and defaults are
// applied after decoding.
func WithConcrete(concrete bool) Option {
	return func(o *options) {
		o.concrete = concrete
	}
}
