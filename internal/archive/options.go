package archive

import (
	"compress/gzip"

	"github.com/oshokin/unity-packer/internal/domain/asset"
)

// Option customizes archive assembly.
type Option func(*options)

// options holds the resolved assembly settings.
type options struct {
	// level is the gzip compression level.
	level int
	// reproducible zeroes modification times and normalizes modes.
	reproducible bool
	// onEntry is called after each entry has been written.
	onEntry func(entry *asset.Entry)
}

// WithCompressionLevel sets the gzip level (gzip.HuffmanOnly through gzip.BestCompression).
func WithCompressionLevel(level int) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithReproducible makes the output depend on file contents and entry order only.
func WithReproducible(enabled bool) Option {
	return func(o *options) {
		o.reproducible = enabled
	}
}

// WithProgress registers fn to be called after every written entry.
func WithProgress(fn func(entry *asset.Entry)) Option {
	return func(o *options) {
		o.onEntry = fn
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		level: gzip.DefaultCompression,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
