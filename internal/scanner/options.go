package scanner

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oshokin/unity-packer/internal/domain/asset"
)

// Option customizes a scan.
type Option func(*options)

// options holds the resolved scan settings.
type options struct {
	// suffix marks descriptor files.
	suffix string
	// exclude holds doublestar patterns matched against paths relative to the scan root.
	exclude []string
}

// WithDescriptorSuffix overrides the descriptor suffix (".meta" by default).
func WithDescriptorSuffix(suffix string) Option {
	return func(o *options) {
		if suffix != "" {
			o.suffix = suffix
		}
	}
}

// WithExclude skips files and directories whose path relative to the scan root
// matches any of the patterns.
func WithExclude(patterns ...string) Option {
	return func(o *options) {
		for _, pattern := range patterns {
			pattern = strings.TrimSpace(pattern)
			if pattern != "" {
				o.exclude = append(o.exclude, filepath.ToSlash(pattern))
			}
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		suffix: asset.DefaultDescriptorSuffix,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// isDescriptor reports whether a file name carries the descriptor suffix.
// A file named exactly like the suffix is not a descriptor.
func (o *options) isDescriptor(name string) bool {
	return len(name) > len(o.suffix) && strings.HasSuffix(name, o.suffix)
}

// isExcluded reports whether path, found under root, matches an exclude pattern.
func (o *options) isExcluded(root, path string) bool {
	if len(o.exclude) == 0 || path == root {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range o.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}

	return false
}
