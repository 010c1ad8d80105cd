package config

import (
	"compress/gzip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/unity-packer/internal/domain/asset"
	"github.com/oshokin/unity-packer/internal/logger"
)

// Config holds the settings shared by the packer commands.
type Config struct {
	// DescriptorSuffix marks descriptor files.
	DescriptorSuffix string `yaml:"descriptor_suffix"`
	// Exclude lists doublestar patterns, relative to the analysed path, that are never packed.
	Exclude []string `yaml:"exclude,omitempty"`
	// Compression names the gzip level: none, fastest, default, best or huffman.
	Compression string `yaml:"compression"`
	// Reproducible zeroes modification times so equal inputs give equal packages.
	Reproducible bool `yaml:"reproducible"`
	// LogLevel is the minimum level printed to the console.
	LogLevel string `yaml:"log_level"`
	// LogFile is an optional path of a rotating JSON log.
	LogFile string `yaml:"log_file,omitempty"`
	// WatchDebounce is how long watch mode waits for changes to settle before repacking.
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

const (
	// DefaultConfigFilename is the settings file looked up in the working directory.
	DefaultConfigFilename = "unity-packer.yaml"

	// DefaultCompression is the gzip level used when none is configured.
	DefaultCompression = "default"

	// DefaultLogLevel is the console log level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultWatchDebounce is the default settle time of watch mode.
	DefaultWatchDebounce = 500 * time.Millisecond

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidSuffix is returned when the descriptor suffix cannot name a sibling file.
	errInvalidSuffix = errors.New("descriptor suffix must start with a dot and contain no path separators")
	// errUnknownCompression is returned for an unrecognized compression name.
	errUnknownCompression = errors.New("unknown compression")
	// errInvalidPattern is returned for a malformed exclude pattern.
	errInvalidPattern = errors.New("invalid exclude pattern")
	// errUnknownLogLevel is returned for an unrecognized log level.
	errUnknownLogLevel = errors.New("unknown log level")
)

// compressionLevels maps compression names to gzip levels.
//
//nolint:gochecknoglobals // Read-only lookup table.
var compressionLevels = map[string]int{
	"none":    gzip.NoCompression,
	"fastest": gzip.BestSpeed,
	"default": gzip.DefaultCompression,
	"best":    gzip.BestCompression,
	"huffman": gzip.HuffmanOnly,
}

// Default returns settings with every default applied.
func Default() *Config {
	cfg := new(Config)

	// Defaults never fail validation.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file at the default location yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) && path == DefaultConfigFilename {
		return Default(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks the settings.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.DescriptorSuffix == "" {
		settings.DescriptorSuffix = asset.DefaultDescriptorSuffix
	}

	if len(settings.DescriptorSuffix) < 2 ||
		!strings.HasPrefix(settings.DescriptorSuffix, ".") ||
		strings.ContainsAny(settings.DescriptorSuffix, `/\`) {
		return fmt.Errorf("%w: %q", errInvalidSuffix, settings.DescriptorSuffix)
	}

	if settings.Compression == "" {
		settings.Compression = DefaultCompression
	}

	settings.Compression = strings.ToLower(strings.TrimSpace(settings.Compression))
	if _, ok := compressionLevels[settings.Compression]; !ok {
		return fmt.Errorf("%w: %q", errUnknownCompression, settings.Compression)
	}

	for _, pattern := range settings.Exclude {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return fmt.Errorf("%w: %q", errInvalidPattern, pattern)
		}
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errUnknownLogLevel, settings.LogLevel)
	}

	if settings.WatchDebounce <= 0 {
		settings.WatchDebounce = DefaultWatchDebounce
	}

	return nil
}

// CompressionLevel returns the gzip level of a validated configuration.
func (c *Config) CompressionLevel() int {
	if level, ok := compressionLevels[c.Compression]; ok {
		return level
	}

	return gzip.DefaultCompression
}
