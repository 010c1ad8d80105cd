package packager

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oshokin/unity-packer/internal/config"
	"github.com/oshokin/unity-packer/internal/logger"
)

// DefaultAnalysedPath is scanned when no path is given.
const DefaultAnalysedPath = "Assets"

// errConfigExists is returned by InitConfig when it would overwrite settings.
var errConfigExists = errors.New("settings file already exists")

// Options contains inputs shared by the pack, list and watch entry points.
type Options struct {
	// ConfigPath is an optional path of the settings file (defaults to unity-packer.yaml).
	ConfigPath string
	// PackageName is the output name; its extension is replaced by .unitypackage.
	PackageName string
	// AnalysedPath is the directory scanned for descriptors.
	AnalysedPath string
	// ProjectRoot, when set, is stripped from every recorded path.
	ProjectRoot string
	// Exclude adds patterns to the ones found in the settings file.
	Exclude []string
	// Reproducible forces reproducible output regardless of the settings file.
	Reproducible bool
	// LogLevel overrides the console log level of the settings file.
	LogLevel string
	// LogFile overrides the log file of the settings file.
	LogFile string
	// WatchDebounce overrides the settle time of watch mode when positive.
	WatchDebounce time.Duration
}

// Prepare loads the settings, applies command-line overrides and configures logging.
// The returned function flushes the logs and must be called before exiting.
func Prepare(opts *Options) (*config.Config, func(), error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	cfg.Exclude = append(cfg.Exclude, opts.Exclude...)
	cfg.Reproducible = cfg.Reproducible || opts.Reproducible

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	if opts.WatchDebounce > 0 {
		cfg.WatchDebounce = opts.WatchDebounce
	}

	if err = config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	if opts.AnalysedPath == "" {
		opts.AnalysedPath = DefaultAnalysedPath
	}

	closeLogs, err := logger.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("configure logging: %w", err)
	}

	return cfg, closeLogs, nil
}

// InitConfig writes default settings to path. Existing settings are kept unless force is set.
func InitConfig(path string, force bool) error {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %w", path, errConfigExists)
	}

	return config.Save(path, config.Default())
}
