package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// logFileMaxSizeMB is the size at which the log file is rotated.
	logFileMaxSizeMB = 10
	// logFileMaxBackups is the number of rotated files kept on disk.
	logFileMaxBackups = 3
	// logFileMaxAgeDays is the retention of rotated files.
	logFileMaxAgeDays = 14
	// logDirPermissions is used when the log file directory has to be created.
	logDirPermissions = 0o755
)

var (
	// global is the shared logger instance used throughout the application.
	//nolint:gochecknoglobals // Logger is used all over the project, so it's okay.
	global *zap.SugaredLogger
	// defaultLevel is the minimum log level for messages to be processed.
	//nolint:gochecknoglobals // If the logging level is not set, the application will have no logs.
	defaultLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() { //nolint:gochecknoinits // If the logging level is not set, the application will have no logs.
	SetLogger(New(defaultLevel))
}

// New creates a new instance of *zap.SugaredLogger writing to stdout in console format.
// If the logging level is not provided, the shared default level is used.
func New(level zapcore.LevelEnabler, options ...zap.Option) *zap.SugaredLogger {
	if level == nil {
		level = defaultLevel
	}

	return zap.New(newConsoleCore(level), options...).Sugar()
}

// NewWithFile creates a logger that writes to stdout and, additionally, to a rotating
// JSON log file at path. The returned function flushes and closes the file.
func NewWithFile(level zapcore.LevelEnabler, path string, options ...zap.Option) (*zap.SugaredLogger, func(), error) {
	if level == nil {
		level = defaultLevel
	}

	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), logDirPermissions); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Clean(path),
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(fileWriter),
		level,
	)

	l := zap.New(zapcore.NewTee(newConsoleCore(level), fileCore), options...).Sugar()
	closeFn := func() {
		_ = l.Sync()           //nolint:errcheck // Sync on stdout fails on some terminals.
		_ = fileWriter.Close() //nolint:errcheck // Nothing left to report to.
	}

	return l, closeFn, nil
}

// Configure replaces the global logger according to a level name and an optional log file.
// The returned function must be called before the process exits.
func Configure(levelName, filePath string) (func(), error) {
	if levelName != "" {
		level, ok := ParseLogLevel(levelName)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q", levelName)
		}

		SetLevel(level)
	}

	if filePath == "" {
		return func() { _ = global.Sync() }, nil //nolint:errcheck // Best-effort flush.
	}

	l, closeFn, err := NewWithFile(defaultLevel, filePath)
	if err != nil {
		return nil, err
	}

	SetLogger(l)

	return closeFn, nil
}

// newConsoleCore builds the human-readable stdout core.
func newConsoleCore(level zapcore.LevelEnabler) zapcore.Core {
	encodeLevel := zapcore.CapitalLevelEncoder
	if isTerminal(os.Stdout) {
		encodeLevel = zapcore.CapitalColorLevelEncoder
	}

	//nolint:exhaustruct // I'm okay with default encoder configuration values.
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "message",
		LevelKey:         "level",
		TimeKey:          "time",
		CallerKey:        "caller",
		StacktraceKey:    "stacktrace",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      encodeLevel,
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: ", ",
	})

	return zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsTerminal reports whether stderr is attached to a terminal.
// Progress bars are only drawn when it is.
func IsTerminal() bool {
	return isTerminal(os.Stderr)
}

// ParseLogLevel converts string input to zap log level.
func ParseLogLevel(s string) (zapcore.Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// Level returns the current logging level of the global logger.
func Level() zapcore.Level {
	return defaultLevel.Level()
}

// Logger returns the global logger.
func Logger() *zap.SugaredLogger {
	return global
}

// SetLogger sets the global logger.
// This function is not thread-safe.
func SetLogger(l *zap.SugaredLogger) {
	global = l
}

// SetLevel sets the log level for the global logger.
func SetLevel(level zapcore.Level) {
	//nolint: errcheck // No need to check the error here.
	defer global.Sync()

	defaultLevel.SetLevel(level)
}
