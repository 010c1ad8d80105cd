package logger

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestFromContext_FallsBackToGlobal checks that an empty context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestWithKV_AddsFields ensures key-value pairs attached to the context reach the log entry.
func TestWithKV_AddsFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "scanner")
	ctx = WithKV(ctx, "root", "Assets")

	InfoKV(ctx, "Found meta entry", "path", "Assets/Cube.prefab")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "scanner", entries[0].LoggerName)
	require.Equal(t, "Assets", entries[0].ContextMap()["root"])
	require.Equal(t, "Assets/Cube.prefab", entries[0].ContextMap()["path"])
}

// TestWithMinLevel_DropsLowerLevels verifies the override hides messages below the pinned level.
func TestWithMinLevel_DropsLowerLevels(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithMinLevel(ctx, zapcore.WarnLevel)

	Info(ctx, "hidden")
	WarnKV(ctx, "shown")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "shown", logs.All()[0].Message)
}

// TestWithMinLevel_KeepsStricterLevel checks that a logger set to error does not start printing warnings.
func TestWithMinLevel_KeepsStricterLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.ErrorLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithMinLevel(ctx, zapcore.WarnLevel)

	WarnKV(ctx, "hidden")
	Error(ctx, "shown")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "shown", logs.All()[0].Message)
}

// TestNewWithFile_WritesJSON checks that the file sink receives entries.
func TestNewWithFile_WritesJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "unity-packer.log")

	l, closeFn, err := NewWithFile(zap.NewAtomicLevelAt(zapcore.InfoLevel), path)
	require.NoError(t, err)

	l.Infow("Packing", "output", "demo.unitypackage")
	closeFn()

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), `"output":"demo.unitypackage"`)
}
