package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelOverrideCore wraps a zapcore.Core and replaces its minimum level.
type levelOverrideCore struct {
	zapcore.Core

	// level is the minimum level this core lets through.
	level zapcore.Level
}

// Enabled reports whether l passes the overriding level.
func (c *levelOverrideCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check adds the core to a checked entry if the entry level passes the override.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *levelOverrideCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// With keeps the override on derived cores.
//
//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *levelOverrideCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelOverrideCore{
		c.Core.With(fields),
		c.level,
	}
}

// WithLevel is an option that pins a logger derived from an existing one to lvl.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(
		func(core zapcore.Core) zapcore.Core {
			return &levelOverrideCore{core, lvl}
		})
}

// WithMinLevel returns a context whose logger drops everything below lvl.
// The level is only ever raised: a logger already stricter than lvl keeps its own level.
// Commands that print their own report to stdout use it to keep the report readable.
func WithMinLevel(ctx context.Context, lvl zapcore.Level) context.Context {
	l := FromContext(ctx)

	return ToContext(ctx, l.WithOptions(WithLevel(max(l.Level(), lvl))))
}
