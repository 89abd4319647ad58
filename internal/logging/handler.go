// pattern: Imperative Shell

package logging

import (
	"context"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapSlogHandler adapts zap.Logger to the slog.Handler interface.
type zapSlogHandler struct {
	zap    *zap.Logger
	level  zapcore.Level
	attrs  []slog.Attr
	groups []string
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogToZapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, r.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		fields = append(fields, h.field(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, h.field(attr))
		return true
	})

	switch slogToZapLevel(r.Level) {
	case zapcore.DebugLevel:
		h.zap.Debug(r.Message, fields...)
	case zapcore.WarnLevel:
		h.zap.Warn(r.Message, fields...)
	case zapcore.ErrorLevel:
		h.zap.Error(r.Message, fields...)
	default:
		h.zap.Info(r.Message, fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	newAttrs = append(newAttrs, attrs...)
	return &zapSlogHandler{zap: h.zap, level: h.level, attrs: newAttrs, groups: h.groups}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	groups := make([]string, 0, len(h.groups)+1)
	groups = append(groups, h.groups...)
	groups = append(groups, name)
	return &zapSlogHandler{zap: h.zap, level: h.level, attrs: h.attrs, groups: groups}
}

// field converts an attribute, prefixing its key with any open groups.
// Errors are stringified so they render in both JSON and console output.
func (h *zapSlogHandler) field(attr slog.Attr) zap.Field {
	key := attr.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	value := attr.Value.Resolve().Any()
	if err, ok := value.(error); ok {
		return zap.String(key, err.Error())
	}
	return zap.Any(key, value)
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
