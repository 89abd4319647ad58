// pattern: Imperative Shell

// Package logging provides scoped structured loggers backed by zap.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager.
type Config struct {
	FilePath   string    // Path to log file
	MaxSizeMB  int       // Max size in MB before rotation
	MaxBackups int       // Max number of old log files to keep
	MaxAgeDays int       // Max days to keep old log files
	Level      string    // Minimum log level (debug, info, warn, error)
	Console    io.Writer // Optional human-readable mirror (stderr under --debug)
}

// LoggerProvider is an interface for obtaining scoped loggers.
// Both Manager and TestLogManager implement this interface.
type LoggerProvider interface {
	For(scope string) *ScopedLogger
}

// ScopedLogger is a slog front-end over a named zap logger.
type ScopedLogger struct {
	slog  *slog.Logger
	scope string
}

// Info logs at INFO level.
func (l *ScopedLogger) Info(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Info(msg, args...)
	}
}

// Debug logs at DEBUG level.
func (l *ScopedLogger) Debug(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Debug(msg, args...)
	}
}

// Warn logs at WARN level.
func (l *ScopedLogger) Warn(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Warn(msg, args...)
	}
}

// Error logs at ERROR level.
func (l *ScopedLogger) Error(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Error(msg, args...)
	}
}

// With returns a logger that adds the given key-value pairs to every entry.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l.slog == nil {
		return l
	}
	return &ScopedLogger{slog: l.slog.With(args...), scope: l.scope}
}

// Scope returns the logger's scope name.
func (l *ScopedLogger) Scope() string {
	return l.scope
}

// Manager hands out scoped loggers writing to a rotating JSON file and,
// optionally, a console mirror.
type Manager struct {
	baseZap    *zap.Logger
	fileWriter *lumberjack.Logger
	level      zapcore.Level
	loggers    map[string]*ScopedLogger
	mu         sync.RWMutex
}

// NewManager creates a new log manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}

	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 7
	}

	level := ParseZapLevel(cfg.Level)

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), zapcore.AddSync(fileWriter), level),
	}

	if cfg.Console != nil {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.TimeKey = ""
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(cfg.Console),
			level,
		))
	}

	return &Manager{
		baseZap:    zap.New(zapcore.NewTee(cores...)),
		fileWriter: fileWriter,
		level:      level,
		loggers:    make(map[string]*ScopedLogger),
	}, nil
}

// For returns a logger for the given scope.
// Loggers are cached and reused for the same scope.
func (m *Manager) For(scope string) *ScopedLogger {
	return cachedLogger(&m.mu, m.loggers, scope, func() *ScopedLogger {
		return newScopedLogger(m.baseZap, m.level, scope)
	})
}

// Sync flushes all buffered logs.
func (m *Manager) Sync() error {
	return m.baseZap.Sync()
}

// Close syncs and closes the log file.
func (m *Manager) Close() error {
	_ = m.Sync()
	return m.fileWriter.Close()
}

// ParseZapLevel converts a config level name to a zap level, defaulting to info.
func ParseZapLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

func jsonEncoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return encoderCfg
}

func newScopedLogger(base *zap.Logger, level zapcore.Level, scope string) *ScopedLogger {
	return &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: base.Named(scope), level: level}),
		scope: scope,
	}
}

// cachedLogger returns loggers[scope], creating it with build on first use.
func cachedLogger(mu *sync.RWMutex, loggers map[string]*ScopedLogger, scope string, build func() *ScopedLogger) *ScopedLogger {
	mu.RLock()
	if logger, ok := loggers[scope]; ok {
		mu.RUnlock()
		return logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if logger, ok := loggers[scope]; ok {
		return logger
	}
	logger := build()
	loggers[scope] = logger
	return logger
}
