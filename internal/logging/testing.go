// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards all output.
// Use in tests or when logging is not configured.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// NopProvider hands out NopLogger for every scope.
type NopProvider struct{}

// For returns a logger that discards all output.
func (NopProvider) For(string) *ScopedLogger {
	return NopLogger()
}

// TestLogManager provides a LoggerProvider suitable for tests. Records are
// encoded as JSON by zap, decoded back into LogEntry values and held in
// memory until drained, so assertions see exactly what a log file would hold.
type TestLogManager struct {
	recorder *recorder
	baseZap  *zap.Logger
	loggers  map[string]*ScopedLogger
	mu       sync.RWMutex
}

// NewTestLogManager creates a LoggerProvider for testing that keeps at most
// limit entries; older entries are discarded first. A limit of zero or less
// keeps everything.
func NewTestLogManager(limit int) *TestLogManager {
	rec := &recorder{limit: limit}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(jsonEncoderConfig()),
		zapcore.AddSync(rec),
		zapcore.DebugLevel,
	)

	return &TestLogManager{
		recorder: rec,
		baseZap:  zap.New(core),
		loggers:  make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger for the given scope name.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	return cachedLogger(&m.mu, m.loggers, scope, func() *ScopedLogger {
		return newScopedLogger(m.baseZap, zapcore.DebugLevel, scope)
	})
}

// Drain returns every entry logged since the previous Drain.
func (m *TestLogManager) Drain() []LogEntry {
	return m.recorder.take()
}

// Close stops recording. Later writes fail.
func (m *TestLogManager) Close() error {
	m.recorder.close()
	return nil
}

// recorder is the zapcore.WriteSyncer behind TestLogManager.
type recorder struct {
	mu      sync.Mutex
	limit   int
	entries []LogEntry
	closed  bool
}

func (r *recorder) Write(p []byte) (int, error) {
	entry, err := decodeRecord(p)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, errors.New("write to closed test log")
	}
	r.entries = append(r.entries, entry)
	if r.limit > 0 && len(r.entries) > r.limit {
		r.entries = r.entries[len(r.entries)-r.limit:]
	}
	return len(p), nil
}

func (r *recorder) Sync() error { return nil }

func (r *recorder) take() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.entries
	r.entries = nil
	return out
}

func (r *recorder) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// decodeRecord turns one JSON line written by the zap encoder into a
// LogEntry. The logger name becomes the scope; caller and stacktrace are
// dropped.
func decodeRecord(data []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogEntry{}, fmt.Errorf("decode log record: %w", err)
	}

	entry := LogEntry{Level: "INFO", Scope: "app", Fields: make(map[string]any)}
	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
	}
	if level, ok := raw["level"].(string); ok {
		entry.Level = ParseLevel(level)
	}
	if logger, ok := raw["logger"].(string); ok {
		entry.Scope = logger
	}
	if ts, ok := raw["ts"].(float64); ok {
		sec := int64(ts)
		entry.Timestamp = time.Unix(sec, int64((ts-float64(sec))*1e9))
	}

	for k, v := range raw {
		switch k {
		case "msg", "level", "logger", "ts", "caller", "stacktrace":
		default:
			entry.Fields[k] = v
		}
	}
	return entry, nil
}
