// pattern: Functional Core

package logging

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
)

// LogEntry is a decoded log record.
type LogEntry struct {
	Timestamp time.Time
	Level     string // DEBUG, INFO, WARN, ERROR
	Scope     string // Logger scope (e.g. "scan", "tmux")
	Message   string
	Fields    map[string]any
}

// String renders the entry on one line with fields in key order.
func (e LogEntry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Timestamp.Format("15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(e.Level)
	sb.WriteString(" [")
	sb.WriteString(e.Scope)
	sb.WriteString("] ")
	sb.WriteString(e.Message)

	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		fmt.Fprintf(&sb, " %s=%v", k, e.Fields[k])
	}
	return sb.String()
}

// Field returns the string form of a structured field, or "" if absent.
func (e LogEntry) Field(key string) string {
	v, ok := e.Fields[key]
	if !ok {
		return ""
	}
	return fmt.Sprint(v)
}

// ParseLevel normalizes a log level string to uppercase.
// Returns "INFO" for unknown levels.
func ParseLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "DEBUG"
	case "info":
		return "INFO"
	case "warn", "warning":
		return "WARN"
	case "error":
		return "ERROR"
	default:
		return "INFO"
	}
}
