// pattern: Imperative Shell

package logging

import (
	"testing"
)

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	if logger == nil {
		t.Fatal("NopLogger() returned nil")
	}

	// Should not panic
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	logger.With("key", "value").Info("test with fields")
}

func TestNopProvider(t *testing.T) {
	var provider LoggerProvider = NopProvider{}
	provider.For("scan").Warn("discarded")
}

func TestTestLogManager_KeepsNewestWithinLimit(t *testing.T) {
	lm := NewTestLogManager(2)
	defer func() { _ = lm.Close() }()

	log := lm.For("select")
	log.Info("one")
	log.Info("two")
	log.Info("three")

	entries := lm.Drain()
	if len(entries) != 2 {
		t.Fatalf("Drain() returned %d entries, want 2", len(entries))
	}
	if entries[0].Message != "two" || entries[1].Message != "three" {
		t.Errorf("kept %q and %q, want two and three", entries[0].Message, entries[1].Message)
	}
}

func TestTestLogManager_CloseStopsRecording(t *testing.T) {
	lm := NewTestLogManager(0)
	lm.For("tmux").Info("before")
	if err := lm.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	lm.For("tmux").Info("after")

	entries := lm.Drain()
	if len(entries) != 1 || entries[0].Message != "before" {
		t.Errorf("entries after Close = %+v, want only the earlier one", entries)
	}
}

func TestDecodeRecord(t *testing.T) {
	line := []byte(`{"level":"warn","ts":1700000000.5,"logger":"scan","caller":"x.go:1","msg":"candidate skipped or degraded","kind":"unreadable path","path":"/w/gone"}`)

	entry, err := decodeRecord(line)
	if err != nil {
		t.Fatalf("decodeRecord() error = %v", err)
	}
	if entry.Level != "WARN" || entry.Scope != "scan" {
		t.Errorf("level/scope = %s/%s, want WARN/scan", entry.Level, entry.Scope)
	}
	if entry.Timestamp.Unix() != 1700000000 {
		t.Errorf("timestamp = %v", entry.Timestamp)
	}
	if _, ok := entry.Fields["caller"]; ok {
		t.Error("caller should not be kept as a field")
	}
	if entry.Field("kind") != "unreadable path" || entry.Field("path") != "/w/gone" {
		t.Errorf("fields = %v", entry.Fields)
	}
}

func TestDecodeRecord_RejectsMalformedLine(t *testing.T) {
	if _, err := decodeRecord([]byte("not json")); err == nil {
		t.Error("expected an error for a malformed record")
	}
}

func TestTestLogManager_Drain(t *testing.T) {
	lm := NewTestLogManager(10)
	defer func() { _ = lm.Close() }()

	lm.For("scan").Warn("first", "path", "/a")
	lm.For("classify").Debug("second")

	entries := lm.Drain()
	if len(entries) != 2 {
		t.Fatalf("Drain() returned %d entries, want 2", len(entries))
	}
	if entries[0].Level != "WARN" || entries[0].Field("path") != "/a" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Scope != "classify" {
		t.Errorf("second entry scope = %q, want classify", entries[1].Scope)
	}
	if more := lm.Drain(); len(more) != 0 {
		t.Errorf("second Drain() returned %d entries, want 0", len(more))
	}
}
