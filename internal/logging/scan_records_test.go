// pattern: Imperative Shell

package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sessionizer/internal/discovery"
	"sessionizer/internal/git"
	"sessionizer/internal/logging"
)

// A dangling symlink under a search root makes the scanner warn; the record
// must come back from the test log with its scope and structured fields.
func TestTestLogManager_DecodesScannerWarnings(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	dangling := filepath.Join(root, "gone")
	if err := os.Symlink(filepath.Join(root, "missing"), dangling); err != nil {
		t.Fatal(err)
	}

	lm := logging.NewTestLogManager(0)
	defer func() { _ = lm.Close() }()

	s := discovery.NewScanner(git.NewClient(), lm, discovery.Options{})
	_, warnings := s.Scan(context.Background(), discovery.Roots{Search: []string{root}}, nil)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}

	var found *logging.LogEntry
	entries := lm.Drain()
	for i := range entries {
		if entries[i].Level == "WARN" {
			found = &entries[i]
		}
	}
	if found == nil {
		t.Fatalf("no WARN record among %+v", entries)
	}
	if found.Scope != "scan" {
		t.Errorf("scope = %q, want scan", found.Scope)
	}
	if found.Field("kind") != discovery.UnreadablePath.String() {
		t.Errorf("kind = %q, want %q", found.Field("kind"), discovery.UnreadablePath)
	}
	if found.Field("path") != dangling {
		t.Errorf("path = %q, want %s", found.Field("path"), dangling)
	}
	if found.Field("error") == "" {
		t.Error("error field should carry the cause")
	}
}
