//go:build e2e
// +build e2e

// Package e2e exercises sessionizer against real git and tmux binaries.
package e2e

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sessionizer/internal/logging"
	"sessionizer/internal/tmux"
)

// SkipIfToolMissing skips the test if the named binary is not available.
func SkipIfToolMissing(t *testing.T, tool string) {
	t.Helper()
	if _, err := exec.LookPath(tool); err != nil {
		t.Skipf("Skipping test: %s not found in PATH", tool)
	}
}

// Workspace returns a fresh directory with symlinks resolved, so paths in
// assertions match canonical scan output.
func Workspace(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to resolve temp dir: %v", err)
	}
	return dir
}

// PrivateTmux is a tmux client bound to a throwaway server socket. The
// server is killed when the test ends. Attach and switch steps are recorded
// instead of run, since tests have no terminal to hand over.
type PrivateTmux struct {
	Client   *tmux.Client
	Socket   string
	Attaches [][]string
}

// NewPrivateTmux starts nothing; the server comes up with the first
// new-session.
func NewPrivateTmux(t *testing.T, insideTmux bool, logs logging.LoggerProvider) *PrivateTmux {
	t.Helper()
	SkipIfToolMissing(t, "tmux")

	p := &PrivateTmux{Socket: fmt.Sprintf("sessionizer-e2e-%d", time.Now().UnixNano())}
	executor := func(ctx context.Context, args []string, attach bool) (string, error) {
		if attach {
			p.Attaches = append(p.Attaches, args)
			return "", nil
		}
		return p.run(ctx, args...)
	}
	p.Client = tmux.NewClientWithExecutor("tmux", executor, insideTmux, logs)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := p.run(ctx, "kill-server"); err != nil {
			t.Logf("Warning: failed to stop tmux server %s: %v", p.Socket, err)
		}
	})
	return p
}

func (p *PrivateTmux) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", append([]string{"-L", p.Socket}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(stderr.String()), err)
	}
	return string(out), nil
}

// SessionPath returns the working directory of the named session's active pane.
func (p *PrivateTmux) SessionPath(t *testing.T, name string) string {
	t.Helper()
	out, err := p.run(context.Background(), "display-message", "-p", "-t", "="+name+":", "#{pane_current_path}")
	if err != nil {
		t.Fatalf("display-message for %s: %v", name, err)
	}
	return strings.TrimSpace(out)
}
