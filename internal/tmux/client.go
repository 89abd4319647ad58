// pattern: Imperative Shell

// Package tmux opens a selected directory as a tmux session.
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"sessionizer/internal/logging"
	"sessionizer/internal/selection"
)

// DefaultBinary is used when no tmux binary is configured.
const DefaultBinary = "tmux"

// Executor runs tmux with args. With attach set, the process is connected
// to the terminal and no output is captured.
type Executor func(ctx context.Context, args []string, attach bool) (string, error)

// Client drives a local tmux server.
type Client struct {
	bin    string
	exec   Executor
	inside bool
	logger *logging.ScopedLogger
}

// NewClient creates a client for the given tmux binary. Whether we are
// already inside tmux is read from $TMUX.
func NewClient(bin string, logs logging.LoggerProvider) *Client {
	if bin == "" {
		bin = DefaultBinary
	}
	return NewClientWithExecutor(bin, commandExecutor(bin), os.Getenv("TMUX") != "", logs)
}

// NewClientWithExecutor creates a client with the given executor (for testing).
func NewClientWithExecutor(bin string, exec Executor, insideTmux bool, logs logging.LoggerProvider) *Client {
	if logs == nil {
		logs = logging.NopProvider{}
	}
	return &Client{
		bin:    bin,
		exec:   exec,
		inside: insideTmux,
		logger: logs.For("tmux"),
	}
}

// InsideTmux reports whether the client was created from within a tmux session.
func (c *Client) InsideTmux() bool {
	return c.inside
}

// ServerRunning reports whether a tmux server answers.
func (c *Client) ServerRunning(ctx context.Context) bool {
	_, err := c.exec(ctx, []string{"list-sessions"}, false)
	return err == nil
}

// ListSessions returns all sessions. No server running means no sessions.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	output, err := c.exec(ctx, []string{"list-sessions"}, false)
	if err != nil {
		c.logger.Debug("list-sessions failed, assuming no server", "error", err)
		return []Session{}, nil
	}
	return ParseListSessions(output), nil
}

// HasSession reports whether a session with exactly this name exists.
func (c *Client) HasSession(ctx context.Context, name string) (bool, error) {
	sessions, err := c.ListSessions(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range sessions {
		if s.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// PlanFor works out the invocations needed to open sel.
func (c *Client) PlanFor(ctx context.Context, sel selection.Selection) ([][]string, error) {
	exists, err := c.HasSession(ctx, sel.SessionName)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("planning session",
		"session", sel.SessionName,
		"exists", exists,
		"inside_tmux", c.inside,
	)
	return Plan(sel, c.inside, exists), nil
}

// Render returns the shell commands Open would run, without running them.
func (c *Client) Render(ctx context.Context, sel selection.Selection) (string, error) {
	plan, err := c.PlanFor(ctx, sel)
	if err != nil {
		return "", err
	}
	return RenderPlan(c.bin, plan), nil
}

// Open creates the session for sel if needed and switches or attaches to it.
func (c *Client) Open(ctx context.Context, sel selection.Selection) error {
	plan, err := c.PlanFor(ctx, sel)
	if err != nil {
		return err
	}
	for _, args := range plan {
		attach := args[0] == "attach-session" || args[0] == "switch-client"
		c.logger.Info("running tmux", "args", strings.Join(args, " "))
		if _, err := c.exec(ctx, args, attach); err != nil {
			return fmt.Errorf("tmux %s %s: %w", args[0], sel.SessionName, err)
		}
	}
	return nil
}

// commandExecutor runs the tmux binary, capturing stderr into errors for
// queries and handing the terminal over for attach and switch.
func commandExecutor(bin string) Executor {
	return func(ctx context.Context, args []string, attach bool) (string, error) {
		cmd := exec.CommandContext(ctx, bin, args...)
		if attach {
			cmd.Stdin = os.Stdin
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			return "", cmd.Run()
		}

		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			return "", fmt.Errorf("%s: %w", strings.TrimSpace(stderr.String()), err)
		}
		return string(out), nil
	}
}
