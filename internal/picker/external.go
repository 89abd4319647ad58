// pattern: Imperative Shell

package picker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"sessionizer/internal/logging"
)

// Runner executes argv with stdin attached and returns its stdout.
type Runner func(ctx context.Context, argv []string, stdin io.Reader) (string, error)

// External pipes the lines through a fuzzy finder such as fzf or sk and
// reads the chosen line from its stdout.
type External struct {
	argv   []string
	run    Runner
	logger *logging.ScopedLogger
}

// NewExternal parses command with shell quoting rules.
func NewExternal(command string, logs logging.LoggerProvider) (*External, error) {
	return NewExternalWithRunner(command, execRunner, logs)
}

// NewExternalWithRunner creates an External with the given runner (for testing).
func NewExternalWithRunner(command string, run Runner, logs logging.LoggerProvider) (*External, error) {
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing picker command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("picker command is empty")
	}
	if logs == nil {
		logs = logging.NopProvider{}
	}
	return &External{argv: argv, run: run, logger: logs.For("picker")}, nil
}

// Command returns the command line, quoted for a shell.
func (e *External) Command() string {
	return shellquote.Join(e.argv...)
}

// Pick feeds lines to the finder, one per line. Exit statuses 1 and 130
// (no match, interrupted) and empty output count as cancellation.
func (e *External) Pick(ctx context.Context, lines []string) (string, error) {
	if len(lines) == 0 {
		return "", ErrNoCandidates
	}

	input := strings.Join(lines, "\n") + "\n"
	e.logger.Debug("starting external picker", "command", e.Command(), "items", len(lines))

	out, err := e.run(ctx, e.argv, strings.NewReader(input))
	if err != nil {
		var exit interface{ ExitCode() int }
		if errors.As(err, &exit) && (exit.ExitCode() == 1 || exit.ExitCode() == 130) {
			e.logger.Debug("external picker cancelled", "exit_code", exit.ExitCode())
			return "", ErrCancelled
		}
		return "", fmt.Errorf("running picker %s: %w", e.argv[0], err)
	}

	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			return line, nil
		}
	}
	return "", ErrCancelled
}

// execRunner runs the finder with stderr on the terminal, where finders draw.
func execRunner(ctx context.Context, argv []string, stdin io.Reader) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}
