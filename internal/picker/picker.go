// pattern: Imperative Shell

// Package picker lets the user choose one line out of a list, either with a
// builtin terminal UI or by piping the lines through an external fuzzy finder.
package picker

import (
	"context"
	"errors"

	"sessionizer/internal/logging"
)

var (
	// ErrCancelled means the user closed the picker without choosing.
	ErrCancelled = errors.New("selection cancelled")
	// ErrNoCandidates means there was nothing to choose from.
	ErrNoCandidates = errors.New("no directories to choose from")
)

// BuiltinName selects the bubbletea picker in configuration.
const BuiltinName = "builtin"

// Picker returns exactly one of the given lines, or ErrCancelled.
type Picker interface {
	Pick(ctx context.Context, lines []string) (string, error)
}

// New returns the builtin picker when command is empty or "builtin",
// otherwise a picker running command as an external finder.
func New(command, theme string, logs logging.LoggerProvider) (Picker, error) {
	if command == "" || command == BuiltinName {
		return NewBuiltin(theme, logs), nil
	}
	return NewExternal(command, logs)
}
