// pattern: Imperative Shell

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"sessionizer/internal/config"
	"sessionizer/internal/discovery"
	"sessionizer/internal/logging"
	"sessionizer/internal/naming"
	"sessionizer/internal/picker"
	"sessionizer/internal/selection"
	"sessionizer/internal/tmux"
)

// Scanner discovers project directories. *discovery.Scanner implements it.
type Scanner interface {
	Scan(ctx context.Context, roots discovery.Roots, excludes []*regexp.Regexp) ([]discovery.DirectoryEntry, []discovery.Warning)
}

// Sessions opens and inspects tmux sessions. *tmux.Client implements it.
type Sessions interface {
	Open(ctx context.Context, sel selection.Selection) error
	Render(ctx context.Context, sel selection.Selection) (string, error)
	ListSessions(ctx context.Context) ([]tmux.Session, error)
	ServerRunning(ctx context.Context) bool
}

// Deps are the collaborators a Runner drives.
type Deps struct {
	Scanner Scanner
	Picker  picker.Picker
	Tmux    Sessions
	Logs    logging.LoggerProvider
	Out     io.Writer // Command output
	ErrOut  io.Writer // User-facing notices
}

// Runner ties discovery, naming, selection and tmux together.
type Runner struct {
	cfg       config.Config
	deps      Deps
	logger    *logging.ScopedLogger
	printOnly bool
}

// NewRunner creates a runner. With printOnly set, Run prints the selection
// and the tmux commands instead of running them.
func NewRunner(cfg config.Config, deps Deps, printOnly bool) *Runner {
	if deps.Logs == nil {
		deps.Logs = logging.NopProvider{}
	}
	return &Runner{
		cfg:       cfg,
		deps:      deps,
		logger:    deps.Logs.For("select"),
		printOnly: printOnly,
	}
}

// Entries scans the configured roots and returns named, sorted entries.
// Scan warnings are logged by the scanner and never fail the call.
func (r *Runner) Entries(ctx context.Context) ([]discovery.DirectoryEntry, error) {
	excludes, err := r.cfg.CompiledExcludes()
	if err != nil {
		return nil, err
	}

	entries, warnings := r.deps.Scanner.Scan(ctx, r.cfg.Roots(), excludes)
	entries = selection.Sort(naming.Apply(entries))

	r.logger.Debug("entries ready", "count", len(entries), "warnings", len(warnings))
	return entries, nil
}

// Choose resolves query against the scanned entries, or asks the picker
// when query is empty.
func (r *Runner) Choose(ctx context.Context, query string) (selection.Selection, error) {
	entries, err := r.Entries(ctx)
	if err != nil {
		return selection.Selection{}, err
	}

	if query != "" {
		sel, err := selection.ResolveDirect(entries, query)
		if err != nil {
			r.logger.Warn("direct selection failed", "query", query, "error", err)
			return selection.Selection{}, err
		}
		r.logger.Info("direct selection", "query", query, "session", sel.SessionName, "path", sel.Path)
		return sel, nil
	}

	if len(entries) == 0 {
		return selection.Selection{}, picker.ErrNoCandidates
	}

	line, err := r.deps.Picker.Pick(ctx, selection.Lines(entries))
	if err != nil {
		return selection.Selection{}, err
	}

	sel, err := selection.FromLine(entries, line)
	if err != nil {
		r.logger.Warn("picker returned an unknown line", "line", line, "error", err)
		return selection.Selection{}, err
	}
	r.logger.Info("picked", "session", sel.SessionName, "path", sel.Path)
	return sel, nil
}

// Run chooses a directory and opens its tmux session. A cancelled picker or
// an empty scan is reported to the user without failing.
func (r *Runner) Run(ctx context.Context, query string) error {
	sel, err := r.Choose(ctx, query)
	switch {
	case errors.Is(err, picker.ErrCancelled):
		fmt.Fprintln(r.deps.ErrOut, "No selection made.")
		return nil
	case errors.Is(err, picker.ErrNoCandidates):
		fmt.Fprintln(r.deps.ErrOut, "No project directories found. Check search_paths in your config.")
		return nil
	case err != nil:
		return err
	}

	if r.printOnly {
		commands, err := r.deps.Tmux.Render(ctx, sel)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.deps.Out, "%s\t%s\n%s\n", sel.SessionName, sel.Path, commands)
		return nil
	}

	return r.deps.Tmux.Open(ctx, sel)
}

// List prints every entry as a picker line.
func (r *Runner) List(ctx context.Context) error {
	entries, err := r.Entries(ctx)
	if err != nil {
		return err
	}
	for _, line := range selection.Lines(entries) {
		fmt.Fprintln(r.deps.Out, line)
	}
	return nil
}

// Sessions prints the running tmux sessions.
func (r *Runner) Sessions(ctx context.Context) error {
	if !r.deps.Tmux.ServerRunning(ctx) {
		fmt.Fprintln(r.deps.ErrOut, "No tmux server running.")
		return nil
	}
	sessions, err := r.deps.Tmux.ListSessions(ctx)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		attached := ""
		if s.Attached {
			attached = " (attached)"
		}
		fmt.Fprintf(r.deps.Out, "%s\t%d windows%s\n", s.Name, s.Windows, attached)
	}
	return nil
}
