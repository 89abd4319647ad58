// pattern: Functional Core

// Package cli dispatches sessionizer subcommands and runs the
// scan, select and open flow.
package cli

import (
	"context"
	"fmt"
	"io"
)

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(ctx context.Context, args []string) error
}

// App is the top-level command table.
type App struct {
	commands map[string]*Command
	order    []string
	version  string
	usageOut io.Writer
}

// NewApp creates a new CLI application with the given version. Per-command
// usage text requested with --help goes to usageOut.
func NewApp(version string, usageOut io.Writer) *App {
	return &App{
		commands: make(map[string]*Command),
		version:  version,
		usageOut: usageOut,
	}
}

// AddCommand registers a command. Help lists commands in registration order.
func (a *App) AddCommand(cmd *Command) {
	if _, ok := a.commands[cmd.Name]; !ok {
		a.order = append(a.order, cmd.Name)
	}
	a.commands[cmd.Name] = cmd
}

// Lookup returns the command registered under name.
func (a *App) Lookup(name string) (*Command, bool) {
	cmd, ok := a.commands[name]
	return cmd, ok
}

// Execute runs the command named by args[0]. It reports false when args is
// empty or names no command; the caller then treats args as a query.
func (a *App) Execute(ctx context.Context, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return false, nil
	}

	for _, arg := range args[1:] {
		if arg == "--help" || arg == "-h" {
			fmt.Fprintf(a.usageOut, "%s\n", cmd.Usage)
			return true, nil
		}
	}
	return true, cmd.Run(ctx, args[1:])
}

// PrintHelp prints the top-level help text. Flag defaults are appended by
// the caller.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: sessionizer [options] [query]\n")
	fmt.Fprintf(w, "       sessionizer [options] <command>\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, name := range a.order {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "  %-10s %s\n", "(none)", "Choose a project directory interactively")
	fmt.Fprintf(w, "  %-10s %s\n", "<query>", "Open the project matching query")
	fmt.Fprintf(w, "\nUse \"sessionizer <command> --help\" for command details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}
