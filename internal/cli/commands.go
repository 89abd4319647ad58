// pattern: Imperative Shell

package cli

import (
	"context"
	"fmt"
	"io"

	"sessionizer/internal/config"
)

// BuildApp creates the application with every subcommand. configDir is
// where init writes the config template.
func BuildApp(version, configDir string, r *Runner, out, errOut io.Writer) *App {
	app := NewApp(version, errOut)

	app.AddCommand(&Command{
		Name:    "list",
		Summary: "Print every project as a picker line",
		Usage:   "Usage: sessionizer list\n\nPrints \"<name>\\t<path>\" per project, sorted by name.",
		Run: func(ctx context.Context, args []string) error {
			return r.List(ctx)
		},
	})

	app.AddCommand(&Command{
		Name:    "sessions",
		Summary: "Print the running tmux sessions",
		Usage:   "Usage: sessionizer sessions",
		Run: func(ctx context.Context, args []string) error {
			return r.Sessions(ctx)
		},
	})

	app.AddCommand(&Command{
		Name:    "init",
		Summary: "Write a commented config file if none exists",
		Usage:   "Usage: sessionizer init",
		Run: func(ctx context.Context, args []string) error {
			return runInitCommand(configDir, out)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: sessionizer version",
		Run: func(ctx context.Context, args []string) error {
			fmt.Fprintln(out, version)
			return nil
		},
	})

	app.AddCommand(&Command{
		Name:    "help",
		Summary: "Show this help",
		Usage:   "Usage: sessionizer help",
		Run: func(ctx context.Context, args []string) error {
			app.PrintHelp(out)
			return nil
		},
	})

	return app
}

func runInitCommand(configDir string, out io.Writer) error {
	path, created, err := config.Init(configDir)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Wrote %s\n", path)
	} else {
		fmt.Fprintf(out, "%s already exists, left unchanged\n", path)
	}
	return nil
}
