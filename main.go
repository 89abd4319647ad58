// pattern: Imperative Shell
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"

	"sessionizer/internal/cli"
	"sessionizer/internal/config"
	"sessionizer/internal/discovery"
	"sessionizer/internal/git"
	"sessionizer/internal/logging"
	"sessionizer/internal/picker"
	"sessionizer/internal/tmux"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args, wires the collaborators and dispatches. It returns the
// process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sessionizer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	// Stop at the first positional argument so "<command> --help" reaches
	// the command.
	fs.SetInterspersed(false)

	configPath := fs.StringP("config", "c", "", "config file (default: $XDG_CONFIG_HOME/sessionizer/config.yaml)")
	debug := fs.BoolP("debug", "d", false, "log at debug level and mirror logs to stderr")
	printOnly := fs.Bool("print", false, "print the selection and tmux commands instead of running them")
	showVersion := fs.Bool("version", false, "print version and exit")

	fs.Usage = func() {
		cli.BuildApp(version, config.Dir(), nil, stderr, stderr).PrintHelp(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "sessionizer: config: %v\n", err)
		return 1
	}

	level := cfg.LogLevel
	var console io.Writer
	if *debug {
		level = "debug"
		console = stderr
	}

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   logPath(),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      level,
		Console:    console,
	})
	if err != nil {
		fmt.Fprintf(stderr, "sessionizer: failed to initialize logging: %v\n", err)
		return 1
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("sessionizer starting", "version", version, "args", strings.Join(args, " "))
	logManager.For("config").Debug("config loaded",
		"source", cfg.Source,
		"search_paths", strings.Join(cfg.SearchPaths, ","),
		"additional_paths", strings.Join(cfg.AdditionalPaths, ","),
		"scan_depth", cfg.ScanDepth,
		"picker", cfg.Picker,
	)

	pick, err := picker.New(cfg.Picker, cfg.Theme, logManager)
	if err != nil {
		fmt.Fprintf(stderr, "sessionizer: picker: %v\n", err)
		return 1
	}

	runner := cli.NewRunner(cfg, cli.Deps{
		Scanner: discovery.NewScanner(git.NewClient(), logManager, cfg.ScanOptions()),
		Picker:  pick,
		Tmux:    tmux.NewClient(cfg.TmuxBin, logManager),
		Logs:    logManager,
		Out:     stdout,
		ErrOut:  stderr,
	}, *printOnly)

	app := cli.BuildApp(version, configDir(*configPath), runner, stdout, stderr)

	rest := fs.Args()
	handled, err := app.Execute(ctx, rest)
	if !handled {
		err = runner.Run(ctx, strings.TrimSpace(strings.Join(rest, " ")))
	}
	if err != nil {
		appLogger.Error("command failed", "error", err)
		fmt.Fprintf(stderr, "sessionizer: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the file named by --config, or the default location.
// An explicitly named file must exist.
func loadConfig(path string) (config.Config, error) {
	var cfg config.Config
	var err error
	if path != "" {
		if _, statErr := os.Stat(path); statErr != nil {
			return cfg, statErr
		}
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// configDir is where init writes: beside an explicit --config file, else the
// default config directory.
func configDir(configPath string) string {
	if configPath != "" {
		return filepath.Dir(configPath)
	}
	return config.Dir()
}

// logPath returns $XDG_STATE_HOME/sessionizer/sessionizer.log, falling back
// to ~/.local/state.
func logPath() string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "sessionizer", "sessionizer.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "sessionizer", "sessionizer.log")
	}
	return filepath.Join(home, ".local", "state", "sessionizer", "sessionizer.log")
}
