package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sessionizer/internal/logging"
)

func TestLogManagerInitialization(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	lm, err := logging.NewManager(logging.Config{
		FilePath:   logPath,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
		Level:      "debug",
	})
	if err != nil {
		t.Fatalf("failed to create LogManager: %v", err)
	}
	defer lm.Close()

	lm.For("app").Info("test message")
	_ = lm.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !strings.Contains(string(data), "test message") || !strings.Contains(string(data), `"logger":"app"`) {
		t.Errorf("log file content = %s", data)
	}
}

// sandbox points every XDG location at fresh temp dirs and writes a config
// with the given search roots. It returns the config path.
func sandbox(t *testing.T, configBody string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	t.Setenv("TMUX", "")

	path := filepath.Join(home, "config", "sessionizer", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(configBody), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func projectRoot(t *testing.T, names ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range names {
		if err := os.Mkdir(filepath.Join(root, name), 0755); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestRun_Version(t *testing.T) {
	sandbox(t, "")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"--version"}, stdout, stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if stdout.String() != version+"\n" {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRun_HelpFlag(t *testing.T) {
	sandbox(t, "")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"--help"}, stdout, stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	for _, want := range []string{"Usage: sessionizer", "--print", "--config"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("help missing %q:\n%s", want, stderr.String())
		}
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	sandbox(t, "")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"--bogus"}, stdout, stderr); code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	sandbox(t, "exclude_patterns: ['(unclosed']\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"list"}, stdout, stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "exclude_patterns[0]") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	sandbox(t, "")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	code := run(context.Background(), []string{"-c", filepath.Join(t.TempDir(), "nope.yaml"), "list"}, stdout, stderr)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRun_List(t *testing.T) {
	root := projectRoot(t, "beta", "alpha", "node_modules")
	sandbox(t, "search_paths: ["+root+"]\nexclude_patterns: ['/node_modules$']\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"list"}, stdout, stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	want := "alpha\t" + filepath.Join(root, "alpha") + "\n" +
		"beta\t" + filepath.Join(root, "beta") + "\n"
	if stdout.String() != want {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
}

func TestRun_DirectSelectionPrintOnly(t *testing.T) {
	root := projectRoot(t, "my.app", "other")
	sandbox(t, "search_paths: ["+root+"]\ntmux_bin: /nonexistent/tmux\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"--print", "my.app"}, stdout, stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	path := filepath.Join(root, "my.app")
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("stdout = %q, want 3 lines", stdout.String())
	}
	if lines[0] != "my_app\t"+path {
		t.Errorf("selection line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "/nonexistent/tmux new-session -d -s my_app -c ") {
		t.Errorf("create line = %q", lines[1])
	}
	if lines[2] != "/nonexistent/tmux attach-session -t =my_app" {
		t.Errorf("attach line = %q", lines[2])
	}
}

func TestRun_DirectSelectionNoMatch(t *testing.T) {
	root := projectRoot(t, "alpha")
	sandbox(t, "search_paths: ["+root+"]\n")
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"--print", "zzz"}, stdout, stderr); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.HasPrefix(stderr.String(), "sessionizer: ") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_Init(t *testing.T) {
	sandbox(t, "")
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if err := os.Remove(filepath.Join(configHome, "sessionizer", "config.yaml")); err != nil {
		t.Fatal(err)
	}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}

	if code := run(context.Background(), []string{"init"}, stdout, stderr); code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(configHome, "sessionizer", "config.yaml")); err != nil {
		t.Errorf("config not created: %v", err)
	}
}

func TestLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	if got := logPath(); got != "/tmp/state/sessionizer/sessionizer.log" {
		t.Errorf("logPath() = %q", got)
	}

	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/home/tester")
	if got := logPath(); got != "/home/tester/.local/state/sessionizer/sessionizer.log" {
		t.Errorf("logPath() = %q", got)
	}
}
