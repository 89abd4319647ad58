// pattern: Imperative Shell

// Package gittest builds throwaway repositories and worktrees for tests.
package gittest

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// Require skips the test when no git binary is available.
func Require(t testing.TB) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available in PATH")
	}
}

// Run executes git inside dir and fails the test on error.
func Run(t testing.TB, dir string, args ...string) string {
	t.Helper()
	full := append([]string{
		"-c", "user.name=Test User",
		"-c", "user.email=test@example.com",
		"-c", "init.defaultBranch=main",
		"-c", "commit.gpgsign=false",
	}, args...)
	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_NOSYSTEM=1")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s in %s: %v\n%s", strings.Join(args, " "), dir, err, out)
	}
	return string(out)
}

// InitRepo creates a normal repository with one empty commit at dir.
func InitRepo(t testing.TB, dir string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	Run(t, dir, "init", "-q")
	Run(t, dir, "commit", "-q", "--allow-empty", "-m", "initial commit")
	return dir
}

// InitBareContainer creates the "bare repo inside a folder" layout:
// dir/.bare holds a bare clone and dir/.git points at it.
func InitBareContainer(t testing.TB, dir string) string {
	t.Helper()
	src := InitRepo(t, filepath.Join(t.TempDir(), "src"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	Run(t, dir, "clone", "-q", "--bare", src, ".bare")
	if err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: ./.bare\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

// AddWorktree adds a linked worktree of repo at path on a new branch.
func AddWorktree(t testing.TB, repo, path, branch string) string {
	t.Helper()
	Run(t, repo, "worktree", "add", "-q", "-b", branch, path)
	return path
}
