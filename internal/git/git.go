// pattern: Imperative Shell

// Package git inspects repository metadata through the git CLI.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"sessionizer/internal/pathutil"
)

// ErrNotRepository is returned by Open when the path holds no git metadata of its own.
var ErrNotRepository = errors.New("not a git repository")

// Runner executes git with args inside dir and returns its stdout.
type Runner func(ctx context.Context, dir string, args ...string) (string, error)

// Client runs git probes through a Runner.
type Client struct {
	run Runner
}

// NewClient creates a Client that shells out to the git binary on PATH.
func NewClient() *Client {
	return &Client{run: execGit}
}

// NewClientWithRunner creates a Client with the given runner (for testing).
func NewClientWithRunner(run Runner) *Client {
	return &Client{run: run}
}

// RepoInfo describes the git metadata owned by a directory.
type RepoInfo struct {
	Path      string // Directory that was opened
	GitDir    string // Canonical per-worktree git directory
	CommonDir string // Canonical shared git directory
	Bare      bool
}

// IsLinkedWorktree reports whether the directory is a linked worktree of
// another repository: its git dir lives in that repository's worktrees/ area.
func (r RepoInfo) IsLinkedWorktree() bool {
	return r.GitDir != r.CommonDir
}

// MainPath returns the canonical path of the repository owning the metadata.
func (r RepoInfo) MainPath() string {
	return MainRepositoryPath(r.CommonDir)
}

// Open probes path as a repository root. Only metadata located at path itself
// counts; enclosing repositories are never discovered.
func (c *Client) Open(ctx context.Context, path string) (RepoInfo, error) {
	if !HasGitMetadata(path) {
		return RepoInfo{}, ErrNotRepository
	}

	out, err := c.run(ctx, path, "rev-parse", "--git-dir", "--git-common-dir", "--is-bare-repository")
	if err != nil {
		// The directory carries metadata of its own, so a refusal here means
		// the metadata is broken (a pruned worktree admin dir, an empty .git).
		return RepoInfo{}, fmt.Errorf("git rev-parse in %s: %w", path, err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		return RepoInfo{}, fmt.Errorf("git rev-parse in %s: unexpected output %q", path, out)
	}

	gitDir, err := resolveFrom(path, lines[0])
	if err != nil {
		return RepoInfo{}, err
	}
	commonDir, err := resolveFrom(path, lines[1])
	if err != nil {
		return RepoInfo{}, err
	}

	return RepoInfo{
		Path:      path,
		GitDir:    gitDir,
		CommonDir: commonDir,
		Bare:      strings.TrimSpace(lines[2]) == "true",
	}, nil
}

// ListWorktrees returns the linked worktrees of the repository at path.
// The main worktree (or the bare repository entry) is not included.
func (c *Client) ListWorktrees(ctx context.Context, path string) ([]Worktree, error) {
	out, err := c.run(ctx, path, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git worktree list in %s: %w", path, err)
	}
	return ParseWorktreeList(out), nil
}

// HasGitMetadata reports whether path looks like a repository root: it has a
// .git entry (directory or pointer file) or is itself a bare git directory.
func HasGitMetadata(path string) bool {
	if _, err := os.Lstat(filepath.Join(path, ".git")); err == nil {
		return true
	}
	head, err := os.Stat(filepath.Join(path, "HEAD"))
	if err != nil || head.IsDir() {
		return false
	}
	objects, err := os.Stat(filepath.Join(path, "objects"))
	return err == nil && objects.IsDir()
}

// MainRepositoryPath maps a canonical common git dir to the directory users
// know the repository by:
//
//	<repo>/.git                   -> <repo>
//	<repo>/.bare (named by <repo>/.git pointer) -> <repo>
//	<bare>.git                    -> <bare>.git
func MainRepositoryPath(commonDir string) string {
	if filepath.Base(commonDir) == ".git" {
		return filepath.Dir(commonDir)
	}
	parent := filepath.Dir(commonDir)
	if target, err := ReadGitdirPointer(filepath.Join(parent, ".git")); err == nil && target == commonDir {
		return parent
	}
	return commonDir
}

// ReadGitdirPointer reads a "gitdir: <path>" pointer file and returns the
// canonical target. Relative targets are resolved against the file's directory.
func ReadGitdirPointer(pointerPath string) (string, error) {
	info, err := os.Lstat(pointerPath)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a gitdir pointer file", pointerPath)
	}
	data, err := os.ReadFile(pointerPath)
	if err != nil {
		return "", err
	}
	content := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(content, "gitdir:")
	if !ok {
		return "", fmt.Errorf("%s is not a gitdir pointer file", pointerPath)
	}
	return resolveFrom(filepath.Dir(pointerPath), strings.TrimSpace(target))
}

// resolveFrom canonicalizes p, interpreting relative paths against base.
func resolveFrom(base, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return pathutil.Canonicalize(p)
}

// execGit runs the git binary. GIT_CEILING_DIRECTORIES stops git from walking
// up into an enclosing repository when dir has no metadata of its own.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_CEILING_DIRECTORIES="+filepath.Dir(dir))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return string(out), nil
}
