// pattern: Functional Core

package git

import (
	"bufio"
	"path/filepath"
	"strings"
)

// Worktree is one entry of `git worktree list --porcelain`.
type Worktree struct {
	Name     string // Worktree directory name
	Path     string // Path as reported by git
	Branch   string // Branch name without refs/heads/
	Bare     bool
	Detached bool
	Prunable bool // Worktree directory is gone; metadata awaits `git worktree prune`
}

// ParseWorktreeList parses the porcelain output of `git worktree list`.
// Format:
//
//	worktree /path/to/worktree
//	HEAD abc123
//	branch refs/heads/branch-name
//	<blank line>
//
// The first entry is the main worktree (or the bare repository); it is
// skipped and only linked worktrees are returned.
func ParseWorktreeList(output string) []Worktree {
	var all []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			all = append(all, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "worktree "):
			flush()
			path := strings.TrimPrefix(line, "worktree ")
			current = &Worktree{Path: path, Name: filepath.Base(path)}
		case current == nil:
			continue
		case strings.HasPrefix(line, "branch "):
			current.Branch = strings.TrimPrefix(strings.TrimPrefix(line, "branch "), "refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		case line == "prunable" || strings.HasPrefix(line, "prunable "):
			current.Prunable = true
		case line == "":
			flush()
		}
	}
	flush()

	if len(all) <= 1 {
		return nil
	}
	return all[1:]
}
