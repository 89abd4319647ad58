// pattern: Imperative Shell

// Package pathutil canonicalizes and normalizes filesystem paths.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser expands a leading ~ to the current user's home directory.
// Paths of the form ~user are returned unchanged.
func ExpandUser(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ShortenUser replaces the current user's home directory prefix with ~.
func ShortenUser(path string) string {
	if path == "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(filepath.Separator)) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}

// Normalize expands ~, cleans the path and makes it absolute.
// It does not touch the filesystem beyond resolving the working directory.
func Normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	path = filepath.Clean(ExpandUser(path))
	if filepath.IsAbs(path) {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// Canonicalize returns the absolute, symlink-free form of path.
// It fails when any component cannot be resolved (broken link, permission denied).
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(ExpandUser(path))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks %s: %w", path, err)
	}
	return resolved, nil
}

// NormalizeRoots normalizes each root and drops empty and repeated entries,
// keeping the first occurrence.
func NormalizeRoots(roots []string) []string {
	if len(roots) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(roots))
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		root = Normalize(root)
		if root == "" {
			continue
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		out = append(out, root)
	}
	return out
}

// IsWithin reports whether path is dir itself or lies beneath it.
// Both arguments are expected to be canonical.
func IsWithin(path, dir string) bool {
	if path == dir {
		return true
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
