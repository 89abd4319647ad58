// pattern: Functional Core

// Package naming derives display names and tmux session names from
// classified directory entries.
package naming

import (
	"fmt"
	"hash/fnv"
	"path/filepath"
	"strings"

	"sessionizer/internal/discovery"
)

const (
	// MaxSessionNameLength bounds sanitized session names.
	MaxSessionNameLength = 64
	// DefaultSessionName is used when nothing of the input survives sanitizing.
	DefaultSessionName = "default_session"
)

// DisplayName returns the name shown to users for an entry:
//
//	Plain, GitRepository  basename of the resolved path
//	GitWorktree           "[<main basename>] <basename>"
//	GitWorktreeContainer  "" (containers are never listed)
func DisplayName(e discovery.DirectoryEntry) string {
	base := filepath.Base(e.ResolvedPath)
	switch t := e.Type.(type) {
	case discovery.Plain, discovery.GitRepository:
		return base
	case discovery.GitWorktree:
		return "[" + filepath.Base(t.MainWorktree) + "] " + base
	case discovery.GitWorktreeContainer:
		return ""
	default:
		return base
	}
}

// Apply returns a copy of entries with DisplayName filled in.
func Apply(entries []discovery.DirectoryEntry) []discovery.DirectoryEntry {
	out := make([]discovery.DirectoryEntry, len(entries))
	for i, e := range entries {
		e.DisplayName = DisplayName(e)
		out[i] = e
	}
	return out
}

// SessionName returns the sanitized session name for an entry. When nothing
// of the display name survives sanitizing, the default name is suffixed with
// a hash of the resolved path so distinct directories keep distinct sessions.
func SessionName(e discovery.DirectoryEntry) string {
	name := e.DisplayName
	if name == "" {
		name = DisplayName(e)
	}
	out := SanitizeSessionName(name)
	if out == DefaultSessionName && name != DefaultSessionName {
		h := fnv.New32a()
		_, _ = h.Write([]byte(e.ResolvedPath))
		out = fmt.Sprintf("%s-%08x", DefaultSessionName, h.Sum32())
	}
	return out
}

// SanitizeSessionName maps name onto [A-Za-z0-9_-]. Every other character
// becomes '_', runs of '_' collapse to one, and the result is trimmed of
// '_' and cut to MaxSessionNameLength. It is idempotent and never returns "".
func SanitizeSessionName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		if !allowed(r) {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		sb.WriteRune(r)
	}

	out := strings.Trim(sb.String(), "_")
	if len(out) > MaxSessionNameLength {
		out = strings.TrimRight(out[:MaxSessionNameLength], "_")
	}
	if out == "" {
		return DefaultSessionName
	}
	return out
}

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	default:
		return false
	}
}
