// pattern: Functional Core

package discovery

// probeKind is the raw outcome of probing one candidate.
type probeKind int

const (
	probePlain probeKind = iota
	probeRepository
	probeWorktree
)

// probe is a deduplicated candidate together with what git said about it.
type probe struct {
	candidate
	kind     probeKind
	bare     bool
	main     string   // Owning repository, for probeWorktree
	linked   []string // Canonical paths of existing linked worktrees, for probeRepository
	warnings []Warning
}

// classify turns probes into entries. It consults the whole candidate set so
// that a repository is marked as a container only when every one of its
// linked worktrees is itself an entry. Output order follows input order.
func classify(probes []probe) []DirectoryEntry {
	present := make(map[string]struct{}, len(probes))
	for _, p := range probes {
		present[p.resolved] = struct{}{}
	}

	entries := make([]DirectoryEntry, 0, len(probes))
	for _, p := range probes {
		entry := DirectoryEntry{Path: p.path, ResolvedPath: p.resolved}
		switch p.kind {
		case probeWorktree:
			entry.Type = GitWorktree{MainWorktree: p.main}
			entry.ParentPath = p.main
		case probeRepository:
			if allPresent(p.linked, present) {
				entry.Type = GitWorktreeContainer{}
			} else {
				entry.Type = GitRepository{}
			}
		default:
			entry.Type = Plain{}
		}
		entries = append(entries, entry)
	}
	return entries
}

// allPresent reports whether paths is non-empty and every path is in set.
func allPresent(paths []string, set map[string]struct{}) bool {
	if len(paths) == 0 {
		return false
	}
	for _, p := range paths {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// Selectable drops container entries, which are represented by their worktrees.
func Selectable(entries []DirectoryEntry) []DirectoryEntry {
	out := make([]DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := e.Type.(GitWorktreeContainer); ok {
			continue
		}
		out = append(out, e)
	}
	return out
}
