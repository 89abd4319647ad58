// pattern: Functional Core

package discovery

import "fmt"

// EntryType classifies a discovered directory. The set of implementations is
// closed: Plain, GitRepository, GitWorktree and GitWorktreeContainer.
type EntryType interface {
	isEntryType()
	String() string
}

// Plain is a directory without git metadata of its own.
type Plain struct{}

// GitRepository is a standalone repository, bare or normal.
type GitRepository struct{}

// GitWorktree is a linked worktree. MainWorktree is the canonical path of
// the repository owning its metadata.
type GitWorktree struct {
	MainWorktree string
}

// GitWorktreeContainer is a repository whose linked worktrees are all
// represented as entries of their own. Containers are never selectable.
type GitWorktreeContainer struct{}

func (Plain) isEntryType()                {}
func (GitRepository) isEntryType()        {}
func (GitWorktree) isEntryType()          {}
func (GitWorktreeContainer) isEntryType() {}

func (Plain) String() string                { return "plain" }
func (GitRepository) String() string        { return "repository" }
func (GitWorktree) String() string          { return "worktree" }
func (GitWorktreeContainer) String() string { return "container" }

// DirectoryEntry is one classified candidate directory.
type DirectoryEntry struct {
	Path         string // As discovered, may contain symlinks
	ResolvedPath string // Canonical form, unique across a scan result
	Type         EntryType
	ParentPath   string // Set only for GitWorktree, equal to MainWorktree
	DisplayName  string // Filled in by the naming package
}

// WarningKind identifies a recoverable per-candidate failure.
type WarningKind int

const (
	// UnreadablePath: a broken link or permission error while listing or
	// canonicalizing. The candidate is dropped.
	UnreadablePath WarningKind = iota
	// GitProbeFailure: repository metadata could not be read. The candidate
	// is kept as Plain.
	GitProbeFailure
)

func (k WarningKind) String() string {
	switch k {
	case UnreadablePath:
		return "unreadable path"
	case GitProbeFailure:
		return "git probe failure"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning reports a candidate that was dropped or degraded during a scan.
type Warning struct {
	Kind WarningKind
	Path string
	Err  error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s: %s: %v", w.Kind, w.Path, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Roots are the configured starting points of a scan.
type Roots struct {
	// Search roots contribute their descendants at the scan depth.
	Search []string
	// Additional paths are candidates themselves.
	Additional []string
}

// Options tune a Scanner.
type Options struct {
	Depth         int  // Depth below each search root at which candidates are taken (default 1)
	IncludeHidden bool // Keep candidates whose name starts with "."
	Workers       int  // Worker pool size (default runtime.NumCPU())
}
