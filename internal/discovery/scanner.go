// pattern: Imperative Shell

// Package discovery finds candidate project directories under configured
// roots and classifies each one as a plain folder, a git repository or a
// linked worktree.
//
// A linked worktree always names its main worktree, even when that
// repository lies outside every root and so has no entry of its own. Callers
// must not assume MainWorktree resolves to another entry in the result.
package discovery

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"sessionizer/internal/git"
	"sessionizer/internal/logging"
	"sessionizer/internal/pathutil"
)

// Prober answers git questions about a directory. *git.Client implements it.
type Prober interface {
	Open(ctx context.Context, path string) (git.RepoInfo, error)
	ListWorktrees(ctx context.Context, path string) ([]git.Worktree, error)
}

// Scanner discovers and classifies candidate directories.
type Scanner struct {
	prober      Prober
	logger      *logging.ScopedLogger
	classifyLog *logging.ScopedLogger
	opts        Options
}

// NewScanner creates a scanner. Zero option values fall back to a depth of
// one and one worker per CPU.
func NewScanner(prober Prober, logs logging.LoggerProvider, opts Options) *Scanner {
	if opts.Depth < 1 {
		opts.Depth = 1
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	if logs == nil {
		logs = logging.NopProvider{}
	}
	return &Scanner{
		prober:      prober,
		logger:      logs.For("scan"),
		classifyLog: logs.For("classify"),
		opts:        opts,
	}
}

// candidate is a directory under consideration. resolved is empty until the
// candidate has been canonicalized.
type candidate struct {
	path     string
	resolved string
	explicit bool // Named directly by an additional path
}

// Scan enumerates candidates under roots, drops excluded and unreadable ones,
// collapses duplicates by canonical path and classifies the rest. Per-candidate
// failures never abort the scan; they are returned as warnings. Container
// repositories are left out of the result.
func (s *Scanner) Scan(ctx context.Context, roots Roots, excludes []*regexp.Regexp) ([]DirectoryEntry, []Warning) {
	found, warnings := s.enumerate(roots)

	admitted, admitWarnings := s.admitAll(found, excludes)
	warnings = append(warnings, admitWarnings...)

	probes := s.inspectAll(ctx, dedup(admitted))
	probes = append(probes, s.expandContainers(ctx, probes, excludes)...)

	for _, p := range probes {
		warnings = append(warnings, p.warnings...)
	}
	for _, w := range warnings {
		s.logger.Warn("candidate skipped or degraded", "kind", w.Kind.String(), "path", w.Path, "error", w.Err)
	}

	entries := classify(probes)
	scanned := make(map[string]bool, len(entries))
	for _, e := range entries {
		scanned[e.ResolvedPath] = true
	}
	for _, e := range entries {
		switch t := e.Type.(type) {
		case GitWorktreeContainer:
			s.classifyLog.Debug("repository represented by its worktrees", "path", e.ResolvedPath)
		case GitWorktree:
			if !scanned[t.MainWorktree] {
				s.classifyLog.Debug("worktree of a repository outside the scanned roots",
					"path", e.ResolvedPath, "main_worktree", t.MainWorktree)
			}
		}
	}
	selectable := Selectable(entries)

	s.logger.Info("scan complete",
		"candidates", len(found),
		"entries", len(selectable),
		"warnings", len(warnings),
	)
	return selectable, warnings
}

// enumerate lists search-root descendants at the configured depth, followed
// by the additional paths. Roots are listed in parallel; order is preserved.
func (s *Scanner) enumerate(roots Roots) ([]candidate, []Warning) {
	search := pathutil.NormalizeRoots(roots.Search)

	type listing struct {
		paths    []string
		warnings []Warning
	}
	listings := make([]listing, len(search))
	s.parallel(len(search), func(i int) {
		listings[i].paths, listings[i].warnings = s.listRoot(search[i])
	})

	var found []candidate
	var warnings []Warning
	for _, l := range listings {
		for _, p := range l.paths {
			found = append(found, candidate{path: p})
		}
		warnings = append(warnings, l.warnings...)
	}
	for _, p := range pathutil.NormalizeRoots(roots.Additional) {
		found = append(found, candidate{path: p, explicit: true})
	}
	return found, warnings
}

// listRoot returns the entries exactly opts.Depth levels below root, following
// symlinked directories on the way down. A missing root is not an error.
func (s *Scanner) listRoot(root string) ([]string, []Warning) {
	var paths []string
	var warnings []Warning

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		children, err := os.ReadDir(dir)
		if err != nil {
			if depth == 0 && errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug("search path does not exist", "path", dir)
				return
			}
			warnings = append(warnings, Warning{Kind: UnreadablePath, Path: dir, Err: err})
			return
		}
		for _, child := range children {
			path := filepath.Join(dir, child.Name())
			if depth+1 == s.opts.Depth {
				paths = append(paths, path)
				continue
			}
			if s.hidden(child.Name()) {
				continue
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				walk(path, depth+1)
			}
		}
	}
	walk(root, 0)
	return paths, warnings
}

// admitAll canonicalizes candidates in parallel and keeps those that are
// readable directories passing the hidden and exclusion filters.
func (s *Scanner) admitAll(found []candidate, excludes []*regexp.Regexp) ([]candidate, []Warning) {
	type outcome struct {
		c       candidate
		keep    bool
		warning *Warning
	}
	outcomes := make([]outcome, len(found))
	s.parallel(len(found), func(i int) {
		c, keep, w := s.admit(found[i], excludes)
		outcomes[i] = outcome{c: c, keep: keep, warning: w}
	})

	admitted := make([]candidate, 0, len(found))
	var warnings []Warning
	for _, o := range outcomes {
		if o.warning != nil {
			warnings = append(warnings, *o.warning)
		}
		if o.keep {
			admitted = append(admitted, o.c)
		}
	}
	return admitted, warnings
}

func (s *Scanner) admit(c candidate, excludes []*regexp.Regexp) (candidate, bool, *Warning) {
	if !c.explicit && s.hidden(filepath.Base(c.path)) {
		return c, false, nil
	}
	if pattern, ok := matchAny(excludes, c.path); ok {
		s.logger.Debug("excluded", "path", c.path, "pattern", pattern)
		return c, false, nil
	}

	resolved, err := pathutil.Canonicalize(c.path)
	if err != nil {
		return c, false, &Warning{Kind: UnreadablePath, Path: c.path, Err: err}
	}
	if pattern, ok := matchAny(excludes, resolved); ok {
		s.logger.Debug("excluded", "path", c.path, "resolved", resolved, "pattern", pattern)
		return c, false, nil
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return c, false, &Warning{Kind: UnreadablePath, Path: c.path, Err: err}
	}
	if !info.IsDir() {
		return c, false, nil
	}

	c.resolved = resolved
	return c, true, nil
}

// dedup keeps the first candidate for each canonical path.
func dedup(candidates []candidate) []candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c.resolved]; ok {
			continue
		}
		seen[c.resolved] = struct{}{}
		out = append(out, c)
	}
	return out
}

// inspectAll probes every candidate with git in parallel.
func (s *Scanner) inspectAll(ctx context.Context, candidates []candidate) []probe {
	probes := make([]probe, len(candidates))
	s.parallel(len(candidates), func(i int) {
		probes[i] = s.inspect(ctx, candidates[i])
	})
	return probes
}

// inspect classifies one candidate at the git level. Any failure other than
// "not a repository" degrades the candidate to plain with a warning.
func (s *Scanner) inspect(ctx context.Context, c candidate) probe {
	p := probe{candidate: c, kind: probePlain}

	info, err := s.prober.Open(ctx, c.resolved)
	if err != nil {
		if !errors.Is(err, git.ErrNotRepository) {
			p.warnings = append(p.warnings, Warning{Kind: GitProbeFailure, Path: c.resolved, Err: err})
		}
		return p
	}

	if info.IsLinkedWorktree() {
		p.kind = probeWorktree
		p.main = info.MainPath()
		return p
	}

	worktrees, err := s.prober.ListWorktrees(ctx, c.resolved)
	if err != nil {
		p.warnings = append(p.warnings, Warning{Kind: GitProbeFailure, Path: c.resolved, Err: err})
		return p
	}

	p.kind = probeRepository
	p.bare = info.Bare
	for _, wt := range worktrees {
		resolved, err := pathutil.Canonicalize(wt.Path)
		if err != nil {
			s.classifyLog.Debug("linked worktree missing on disk", "repo", c.resolved, "worktree", wt.Path)
			continue
		}
		p.linked = append(p.linked, resolved)
	}
	return p
}

// expandContainers picks up the worktrees of bare repositories that live
// inside the repository directory itself. Those sit one level below the
// configured depth and would otherwise never be candidates.
func (s *Scanner) expandContainers(ctx context.Context, probes []probe, excludes []*regexp.Regexp) []probe {
	seen := make(map[string]struct{}, len(probes))
	for _, p := range probes {
		seen[p.resolved] = struct{}{}
	}

	var extra []candidate
	for _, p := range probes {
		if p.kind != probeRepository || !p.bare {
			continue
		}
		for _, wt := range p.linked {
			if wt == p.resolved || !pathutil.IsWithin(wt, p.resolved) {
				continue
			}
			if _, ok := seen[wt]; ok {
				continue
			}
			if s.hidden(filepath.Base(wt)) {
				continue
			}
			if _, excluded := matchAny(excludes, wt); excluded {
				continue
			}
			seen[wt] = struct{}{}
			extra = append(extra, candidate{path: wt, resolved: wt})
		}
	}
	if len(extra) == 0 {
		return nil
	}
	s.logger.Debug("expanding container worktrees", "count", len(extra))
	return s.inspectAll(ctx, extra)
}

func (s *Scanner) hidden(name string) bool {
	return !s.opts.IncludeHidden && strings.HasPrefix(name, ".")
}

// parallel runs fn for each index in [0, n) on at most opts.Workers goroutines.
// Each call writes only its own result slot, so the join is the only sync point.
func (s *Scanner) parallel(n int, fn func(i int)) {
	var g errgroup.Group
	g.SetLimit(s.opts.Workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}

// matchAny returns the first pattern matching path.
func matchAny(patterns []*regexp.Regexp, path string) (string, bool) {
	for _, re := range patterns {
		if re.MatchString(path) {
			return re.String(), true
		}
	}
	return "", false
}
