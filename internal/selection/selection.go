// pattern: Functional Core

// Package selection maps a direct query or a picker line onto exactly one
// discovered entry and freezes it into a Selection.
package selection

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"sessionizer/internal/discovery"
	"sessionizer/internal/naming"
)

var (
	// ErrAmbiguous means more than one entry matched at the best tier.
	ErrAmbiguous = errors.New("ambiguous selection")
	// ErrNoMatch means no entry matched at any tier.
	ErrNoMatch = errors.New("no matching directory")
)

// Tier is the strength of a query match.
type Tier int

const (
	// TierExact: the query equals the display name, resolved path or discovered path.
	TierExact Tier = iota
	// TierPartial: the query is a substring of the display name or resolved path.
	TierPartial
)

func (t Tier) String() string {
	if t == TierExact {
		return "exact"
	}
	return "partial"
}

// Error describes a failed resolution. It unwraps to ErrAmbiguous or ErrNoMatch.
type Error struct {
	Kind    error
	Query   string
	Tier    Tier
	Matches []string // Display names of the competing entries
}

func (e *Error) Error() string {
	if errors.Is(e.Kind, ErrAmbiguous) {
		return fmt.Sprintf("%v: %q has %d %s matches: %s",
			e.Kind, e.Query, len(e.Matches), e.Tier, strings.Join(e.Matches, ", "))
	}
	return fmt.Sprintf("%v for %q", e.Kind, e.Query)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Selection is the chosen directory and the session it maps to.
type Selection struct {
	Path        string // Canonical directory to open the session in
	DisplayName string
	SessionName string // Non-empty, restricted to [A-Za-z0-9_-]
}

// BuildSelection freezes an entry into a Selection.
func BuildSelection(e discovery.DirectoryEntry) Selection {
	if e.DisplayName == "" {
		e.DisplayName = naming.DisplayName(e)
	}
	return Selection{
		Path:        e.ResolvedPath,
		DisplayName: e.DisplayName,
		SessionName: naming.SessionName(e),
	}
}

// ResolveDirect finds the single entry matching query. Exact matches win over
// partial ones; several matches within the winning tier is an error rather
// than a guess. Matching is case-sensitive. The path an entry was found
// under is only consulted when no display name or resolved path equals the
// query, so a symlink cannot shadow the directory it points at.
func ResolveDirect(entries []discovery.DirectoryEntry, query string) (Selection, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Selection{}, &Error{Kind: ErrNoMatch, Query: query}
	}

	tiers := []struct {
		tier  Tier
		match func(discovery.DirectoryEntry) bool
	}{
		{TierExact, func(e discovery.DirectoryEntry) bool {
			return e.DisplayName == query || e.ResolvedPath == query
		}},
		{TierExact, func(e discovery.DirectoryEntry) bool {
			return e.Path == query
		}},
		{TierPartial, func(e discovery.DirectoryEntry) bool {
			return strings.Contains(e.DisplayName, query) || strings.Contains(e.ResolvedPath, query)
		}},
	}

	for _, t := range tiers {
		var matches []discovery.DirectoryEntry
		for _, e := range entries {
			if t.match(e) {
				matches = append(matches, e)
			}
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return BuildSelection(matches[0]), nil
		default:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.DisplayName
			}
			slices.Sort(names)
			return Selection{}, &Error{Kind: ErrAmbiguous, Query: query, Tier: t.tier, Matches: names}
		}
	}
	return Selection{}, &Error{Kind: ErrNoMatch, Query: query}
}

// Sort returns entries ordered by display name, then resolved path.
func Sort(entries []discovery.DirectoryEntry) []discovery.DirectoryEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b discovery.DirectoryEntry) int {
		return cmp.Or(
			cmp.Compare(a.DisplayName, b.DisplayName),
			cmp.Compare(a.ResolvedPath, b.ResolvedPath),
		)
	})
	return sorted
}
