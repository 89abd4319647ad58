// pattern: Functional Core

package selection

import (
	"strings"

	"sessionizer/internal/discovery"
)

// Separator splits the display name from the path in a picker line.
const Separator = "\t"

// FormatLine renders an entry as "<display name>\t<resolved path>". Tabs in
// the display name are replaced so the first separator is always the split.
func FormatLine(e discovery.DirectoryEntry) string {
	return strings.ReplaceAll(e.DisplayName, Separator, " ") + Separator + e.ResolvedPath
}

// Lines renders entries as picker lines, in order.
func Lines(entries []discovery.DirectoryEntry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = FormatLine(e)
	}
	return lines
}

// ParseLine splits a picker line on its first separator.
func ParseLine(line string) (display, path string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	return strings.Cut(line, Separator)
}

// FromLine maps a line returned by a picker back to its entry. Lines
// without a separator are treated as a bare display name and must match
// exactly one entry.
func FromLine(entries []discovery.DirectoryEntry, line string) (Selection, error) {
	display, path, ok := ParseLine(line)
	if !ok {
		return fromDisplayName(entries, display)
	}
	for _, e := range entries {
		if e.ResolvedPath == path {
			return BuildSelection(e), nil
		}
	}
	return Selection{}, &Error{Kind: ErrNoMatch, Query: line}
}

func fromDisplayName(entries []discovery.DirectoryEntry, display string) (Selection, error) {
	var found []discovery.DirectoryEntry
	for _, e := range entries {
		if e.DisplayName == display {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return Selection{}, &Error{Kind: ErrNoMatch, Query: display}
	case 1:
		return BuildSelection(found[0]), nil
	default:
		names := make([]string, len(found))
		for i, e := range found {
			names[i] = e.ResolvedPath
		}
		return Selection{}, &Error{Kind: ErrAmbiguous, Query: display, Tier: TierExact, Matches: names}
	}
}
