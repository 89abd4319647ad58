// pattern: Imperative Shell

package picker

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"sessionizer/internal/pathutil"
	"sessionizer/internal/selection"
)

// entryItem is one picker line split into its display and path columns.
type entryItem struct {
	line    string
	display string
	path    string
}

func newEntryItem(line string) entryItem {
	display, path, _ := selection.ParseLine(line)
	return entryItem{line: line, display: display, path: path}
}

// FilterValue matches on both the display name and the path.
func (i entryItem) FilterValue() string {
	return i.display + " " + i.path
}

// entryDelegate renders an entry on a single row: cursor, name, path.
type entryDelegate struct {
	styles *Styles
}

func (d entryDelegate) Height() int {
	return 1
}

func (d entryDelegate) Spacing() int {
	return 0
}

func (d entryDelegate) Update(tea.Msg, *list.Model) tea.Cmd {
	return nil
}

// Render writes one row. The path is shortened with ~ and truncated to
// the space left after the name.
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ei, ok := item.(entryItem)
	if !ok {
		return
	}
	selected := index == m.Index()

	indicator := "  "
	if selected {
		indicator = d.styles.CursorStyle().Render("▸ ")
	}

	name := d.renderName(ei.display, selected)
	path := pathutil.ShortenUser(ei.path)
	if m.Width() > 0 {
		avail := m.Width() - lipgloss.Width(indicator) - lipgloss.Width(name) - 2
		path = ansi.Truncate(path, max(avail, 0), "…")
	}

	_, _ = fmt.Fprintf(w, "%s%s  %s", indicator, name, d.styles.PathStyle(selected).Render(path))
}

// renderName highlights the "[main]" prefix of worktree names.
func (d entryDelegate) renderName(display string, selected bool) string {
	if strings.HasPrefix(display, "[") {
		if end := strings.Index(display, "] "); end > 0 {
			prefix := d.styles.WorktreeStyle().Render(display[:end+1])
			return prefix + " " + d.styles.NameStyle(selected).Render(display[end+2:])
		}
	}
	return d.styles.NameStyle(selected).Render(display)
}

func toListItems(lines []string) []list.Item {
	items := make([]list.Item, len(lines))
	for i, line := range lines {
		items[i] = newEntryItem(line)
	}
	return items
}
