// pattern: Imperative Shell

package picker

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"sessionizer/internal/logging"
)

// Builtin is a full-screen list picker with fuzzy filtering.
type Builtin struct {
	styles *Styles
	in     io.Reader
	out    io.Writer
	logger *logging.ScopedLogger
}

// NewBuiltin creates a picker drawing on stderr, so stdout stays usable
// for --print and list output.
func NewBuiltin(theme string, logs logging.LoggerProvider) *Builtin {
	if logs == nil {
		logs = logging.NopProvider{}
	}
	return &Builtin{
		styles: NewStyles(theme),
		out:    os.Stderr,
		logger: logs.For("picker"),
	}
}

// Pick runs the picker until the user chooses or cancels.
func (b *Builtin) Pick(ctx context.Context, lines []string) (string, error) {
	if len(lines) == 0 {
		return "", ErrNoCandidates
	}

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(b.out),
	}
	if b.in != nil {
		opts = append(opts, tea.WithInput(b.in))
	}

	b.logger.Debug("starting builtin picker", "items", len(lines))
	final, err := tea.NewProgram(newModel(lines, b.styles), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}

	m, ok := final.(model)
	if !ok || m.cancelled || m.choice == "" {
		b.logger.Debug("picker cancelled")
		return "", ErrCancelled
	}
	b.logger.Debug("picker chose", "line", m.choice)
	return m.choice, nil
}

// model is the bubbletea state of the builtin picker.
type model struct {
	list      list.Model
	keys      keyMap
	choice    string
	cancelled bool
}

func newModel(lines []string, styles *Styles) model {
	keys := defaultKeyMap()

	l := list.New(toListItems(lines), entryDelegate{styles: styles}, 0, 0)
	l.Title = "sessionizer"
	l.Styles.Title = styles.TitleStyle()
	l.Styles.HelpStyle = styles.HelpStyle()
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Choose, keys.Cancel}
	}

	return model{list: l, keys: keys}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceCancel) {
			m.cancelled = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Choose) {
			if item, ok := m.list.SelectedItem().(entryItem); ok {
				m.choice = item.line
				return m, tea.Quit
			}
		}
		// While filtering, esc and q belong to the filter input.
		if m.list.FilterState() == list.Unfiltered && key.Matches(msg, m.keys.Cancel) {
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return m.list.View()
}
