package picker

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Styles renders picker elements in a catppuccin flavor.
type Styles struct {
	flavor catppuccin.Flavor
}

// NewStyles returns styles for a theme name (latte, frappe, macchiato, mocha).
// Unknown names fall back to mocha.
func NewStyles(themeName string) *Styles {
	return &Styles{flavor: flavorFromName(themeName)}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	default:
		return catppuccin.Mocha
	}
}

func (s *Styles) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Base().Hex)).
		Background(lipgloss.Color(s.flavor.Mauve().Hex)).
		Padding(0, 1)
}

func (s *Styles) CursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Mauve().Hex))
}

// NameStyle styles the display name column.
func (s *Styles) NameStyle(selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Text().Hex))
	if selected {
		style = style.Bold(true).Foreground(lipgloss.Color(s.flavor.Mauve().Hex))
	}
	return style
}

// WorktreeStyle styles the "[main]" prefix of worktree names.
func (s *Styles) WorktreeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Teal().Hex))
}

// PathStyle styles the path column.
func (s *Styles) PathStyle(selected bool) lipgloss.Style {
	color := s.flavor.Overlay0()
	if selected {
		color = s.flavor.Subtext0()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex))
}

func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(1, 0, 0, 2).
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}
