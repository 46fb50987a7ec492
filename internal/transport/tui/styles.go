package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary     = lipgloss.Color("#8BC34A")
	colorMuted       = lipgloss.Color("#6B7280")
	colorBorder      = lipgloss.Color("#2A3850")
	colorDestructive = lipgloss.Color("#E53935")
)

// Styles groups the lipgloss styles shared by every screen.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Notice  lipgloss.Style
	Field   lipgloss.Style
	Focused lipgloss.Style
	Dialog  lipgloss.Style
	Tab     lipgloss.Style
	TabOn   lipgloss.Style
}

// DefaultStyles returns the styles used by the inventory screens.
func DefaultStyles() Styles {
	field := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).MarginBottom(1),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Error:   lipgloss.NewStyle().Foreground(colorDestructive),
		Notice:  lipgloss.NewStyle().Foreground(colorPrimary),
		Field:   field,
		Focused: field.BorderForeground(colorPrimary),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2),
		Tab:   lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		TabOn: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Underline(true).Padding(0, 1),
	}
}

// field renders an input box, highlighted when focused.
func (s Styles) field(view string, focused bool) string {
	if focused {
		return s.Focused.Render(view)
	}
	return s.Field.Render(view)
}

// errorLine renders msg below a field, or nothing when msg is empty.
func (s Styles) errorLine(msg string) string {
	if msg == "" {
		return ""
	}
	return s.Error.Render(msg) + "\n"
}
