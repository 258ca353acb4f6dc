package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Panel             *lipgloss.Style
	ActivePanel       *lipgloss.Style
	Title             *lipgloss.Style
	ActiveTitle       *lipgloss.Style
	Item              *lipgloss.Style
	SelectedItem      *lipgloss.Style
	InactiveSelection *lipgloss.Style
	Query             *lipgloss.Style
	Empty             *lipgloss.Style
	Receive           *lipgloss.Style
	Input             *lipgloss.Style
	InputPrompt       *lipgloss.Style
	Cursor            *lipgloss.Style
	Error             *lipgloss.Style
	Connected         *lipgloss.Style
	Disconnected      *lipgloss.Style
	Status            *lipgloss.Style
}

var defaultStyles = Styles{
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
	),
	ActivePanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	ActiveTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	InactiveSelection: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Underline(true),
	),
	Query: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Receive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	InputPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Connected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Disconnected: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	),
	Status: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
