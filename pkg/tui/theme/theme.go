// Package theme centralizes Lip Gloss styles for the gallery TUI.
package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme groups the styles used by the gallery view.
type Theme struct {
	Header        lipgloss.Style
	HeaderCount   lipgloss.Style
	Photo         lipgloss.Style
	PhotoSelected lipgloss.Style
	PhotoCursor   lipgloss.Style
	Status        lipgloss.Style
	StatusKey     lipgloss.Style
	Prompt        lipgloss.Style
}

// Default returns the stock gallery theme.
func Default() Theme {
	return Theme{
		Header:        lipgloss.NewStyle().Bold(true).Underline(true),
		HeaderCount:   lipgloss.NewStyle().Faint(true),
		Photo:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		PhotoSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		PhotoCursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		Status:        lipgloss.NewStyle().Faint(true),
		StatusKey:     lipgloss.NewStyle().Bold(true),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	}
}
