package ui

import (
	"charm.land/lipgloss/v2"
)

// Theme holds the styles used by the explorer view.
type Theme struct {
	Path      lipgloss.Style
	Separator lipgloss.Style
	Cursor    lipgloss.Style
	Key       lipgloss.Style
	Index     lipgloss.Style
	Value     lipgloss.Style
	Summary   lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultTheme mirrors the CLI palette: cyan keys, dim indices and
// punctuation, yellow search accents.
func DefaultTheme() Theme {
	return Theme{
		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14")),
		Key:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Index:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("248")),
		Summary:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
