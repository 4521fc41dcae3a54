// Package tui provides the interactive editor behind `ado2tf config`.
package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor  = lipgloss.AdaptiveColor{Light: "#0063B1", Dark: "#3A96DD"}
	successColor = lipgloss.AdaptiveColor{Light: "#107C10", Dark: "#6CCB5F"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#C50F1F", Dark: "#F1707B"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#8A8886", Dark: "#605E5C"}
	warnColor    = lipgloss.AdaptiveColor{Light: "#CA5010", Dark: "#F7894A"}

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	// PathStyle shows the file being edited under the title
	PathStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(mutedColor)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	ConfirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warnColor).
			Padding(1, 2)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// GetTheme returns the huh theme for forms
func GetTheme() *huh.Theme {
	return huh.ThemeBase16()
}

// GetAccessibleTheme returns a plain theme for screen readers
func GetAccessibleTheme() *huh.Theme {
	return huh.ThemeBase()
}
