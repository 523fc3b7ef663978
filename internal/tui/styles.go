package tui

import "github.com/charmbracelet/lipgloss"

var (
	menuStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4"))

	menuSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("1")).
				Bold(true)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)
)
