package tui

import "github.com/charmbracelet/lipgloss"

// Cockpit palette
var (
	userColor    = lipgloss.Color("#2F6FDF")
	botColor     = lipgloss.Color("#3A4552")
	accentColor  = lipgloss.Color("#E8C4A0")
	mutedColor   = lipgloss.Color("#8C99A6")
	pendingColor = lipgloss.Color("#B5D99C")
	fgColor      = lipgloss.Color("#F5F3ED")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(userColor).
			Padding(0, 1)

	botBubbleStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(botColor).
			Padding(0, 1)

	pendingStyle = lipgloss.NewStyle().
			Foreground(pendingColor).
			Italic(true)

	avatarStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	disabledInputBoxStyle = inputBoxStyle.
				BorderForeground(mutedColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)
)
