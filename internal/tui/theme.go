package tui

import "charm.land/lipgloss/v2"

var (
	indigo = lipgloss.Color("#4F46E5")
	teal   = lipgloss.Color("#14B8A6")
	amber  = lipgloss.Color("#F59E0B")
	green  = lipgloss.Color("#22C55E")
	rose   = lipgloss.Color("#F43F5E")
	text   = lipgloss.Color("#F8FAFC")
	dim    = lipgloss.Color("#94A3B8")
	border = lipgloss.Color("#334155")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(indigo)

	statusStyle = lipgloss.NewStyle().
			Foreground(text)

	countdownStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(amber)

	hintStyle = lipgloss.NewStyle().
			Foreground(dim).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(rose).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(dim)

	goodStyle = lipgloss.NewStyle().Foreground(green)
	badStyle  = lipgloss.NewStyle().Foreground(rose)
)
