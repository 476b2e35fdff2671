package ui

import "github.com/charmbracelet/lipgloss"

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaPink       = "#FF79C6"
	draculaRed        = "#FF5555"
	draculaComment    = "#6272A4"
)

type styles struct {
	header, ifaceUp, ifaceDown, paneTitle, paneTitleSel, colHeader, row, rowSel, footer lipgloss.Style
}

func newStyles() styles {
	return styles{
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)),
		ifaceUp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaGreen)).
			Bold(true),
		ifaceDown: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaRed)).
			Bold(true),
		paneTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		paneTitleSel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		colHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)),
		row: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)),
		rowSel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Background(lipgloss.Color(draculaComment)),
		footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
	}
}
