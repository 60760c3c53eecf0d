package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha, the subset the panel uses.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorLavender lipgloss.Color = "#b4befe"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorError   = colorRed
	colorMuted   = colorOverlay1
	colorSubtext = colorSubtext0
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	subtextStyle  = lipgloss.NewStyle().Foreground(colorSubtext)
	actionStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)
	popupStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFocus).Padding(1, 2)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1).Width(56)
	selectedCard  = cardStyle.BorderForeground(colorFocus)
	emptyStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2).Width(60)
)
