package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#0f766e", Dark: "#2dd4bf"}
	muted  = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	danger = lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f87171"}

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(muted)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	noticeStyle   = lipgloss.NewStyle().Foreground(accent).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(34)

	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("#facc15"))

	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(muted).
			MarginBottom(1)

	botLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	userBodyStyle  = lipgloss.NewStyle().PaddingLeft(2)

	stepDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	stepCurrentStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	stepPendingStyle = lipgloss.NewStyle().Foreground(muted)
)
