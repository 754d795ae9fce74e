package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#2563eb")
	muted  = lipgloss.Color("8")

	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1)
	uploadBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1)

	cardStyle         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("7")).Padding(0, 1)
	selectedCardStyle = cardStyle.BorderForeground(accent)
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(accent)
	urlStyle          = lipgloss.NewStyle().Foreground(muted).Underline(true)
	descStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	chipStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("236")).Background(lipgloss.Color("252")).Padding(0, 1)
	highlightStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

	errorBannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b91c1c")).Background(lipgloss.Color("#fef2f2")).Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("#fecaca")).Padding(0, 2)
	emptyStyle       = lipgloss.NewStyle().Foreground(muted).Padding(1, 0)
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	alertStyle       = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 3)
	alertHintStyle   = lipgloss.NewStyle().Foreground(muted).Italic(true)
)
