package tui

import "github.com/charmbracelet/lipgloss"

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	noticeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c")).Italic(true)

	heroAccentColor        = lipgloss.Color("#ff4e45")
	heroEmberColor         = lipgloss.Color("#2b0606")
	heroTextColor          = lipgloss.Color("#fff1f0")
	heroSecondaryTextColor = lipgloss.Color("#ff8a80")

	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	heroBoxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(heroAccentColor).Foreground(heroTextColor).Padding(0, 2)
	taglineStyle       = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	statusBarStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	keyStyle           = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	legendBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(1, 2)
	statsBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	statLabelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
	statValueStyle     = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor)
	chartPanelStyle    = lipgloss.NewStyle().PaddingLeft(2)
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#120101"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"██████╗   ██╗   ██╗  ██╗       ███████╗  ███████╗",
		"██╔══██╗  ██║   ██║  ██║       ██╔════╝  ██╔════╝",
		"██████╔╝  ██║   ██║  ██║       ███████╗  █████╗  ",
		"██╔═══╝   ██║   ██║  ██║       ╚════██║  ██╔══╝  ",
		"██║       ╚██████╔╝  ███████╗  ███████║  ███████╗",
		"╚═╝        ╚═════╝   ╚══════╝  ╚══════╝  ╚══════╝",
	}
)
