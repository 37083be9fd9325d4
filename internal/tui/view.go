package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/commentpulse/internal/sentiment"
	"github.com/csheth/commentpulse/internal/session"
)

func (m *model) View() string {
	parts := []string{m.heroView(), m.formView(), m.bodyView()}
	if m.noticeMessage != "" {
		parts = append(parts, noticeStyle.Render(wordwrap.String(m.noticeMessage, m.layout.wrapWidth(0))))
	}
	if m.helpVisible {
		parts = append(parts, m.keyLegendView())
	}
	parts = append(parts, m.statusBarView())
	return joinNonEmpty(parts)
}

func (m *model) heroView() string {
	logo := renderLogo()
	video := sentiment.VideoID(m.submitted)
	if video == "" {
		return lipgloss.JoinVertical(lipgloss.Left, logo, taglineStyle.Render(heroTagline))
	}
	chip := heroBoxStyle.Render(heroTitleStyle.Render("Video ") + video)
	return lipgloss.JoinVertical(lipgloss.Left, logo, lipgloss.JoinHorizontal(lipgloss.Center, taglineStyle.Render(heroTagline), "  ", chip))
}

func (m *model) formView() string {
	hint := m.infoMessage
	if !m.controller.SubmitEnabled() {
		hint = lockedHint
	}
	return joinLines(
		sectionHeaderStyle.Render("YouTube Video URL"),
		m.urlInput.View(),
		helperStyle.Render(wordwrap.String(hint, m.layout.wrapWidth(0))),
	)
}

func (m *model) bodyView() string {
	state := m.controller.Current()
	switch state.Kind {
	case session.KindLoading:
		return helperStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), loadingHint))
	case session.KindError:
		return errorStyle.Render(wordwrap.String(state.Message, m.layout.wrapWidth(0)))
	case session.KindResults:
		return m.resultsView()
	default:
		return helperStyle.Render("Results will appear here.")
	}
}

func (m *model) resultsView() string {
	summary, ok := m.summary.Current()
	if !ok {
		return ""
	}
	header := sectionHeaderStyle.Render("Sentiment Summary")
	if summary.Empty {
		return joinLines(header, helperStyle.Render(summary.Message))
	}

	labelWidth := 0
	for _, stat := range summary.Stats {
		if w := lipgloss.Width(stat.Label); w > labelWidth {
			labelWidth = w
		}
	}
	rows := make([]string, 0, len(summary.Stats))
	for _, stat := range summary.Stats {
		label := statLabelStyle.Render(fmt.Sprintf("%-*s", labelWidth, stat.Label))
		rows = append(rows, fmt.Sprintf("%s  %s", label, statValueStyle.Render(fmt.Sprint(stat.Value))))
	}
	stats := statsBoxStyle.Render(strings.Join(rows, "\n"))

	panel := stats
	if live := m.charts.Live(); live != nil {
		panel = lipgloss.JoinHorizontal(lipgloss.Center, stats, chartPanelStyle.Render(live.Render(m.layout.chartWidth)))
	}
	return joinLines(header, panel)
}

func (m *model) statusBarView() string {
	stats := []string{strings.ToUpper(m.controller.Current().Kind.String())}
	if m.config.Endpoint != "" {
		stats = append(stats, m.config.Endpoint)
	}
	if m.serviceStatus != "" {
		stats = append(stats, m.serviceStatus)
	}
	stats = append(stats, m.jobStatusBadges()...)
	stats = append(stats, "Ctrl+K keys")
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, kind := range []jobKind{jobKindHealth, jobKindExport} {
		if !m.jobStates[kind].Running() {
			continue
		}
		badges = append(badges, fmt.Sprintf("%s…", kind))
	}
	return badges
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) keyLegendView() string {
	hints := []keyHint{
		{"Enter", "Analyze URL"},
		{"Esc", "Clear and reset"},
		{"Ctrl+E", "Export chart"},
		{"Ctrl+K", "Toggle keys"},
		{"Ctrl+C", "Quit"},
	}
	rows := []string{sectionHeaderStyle.Render("Keys")}
	const columns = 3
	for i := 0; i < len(hints); i += columns {
		end := i + columns
		if end > len(hints) {
			end = len(hints)
		}
		var cells []string
		for _, hint := range hints[i:end] {
			key := keyStyle.Render(hint.Key)
			desc := keyDescStyle.Render(" " + hint.Description + "  ")
			cells = append(cells, lipgloss.JoinHorizontal(lipgloss.Top, key, desc))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return legendBoxStyle.Render(strings.Join(rows, "\n"))
}

func joinLines(parts ...string) string {
	return strings.Join(parts, "\n")
}

func renderLogo() string {
	if len(logoArtLines) == 0 {
		return ""
	}
	width := 0
	lineRunes := make([][]rune, len(logoArtLines))
	for i, line := range logoArtLines {
		runes := []rune(line)
		lineRunes[i] = runes
		if len(runes) > width {
			width = len(runes)
		}
	}
	width++
	height := len(logoArtLines) + 1

	type cell struct {
		r     rune
		style lipgloss.Style
	}

	grid := make([][]cell, height)
	for i := range grid {
		grid[i] = make([]cell, width)
	}

	// Shadow first, offset one cell down and right, then the face on top.
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y+1][x+1] = cell{r: r, style: logoShadowStyle}
		}
	}
	for y, runes := range lineRunes {
		for x, r := range runes {
			if r == ' ' {
				continue
			}
			grid[y][x] = cell{r: r, style: logoFaceStyle}
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		var b strings.Builder
		for _, c := range row {
			if c.r == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
		lines[y] = b.String()
	}
	return logoContainerStyle.Render(strings.Join(lines, "\n"))
}
