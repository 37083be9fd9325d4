package tui

import "strings"

type pageLayout struct {
	contentWidth int
	inputWidth   int
	chartWidth   int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth: 76,
		inputWidth:   72,
		chartWidth:   46,
	}
}

func (l *pageLayout) Update(width, height int) {
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.contentWidth = innerWidth

	l.inputWidth = innerWidth - inputPromptWidth
	if l.inputWidth > maxInputWidth {
		l.inputWidth = maxInputWidth
	}

	l.chartWidth = innerWidth - statsColumnWidth
	// The disc is two columns per row, so its height is a quarter of the width.
	if tall := 4 * (height - pageChromeHeight); tall < l.chartWidth {
		l.chartWidth = tall
	}
	if l.chartWidth < minChartWidth {
		l.chartWidth = minChartWidth
	}
}

func (l pageLayout) wrapWidth(padding int) int {
	available := l.contentWidth - padding
	if available < 20 {
		available = 20
	}
	return available
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
