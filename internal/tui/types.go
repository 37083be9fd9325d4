package tui

import "github.com/csheth/commentpulse/internal/export"

const heroTagline = "Read the room under any YouTube video."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	inputPromptWidth          = 4
	maxInputWidth             = 100
	statsColumnWidth          = 30
	minChartWidth             = 24
	pageChromeHeight          = 18
)

const (
	urlPlaceholder = "https://www.youtube.com/watch?v=…"
	urlCharLimit   = 300
)

const (
	idleHint    = "Paste a YouTube URL and press Enter to analyze its comments."
	loadingHint = "Analyzing comments…"
	resultsHint = "Edit the URL and press Enter to analyze another video."
	errorHint   = "Fix the URL or press Enter to try again."
	lockedHint  = "Input is locked until the analysis service answers."
)

type healthResultMsg struct {
	status string
	err    error
}

type exportResultMsg struct {
	paths export.Paths
	err   error
}
