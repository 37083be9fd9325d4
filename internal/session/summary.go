package session

import (
	"github.com/csheth/commentpulse/internal/sentiment"
)

const (
	LabelPositive     = "Positive Comments"
	LabelNegative     = "Negative Comments"
	LabelTotal        = "Total Comments Analyzed"
	NoCommentsMessage = "No comments were analyzed."
)

// Stat is one labelled number in the results summary.
type Stat struct {
	Label string
	Value int
}

// Summary is what the results region shows. An empty summary carries only
// Message; otherwise Stats lists positive, negative and total in that order.
type Summary struct {
	Empty   bool
	Message string
	Stats   []Stat
}

// Summarize derives the display summary for result.
func Summarize(result sentiment.Result) Summary {
	total := result.Total()
	if total == 0 {
		return Summary{Empty: true, Message: NoCommentsMessage}
	}
	return Summary{
		Stats: []Stat{
			{Label: LabelPositive, Value: result.Positive},
			{Label: LabelNegative, Value: result.Negative},
			{Label: LabelTotal, Value: total},
		},
	}
}

// SummaryView holds the rendered summary while the controller is in Results
// and drops it on any other state.
type SummaryView struct {
	current *Summary
}

func (v *SummaryView) StateChanged(_, next State) {
	if next.Kind != KindResults {
		v.current = nil
		return
	}
	summary := Summarize(next.Result)
	v.current = &summary
}

// Current returns the rendered summary, if any.
func (v *SummaryView) Current() (Summary, bool) {
	if v.current == nil {
		return Summary{}, false
	}
	return *v.current, true
}

// ChartPresenter is the part of the chart manager the controller drives.
type ChartPresenter interface {
	Present(result sentiment.Result)
	Clear()
}

// ChartView keeps the chart in step with the state: a non-empty result is
// presented and everything else, including an empty result, clears it.
type ChartView struct {
	Charts ChartPresenter
}

func (v ChartView) StateChanged(_, next State) {
	if next.Kind == KindResults && !next.Result.Empty() {
		v.Charts.Present(next.Result)
		return
	}
	v.Charts.Clear()
}
