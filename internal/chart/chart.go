// Package chart owns the single live pie chart drawn for an analysis result.
package chart

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
)

// Slice is one category of the pie.
type Slice struct {
	Label string
	Value int
	Color lipgloss.Color
}

// Chart is a live chart instance. A destroyed chart renders nothing.
type Chart interface {
	Slices() []Slice
	Tooltip(index int) string
	Render(width int) string
	Destroy()
	Destroyed() bool
}

// Factory constructs chart instances for the manager.
type Factory interface {
	New(slices []Slice) Chart
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(slices []Slice) Chart

func (f FactoryFunc) New(slices []Slice) Chart {
	return f(slices)
}

const (
	LabelPositive = "Positive"
	LabelNegative = "Negative"
)

var (
	SuccessColor = lipgloss.Color("#198754")
	DangerColor  = lipgloss.Color("#dc3545")
)

// Percent returns value as a share of total, rounded to one decimal place.
// A non-positive total yields 0.
func Percent(value, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(value)/float64(total)*1000) / 10
}

func sliceTotal(slices []Slice) int {
	total := 0
	for _, s := range slices {
		total += s.Value
	}
	return total
}

// tooltip formats "label: value (pct%)" against the sum of the given slices,
// never an externally supplied total.
func tooltip(slices []Slice, index int) string {
	if index < 0 || index >= len(slices) {
		return ""
	}
	s := slices[index]
	return fmt.Sprintf("%s: %d (%.1f%%)", s.Label, s.Value, Percent(s.Value, sliceTotal(slices)))
}
