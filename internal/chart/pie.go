package chart

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minRadius = 3
	maxRadius = 7
	diskRune  = "█"
	emptyRune = "░"
)

// Cell markers used while drawing the disc, alongside slice indexes.
const (
	cellOutside  = -1
	cellNone     = -2
	cellUnfilled = -3
)

var (
	emptyDiskStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	legendStyle    = lipgloss.NewStyle().PaddingLeft(3)
)

// Pie draws slices as a filled disc of terminal cells plus a legend that
// carries each slice's tooltip text.
type Pie struct {
	slices    []Slice
	total     int
	destroyed bool
}

// NewPie builds a pie over a private copy of slices.
func NewPie(slices []Slice) *Pie {
	owned := append([]Slice(nil), slices...)
	return &Pie{slices: owned, total: sliceTotal(owned)}
}

func (p *Pie) Slices() []Slice {
	if p.destroyed {
		return nil
	}
	return append([]Slice(nil), p.slices...)
}

// Tooltip returns "label: value (pct%)" for the slice at index.
func (p *Pie) Tooltip(index int) string {
	if p.destroyed {
		return ""
	}
	return tooltip(p.slices, index)
}

func (p *Pie) Destroy() {
	p.destroyed = true
	p.slices = nil
	p.total = 0
}

func (p *Pie) Destroyed() bool {
	return p.destroyed
}

// Render draws the disc sized for width columns with the legend on its right.
func (p *Pie) Render(width int) string {
	if p.destroyed {
		return ""
	}
	radius := width / 8
	if radius < minRadius {
		radius = minRadius
	}
	if radius > maxRadius {
		radius = maxRadius
	}
	disc := p.renderDisc(radius)

	legend := make([]string, 0, len(p.slices))
	for i, s := range p.slices {
		swatch := lipgloss.NewStyle().Foreground(s.Color).Render("■")
		legend = append(legend, swatch+" "+p.Tooltip(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, disc, legendStyle.Render(strings.Join(legend, "\n")))
}

func (p *Pie) renderDisc(radius int) string {
	r := float64(radius)
	lines := make([]string, 0, 2*radius+1)
	for y := -radius; y <= radius; y++ {
		var line strings.Builder
		run := ""
		runIdx := cellNone
		flush := func() {
			if run == "" {
				return
			}
			switch runIdx {
			case cellOutside:
				line.WriteString(run)
			case cellUnfilled:
				line.WriteString(emptyDiskStyle.Render(run))
			default:
				line.WriteString(lipgloss.NewStyle().Foreground(p.slices[runIdx].Color).Render(run))
			}
			run = ""
		}
		for x := -2 * radius; x <= 2*radius; x++ {
			dx := float64(x) / 2
			dy := float64(y)
			idx, glyph := cellOutside, " "
			if dx*dx+dy*dy <= r*r+r*0.5 {
				idx, glyph = p.sliceAt(dx, dy), diskRune
				if idx == cellUnfilled {
					glyph = emptyRune
				}
			}
			if idx != runIdx {
				flush()
				runIdx = idx
			}
			run += glyph
		}
		flush()
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// sliceAt maps a point in the disc to the slice covering it, sweeping
// clockwise from twelve o'clock. It returns cellUnfilled when there is nothing to draw.
func (p *Pie) sliceAt(dx, dy float64) int {
	if p.total <= 0 {
		return cellUnfilled
	}
	theta := math.Atan2(dx, -dy)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	fraction := theta / (2 * math.Pi)
	cumulative := 0.0
	last := cellUnfilled
	for i, s := range p.slices {
		if s.Value <= 0 {
			continue
		}
		last = i
		cumulative += float64(s.Value) / float64(p.total)
		if fraction < cumulative {
			return i
		}
	}
	return last
}
