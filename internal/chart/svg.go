package chart

import (
	"errors"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

const (
	svgWidth   = 420
	svgHeight  = 260
	svgRadius  = 100
	svgCenterX = 130
	svgCenterY = 130
)

// Exporter is implemented by charts that can be written out as SVG.
type Exporter interface {
	WriteSVG(w io.Writer) error
}

// ErrDestroyed is returned when exporting a chart that has been released.
var ErrDestroyed = errors.New("chart has been destroyed")

type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// WriteSVG renders the pie with its legend as a standalone SVG document.
func (p *Pie) WriteSVG(w io.Writer) error {
	if p.destroyed {
		return ErrDestroyed
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(svgWidth, svgHeight)
	canvas.Title("Comment sentiment")
	canvas.Rect(0, 0, svgWidth, svgHeight, "fill:#ffffff")

	nonZero := 0
	for _, s := range p.slices {
		if s.Value > 0 {
			nonZero++
		}
	}

	switch {
	case p.total <= 0:
		canvas.Circle(svgCenterX, svgCenterY, svgRadius, "fill:#e9ecef")
	case nonZero == 1:
		for _, s := range p.slices {
			if s.Value > 0 {
				canvas.Circle(svgCenterX, svgCenterY, svgRadius, fmt.Sprintf("fill:%s", s.Color))
			}
		}
	default:
		start := 0.0
		for _, s := range p.slices {
			if s.Value <= 0 {
				continue
			}
			sweep := float64(s.Value) / float64(p.total) * 2 * math.Pi
			canvas.Path(wedgePath(start, start+sweep), fmt.Sprintf("fill:%s;stroke:#ffffff;stroke-width:2", s.Color))
			start += sweep
		}
	}

	for i, s := range p.slices {
		y := 100 + i*28
		canvas.Rect(260, y-12, 14, 14, fmt.Sprintf("fill:%s", s.Color))
		canvas.Text(282, y, p.Tooltip(i), "fill:#212529;font-size:13px;font-family:sans-serif")
	}
	canvas.End()
	return ew.err
}

// wedgePath draws a slice between two angles measured clockwise from twelve o'clock.
func wedgePath(from, to float64) string {
	x1, y1 := polar(from)
	x2, y2 := polar(to)
	large := 0
	if to-from > math.Pi {
		large = 1
	}
	return fmt.Sprintf("M%d,%d L%.2f,%.2f A%d,%d 0 %d,1 %.2f,%.2f Z",
		svgCenterX, svgCenterY, x1, y1, svgRadius, svgRadius, large, x2, y2)
}

func polar(angle float64) (float64, float64) {
	return svgCenterX + svgRadius*math.Sin(angle), svgCenterY - svgRadius*math.Cos(angle)
}
