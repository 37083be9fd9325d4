package tui

import (
	"bytes"
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/commentpulse/internal/chart"
	"github.com/csheth/commentpulse/internal/export"
)

func healthJob(checker HealthChecker) jobRunner {
	return func(ctx context.Context) (tea.Msg, error) {
		status, err := checker.Health(ctx)
		return healthResultMsg{status: status, err: err}, err
	}
}

// exportJob only touches bytes rendered on the update loop, so the live chart
// can be replaced while the files are being written.
func exportJob(dir string, rec export.Record, svg []byte) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		paths, err := export.Save(dir, rec, svg)
		return exportResultMsg{paths: paths, err: err}, err
	}
}

func renderSVG(c chart.Chart) ([]byte, error) {
	exporter, ok := c.(chart.Exporter)
	if !ok {
		return nil, errors.New("chart cannot be exported as SVG")
	}
	var buf bytes.Buffer
	if err := exporter.WriteSVG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
