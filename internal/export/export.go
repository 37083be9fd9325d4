// Package export writes the current analysis to disk on request: the chart
// as SVG plus a JSON sidecar with the counts. Nothing here is ever read back.
package export

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/csheth/commentpulse/internal/sentiment"
)

// Record is the JSON sidecar written next to the chart.
type Record struct {
	URL        string    `json:"url"`
	VideoID    string    `json:"videoId,omitempty"`
	Positive   int       `json:"positive"`
	Negative   int       `json:"negative"`
	Total      int       `json:"total"`
	ExportedAt time.Time `json:"exportedAt"`
}

// NewRecord captures result for url at the given time.
func NewRecord(url string, result sentiment.Result, at time.Time) Record {
	return Record{
		URL:        url,
		VideoID:    sentiment.VideoID(url),
		Positive:   result.Positive,
		Negative:   result.Negative,
		Total:      result.Total(),
		ExportedAt: at.UTC(),
	}
}

// Paths lists the files written by Save.
type Paths struct {
	SVG  string
	JSON string
}

// Save writes svg and the record into dir, creating it if necessary.
func Save(dir string, rec Record, svg []byte) (Paths, error) {
	if strings.TrimSpace(dir) == "" {
		return Paths{}, errors.New("export directory is not configured")
	}
	if len(svg) == 0 {
		return Paths{}, errors.New("chart is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("create export directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Paths{}, fmt.Errorf("encode export record: %w", err)
	}

	base := filepath.Join(dir, baseName(rec))
	var paths Paths
	for n := 1; ; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		paths = Paths{SVG: candidate + ".svg", JSON: candidate + ".json"}
		err := writeNew(paths.SVG, svg)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) || n >= maxNameAttempts {
			return Paths{}, fmt.Errorf("write chart: %w", err)
		}
	}
	if err := writeNew(paths.JSON, data); err != nil {
		_ = os.Remove(paths.SVG)
		return Paths{}, fmt.Errorf("write record: %w", err)
	}
	return paths, nil
}

// maxNameAttempts bounds the numeric suffixes tried when exports share a
// timestamp.
const maxNameAttempts = 100

// writeNew fails with fs.ErrExist rather than replacing an earlier export.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return err
	}
	return nil
}

func baseName(rec Record) string {
	prefix := rec.VideoID
	if prefix == "" {
		prefix = "analysis"
	}
	return fmt.Sprintf("%s-%s", prefix, rec.ExportedAt.Format("20060102-150405.000"))
}
