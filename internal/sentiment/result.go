package sentiment

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/goccy/go-json"
)

// Request is the body sent to the analysis service.
type Request struct {
	URL string `json:"url"`
}

// Result carries the aggregate comment counts returned by the analysis service.
type Result struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Total is recomputed on every call; it is never stored alongside the counts.
func (r Result) Total() int {
	return r.Positive + r.Negative
}

// Empty reports whether no comments were classified.
func (r Result) Empty() bool {
	return r.Total() == 0
}

// Validate rejects counts the service should never produce.
func (r Result) Validate() error {
	if r.Positive < 0 {
		return fmt.Errorf("positive count is negative (%d)", r.Positive)
	}
	if r.Negative < 0 {
		return fmt.Errorf("negative count is negative (%d)", r.Negative)
	}
	if r.Positive > math.MaxInt-r.Negative {
		return fmt.Errorf("counts %d and %d overflow the total", r.Positive, r.Negative)
	}
	return nil
}

var errEmptyBody = errors.New("response body is empty")

type wireResult struct {
	Positive *int `json:"positive"`
	Negative *int `json:"negative"`
}

// DecodeResult parses a success body. Both counts must be present integers.
func DecodeResult(payload []byte) (Result, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return Result{}, errEmptyBody
	}
	var wire wireResult
	if err := json.Unmarshal(payload, &wire); err != nil {
		return Result{}, fmt.Errorf("decode analysis result: %w", err)
	}
	if wire.Positive == nil {
		return Result{}, errors.New(`analysis result missing "positive"`)
	}
	if wire.Negative == nil {
		return Result{}, errors.New(`analysis result missing "negative"`)
	}
	result := Result{Positive: *wire.Positive, Negative: *wire.Negative}
	if err := result.Validate(); err != nil {
		return Result{}, err
	}
	return result, nil
}
