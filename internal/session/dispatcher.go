package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/commentpulse/internal/sentiment"
)

const (
	EmptyInputMessage = "Please paste a YouTube video URL."
	FallbackMessage   = "Error: The analysis service returned an unexpected response."
	CrashMessage      = "Error: unexpected failure while processing the response."

	// DefaultTimeout bounds one attempt; scoring a video's comments is slow.
	DefaultTimeout = 2 * time.Minute
)

// ErrEmptyInput is the validation failure for a blank submission.
var ErrEmptyInput = errors.New("video url is empty")

// Analyzer performs the remote analysis call.
type Analyzer interface {
	Analyze(ctx context.Context, req sentiment.Request) (sentiment.Result, error)
}

// AnalysisDoneMsg reports the outcome of one attempt back to the event loop.
type AnalysisDoneMsg struct {
	Attempt  int
	Request  sentiment.Request
	Result   sentiment.Result
	Err      error
	Duration time.Duration
}

// Dispatcher runs analysis attempts and is the only caller of
// Controller.SetState. At most one attempt is in flight; submissions made
// while Loading are rejected rather than queued or cancelled.
type Dispatcher struct {
	ctrl     *Controller
	analyzer Analyzer
	timeout  time.Duration
	attempts int
	inflight int
}

// NewDispatcher wires a dispatcher to ctrl. A non-positive timeout selects
// DefaultTimeout.
func NewDispatcher(ctrl *Controller, analyzer Analyzer, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{ctrl: ctrl, analyzer: analyzer, timeout: timeout}
}

// Timeout is the deadline applied to each attempt.
func (d *Dispatcher) Timeout() time.Duration {
	return d.timeout
}

// InFlight returns the number of the running attempt, or 0.
func (d *Dispatcher) InFlight() int {
	return d.inflight
}

// Submit validates raw and, when it is usable, enters Loading and returns the
// command that performs exactly one network call. It returns nil when no call
// is made.
func (d *Dispatcher) Submit(raw string) tea.Cmd {
	if d.ctrl.Current().Kind == KindLoading {
		log.Printf("[dispatch] attempt %d still in flight; rejecting submission", d.inflight)
		return nil
	}
	url := strings.TrimSpace(raw)
	if url == "" {
		log.Printf("[dispatch] %v", ErrEmptyInput)
		d.ctrl.SetState(Failed(EmptyInputMessage))
		return nil
	}

	d.attempts++
	d.inflight = d.attempts
	req := sentiment.Request{URL: url}
	d.ctrl.SetState(Loading())
	log.Printf("[dispatch] attempt %d started for %s", d.inflight, url)
	return analyzeCmd(d.inflight, d.analyzer, req, d.timeout)
}

// Reset returns to Idle unless an attempt is running.
func (d *Dispatcher) Reset() bool {
	if d.ctrl.Current().Kind == KindLoading {
		return false
	}
	d.ctrl.SetState(Idle())
	return true
}

// Resolve applies a finished attempt. However processing goes, the state has
// left Loading when Resolve returns, so the submit control is usable again.
func (d *Dispatcher) Resolve(msg AnalysisDoneMsg) {
	if msg.Attempt != d.inflight || d.ctrl.Current().Kind != KindLoading {
		log.Printf("[dispatch] ignoring stale outcome for attempt %d (in flight: %d)", msg.Attempt, d.inflight)
		return
	}
	d.inflight = 0

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[dispatch] attempt %d: panic while applying outcome: %v", msg.Attempt, r)
			if d.ctrl.Current().Kind == KindLoading {
				d.ctrl.SetState(Failed(CrashMessage))
			}
		}
	}()

	next := d.outcome(msg)
	log.Printf("[dispatch] attempt %d finished in %s: %s", msg.Attempt, msg.Duration, next)
	d.ctrl.SetState(next)
}

func (d *Dispatcher) outcome(msg AnalysisDoneMsg) State {
	if msg.Err != nil {
		return Failed(d.describe(msg.Err))
	}
	if err := msg.Result.Validate(); err != nil {
		log.Printf("[dispatch] attempt %d: invalid result: %v", msg.Attempt, err)
		return Failed(FallbackMessage)
	}
	return Succeeded(msg.Result)
}

// describe turns an attempt error into the message shown to the user.
// Transport failures never use the service fallback wording.
func (d *Dispatcher) describe(err error) string {
	var serviceErr *sentiment.ServiceError
	var transportErr *sentiment.TransportError
	switch {
	case errors.As(err, &serviceErr):
		if detail := strings.TrimSpace(serviceErr.Detail); detail != "" {
			return "Error: " + detail
		}
		return FallbackMessage
	case errors.As(err, &transportErr):
		if transportErr.Timeout() {
			return fmt.Sprintf("Network error: request timed out after %s", d.timeout)
		}
		cause := "no response from the analysis service"
		if transportErr.Err != nil {
			cause = transportErr.Err.Error()
		}
		return "Network error: " + cause
	default:
		return "Error: " + err.Error()
	}
}

func analyzeCmd(attempt int, analyzer Analyzer, req sentiment.Request, timeout time.Duration) tea.Cmd {
	return func() (msg tea.Msg) {
		started := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[dispatch] attempt %d: analyzer panic: %v", attempt, r)
				msg = AnalysisDoneMsg{
					Attempt:  attempt,
					Request:  req,
					Err:      fmt.Errorf("analyzer panic: %v", r),
					Duration: time.Since(started),
				}
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		result, err := analyzer.Analyze(ctx, req)
		return AnalysisDoneMsg{
			Attempt:  attempt,
			Request:  req,
			Result:   result,
			Err:      err,
			Duration: time.Since(started),
		}
	}
}
