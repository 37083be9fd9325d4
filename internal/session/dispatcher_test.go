package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/csheth/commentpulse/internal/chart"
	"github.com/csheth/commentpulse/internal/sentiment"
)

type fakeAnalyzer struct {
	calls   []sentiment.Request
	result  sentiment.Result
	err     error
	panicOn bool
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req sentiment.Request) (sentiment.Result, error) {
	f.calls = append(f.calls, req)
	if f.panicOn {
		panic("analyzer exploded")
	}
	return f.result, f.err
}

type explodingError struct{}

func (explodingError) Error() string { panic("cannot describe") }

func run(t *testing.T, d *Dispatcher, input string) {
	t.Helper()
	cmd := d.Submit(input)
	if cmd == nil {
		t.Fatalf("submit(%q) returned no command", input)
	}
	raw := cmd()
	msg, ok := raw.(AnalysisDoneMsg)
	if !ok {
		t.Fatalf("command produced %T", raw)
	}
	d.Resolve(msg)
}

func TestSubmitEntersLoadingBeforeTheCallResolves(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{result: sentiment.Result{Positive: 1}}
	ctrl := NewController()
	d := NewDispatcher(ctrl, analyzer, time.Second)

	cmd := d.Submit("  https://youtu.be/abc  ")
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if ctrl.Current().Kind != KindLoading {
		t.Fatalf("state = %s before the call ran, want loading", ctrl.Current())
	}
	if ctrl.SubmitEnabled() {
		t.Fatal("submit must be disabled while loading")
	}
	if len(analyzer.calls) != 0 {
		t.Fatal("no call should run until the command executes")
	}

	msg := cmd().(AnalysisDoneMsg)
	if len(analyzer.calls) != 1 || analyzer.calls[0].URL != "https://youtu.be/abc" {
		t.Fatalf("unexpected calls: %+v", analyzer.calls)
	}
	if msg.Request.URL != "https://youtu.be/abc" {
		t.Fatalf("request not trimmed: %q", msg.Request.URL)
	}
	d.Resolve(msg)
	if !ctrl.SubmitEnabled() {
		t.Fatal("submit must be enabled after completion")
	}
}

func TestSubmitRejectsBlankInputWithoutCalling(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "   ", "\t\n"} {
		analyzer := &fakeAnalyzer{}
		ctrl := NewController()
		d := NewDispatcher(ctrl, analyzer, time.Second)

		if cmd := d.Submit(raw); cmd != nil {
			t.Fatalf("submit(%q) should not return a command", raw)
		}
		if got := ctrl.Current(); got != Failed(EmptyInputMessage) {
			t.Fatalf("state = %s, want empty-input error", got)
		}
		if len(analyzer.calls) != 0 {
			t.Fatalf("blank input made %d calls", len(analyzer.calls))
		}
		if !ctrl.SubmitEnabled() {
			t.Fatal("submit should stay enabled after a validation error")
		}
	}
}

func TestSubmitWhileLoadingIsRejected(t *testing.T) {
	t.Parallel()

	analyzer := &fakeAnalyzer{result: sentiment.Result{Positive: 4, Negative: 1}}
	ctrl := NewController()
	d := NewDispatcher(ctrl, analyzer, time.Second)

	first := d.Submit("https://youtu.be/one")
	if second := d.Submit("https://youtu.be/two"); second != nil {
		t.Fatal("overlapping submission should be rejected")
	}
	if blank := d.Submit(""); blank != nil {
		t.Fatal("blank submission while loading should also be rejected")
	}
	if ctrl.Current().Kind != KindLoading {
		t.Fatalf("rejected submission changed state to %s", ctrl.Current())
	}
	if d.Reset() {
		t.Fatal("reset should not interrupt a running attempt")
	}

	d.Resolve(first().(AnalysisDoneMsg))
	if len(analyzer.calls) != 1 {
		t.Fatalf("expected one network call, got %d", len(analyzer.calls))
	}
	if ctrl.Current() != Succeeded(sentiment.Result{Positive: 4, Negative: 1}) {
		t.Fatalf("state = %s", ctrl.Current())
	}
}

func TestResolveMapsErrorsToMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"service detail", &sentiment.ServiceError{StatusCode: 400, Detail: "bad url"}, "Error: bad url"},
		{"service without detail", &sentiment.ServiceError{StatusCode: 500}, FallbackMessage},
		{"malformed body", &sentiment.ServiceError{StatusCode: 200, Cause: errors.New("missing field")}, FallbackMessage},
		{"transport", &sentiment.TransportError{Op: "analyze", Err: errors.New("connection refused")}, "Network error: connection refused"},
		{"timeout", &sentiment.TransportError{Op: "analyze", Err: context.DeadlineExceeded}, "Network error: request timed out after 3s"},
		{"other", errors.New("weird"), "Error: weird"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := NewController()
			d := NewDispatcher(ctrl, &fakeAnalyzer{err: tt.err}, 3*time.Second)
			run(t, d, "https://youtu.be/abc")
			if got := ctrl.Current(); got != Failed(tt.want) {
				t.Fatalf("state = %s, want error(%q)", got, tt.want)
			}
			if !ctrl.SubmitEnabled() {
				t.Fatal("submit should be re-enabled after an error")
			}
		})
	}
}

func TestResolveRejectsInvalidCounts(t *testing.T) {
	t.Parallel()

	ctrl := NewController()
	d := NewDispatcher(ctrl, &fakeAnalyzer{result: sentiment.Result{Positive: -1}}, time.Second)
	run(t, d, "https://youtu.be/abc")
	if got := ctrl.Current(); got != Failed(FallbackMessage) {
		t.Fatalf("state = %s", got)
	}
}

func TestAnalyzerPanicStillCompletesTheAttempt(t *testing.T) {
	t.Parallel()

	ctrl := NewController()
	d := NewDispatcher(ctrl, &fakeAnalyzer{panicOn: true}, time.Second)
	run(t, d, "https://youtu.be/abc")

	got := ctrl.Current()
	if got.Kind != KindError || !strings.Contains(got.Message, "analyzer exploded") {
		t.Fatalf("state = %s", got)
	}
	if !ctrl.SubmitEnabled() {
		t.Fatal("submit should be re-enabled after a panic")
	}
}

func TestResolveRecoversFromPanicsWhileProcessing(t *testing.T) {
	t.Parallel()

	ctrl := NewController()
	d := NewDispatcher(ctrl, &fakeAnalyzer{err: explodingError{}}, time.Second)
	run(t, d, "https://youtu.be/abc")
	if got := ctrl.Current(); got != Failed(CrashMessage) {
		t.Fatalf("state = %s, want crash message", got)
	}
	if !ctrl.SubmitEnabled() {
		t.Fatal("submit should be re-enabled")
	}

	panicky := NewController(ObserverFunc(func(_, next State) {
		if next.Kind == KindResults {
			panic("render failed")
		}
	}))
	d = NewDispatcher(panicky, &fakeAnalyzer{result: sentiment.Result{Positive: 2}}, time.Second)
	run(t, d, "https://youtu.be/abc")
	if panicky.Current().Kind != KindResults || !panicky.SubmitEnabled() {
		t.Fatalf("state = %s, enabled = %v", panicky.Current(), panicky.SubmitEnabled())
	}
}

func TestResolveIgnoresStaleOutcomes(t *testing.T) {
	t.Parallel()

	ctrl := NewController()
	d := NewDispatcher(ctrl, &fakeAnalyzer{result: sentiment.Result{Positive: 1}}, time.Second)

	d.Resolve(AnalysisDoneMsg{Attempt: 7, Result: sentiment.Result{Positive: 9}})
	if ctrl.Current().Kind != KindIdle {
		t.Fatalf("outcome without an attempt changed state to %s", ctrl.Current())
	}

	cmd := d.Submit("https://youtu.be/abc")
	msg := cmd().(AnalysisDoneMsg)
	d.Resolve(AnalysisDoneMsg{Attempt: msg.Attempt + 1, Err: errors.New("late")})
	if ctrl.Current().Kind != KindLoading {
		t.Fatalf("mismatched attempt resolved the state: %s", ctrl.Current())
	}
	d.Resolve(msg)
	if ctrl.Current().Kind != KindResults {
		t.Fatalf("state = %s", ctrl.Current())
	}
	d.Resolve(msg)
	if d.InFlight() != 0 {
		t.Fatal("duplicate outcome should not restart an attempt")
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	t.Parallel()

	view := &SummaryView{}
	ctrl := NewController(view)
	d := NewDispatcher(ctrl, &fakeAnalyzer{result: sentiment.Result{Positive: 3}}, time.Second)
	run(t, d, "https://youtu.be/abc")
	if !d.Reset() {
		t.Fatal("reset should succeed outside loading")
	}
	if ctrl.Current().Kind != KindIdle {
		t.Fatalf("state = %s", ctrl.Current())
	}
	if _, ok := view.Current(); ok {
		t.Fatal("summary should be cleared on idle")
	}
}

func TestDispatcherAppliesTimeout(t *testing.T) {
	t.Parallel()

	if got := NewDispatcher(NewController(), &fakeAnalyzer{}, 0).Timeout(); got != DefaultTimeout {
		t.Fatalf("timeout = %s, want default", got)
	}

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	ctrl := NewController()
	d := NewDispatcher(ctrl, sentiment.NewClient(server.URL, server.Client()), 50*time.Millisecond)
	run(t, d, "https://youtu.be/abc")
	if got := ctrl.Current(); got != Failed("Network error: request timed out after 50ms") {
		t.Fatalf("state = %s", got)
	}
}

// harness wires the same observers the terminal UI uses against a fake
// service, so the scenarios exercise the real client and chart manager.
type harness struct {
	ctrl    *Controller
	d       *Dispatcher
	summary *SummaryView
	charts  *chart.Manager
	calls   *int32
}

func newHarness(t *testing.T, handler http.HandlerFunc) harness {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	summary := &SummaryView{}
	charts := chart.NewManager(nil)
	ctrl := NewController(summary, ChartView{Charts: charts})
	client := sentiment.NewClient(server.URL, server.Client())
	return harness{
		ctrl:    ctrl,
		d:       NewDispatcher(ctrl, client, time.Second),
		summary: summary,
		charts:  charts,
		calls:   &calls,
	}
}

func respond(body string, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestScenarioSuccessfulAnalysis(t *testing.T) {
	t.Parallel()

	h := newHarness(t, respond(`{"positive":10,"negative":5}`, http.StatusOK))
	run(t, h.d, "https://youtu.be/abc")

	summary, ok := h.summary.Current()
	if !ok || summary.Empty {
		t.Fatalf("expected stats summary, got %+v", summary)
	}
	if summary.Stats[0].Value != 10 || summary.Stats[1].Value != 5 || summary.Stats[2].Value != 15 {
		t.Fatalf("unexpected stats: %+v", summary.Stats)
	}
	live := h.charts.Live()
	if live == nil {
		t.Fatal("expected a live chart")
	}
	if live.Tooltip(0) != "Positive: 10 (66.7%)" || live.Tooltip(1) != "Negative: 5 (33.3%)" {
		t.Fatalf("tooltips = %q / %q", live.Tooltip(0), live.Tooltip(1))
	}
}

func TestScenarioEmptyInput(t *testing.T) {
	t.Parallel()

	h := newHarness(t, respond(`{"positive":1,"negative":1}`, http.StatusOK))
	if cmd := h.d.Submit(""); cmd != nil {
		t.Fatal("empty input should not produce a command")
	}
	if h.ctrl.Current().Message != "Please paste a YouTube video URL." {
		t.Fatalf("state = %s", h.ctrl.Current())
	}
	if atomic.LoadInt32(h.calls) != 0 {
		t.Fatal("empty input reached the service")
	}
}

func TestScenarioServiceRejectsURL(t *testing.T) {
	t.Parallel()

	h := newHarness(t, respond(`{"detail":"invalid URL"}`, http.StatusUnprocessableEntity))
	run(t, h.d, "https://youtu.be/abc")
	if got := h.ctrl.Current(); got != Failed("Error: invalid URL") {
		t.Fatalf("state = %s", got)
	}
	if h.charts.Live() != nil {
		t.Fatal("errors should not leave a chart behind")
	}
}

func TestScenarioNoComments(t *testing.T) {
	t.Parallel()

	h := newHarness(t, respond(`{"positive":0,"negative":0}`, http.StatusOK))
	run(t, h.d, "https://youtu.be/abc")

	summary, ok := h.summary.Current()
	if !ok || !summary.Empty || summary.Message != "No comments were analyzed." {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if h.charts.Live() != nil {
		t.Fatal("no chart should be drawn for zero counts")
	}
}

func TestScenarioConsecutiveSubmissionsKeepOneChart(t *testing.T) {
	t.Parallel()

	bodies := []string{`{"positive":10,"negative":5}`, `{"positive":1,"negative":3}`}
	var next int32
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		idx := atomic.AddInt32(&next, 1) - 1
		respond(bodies[idx], http.StatusOK)(w, r)
	})

	run(t, h.d, "https://youtu.be/abc")
	first := h.charts.Live()
	run(t, h.d, "https://youtu.be/def")
	second := h.charts.Live()

	if first == nil || second == nil || first == second {
		t.Fatal("each success should present a fresh chart")
	}
	if !first.Destroyed() {
		t.Fatal("first chart should be destroyed")
	}
	if second.Destroyed() {
		t.Fatal("second chart should be live")
	}
	if second.Tooltip(1) != "Negative: 3 (75.0%)" {
		t.Fatalf("second chart shows %q", second.Tooltip(1))
	}
}

func TestScenarioServiceUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	ctrl := NewController()
	d := NewDispatcher(ctrl, sentiment.NewClient(endpoint, nil), time.Second)
	run(t, d, "https://youtu.be/abc")

	got := ctrl.Current()
	if got.Kind != KindError || got.Message == "" {
		t.Fatalf("state = %s", got)
	}
	if got.Message == FallbackMessage || !strings.HasPrefix(got.Message, "Network error: ") {
		t.Fatalf("transport failure should be distinguishable, got %q", got.Message)
	}
}

func TestScenarioOverflowingCountsFallBack(t *testing.T) {
	t.Parallel()

	h := newHarness(t, respond(`{"positive":9223372036854775807,"negative":1}`, http.StatusOK))
	run(t, h.d, "https://youtu.be/abc")
	if got := h.ctrl.Current(); got != Failed(FallbackMessage) {
		t.Fatalf("state = %s", got)
	}
	if _, ok := h.summary.Current(); ok {
		t.Fatal("no summary should be rendered")
	}
	if h.charts.Live() != nil {
		t.Fatal("no chart should be live")
	}
}
