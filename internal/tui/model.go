package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/commentpulse/internal/chart"
	"github.com/csheth/commentpulse/internal/export"
	"github.com/csheth/commentpulse/internal/sentiment"
	"github.com/csheth/commentpulse/internal/session"
)

// Config wires runtime options into the TUI program.
type Config struct {
	// Analyzer performs the analysis call. A client for the default local
	// endpoint is used when nil.
	Analyzer session.Analyzer
	// Health, when set, is probed once at startup.
	Health    HealthChecker
	Endpoint  string
	Timeout   time.Duration
	ExportDir string
	Verbose   bool
}

// HealthChecker reports whether the analysis service is up.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

type model struct {
	config Config

	controller *session.Controller
	dispatcher *session.Dispatcher
	summary    *session.SummaryView
	charts     *chart.Manager
	jobs       *jobBus

	urlInput textinput.Model
	spinner  spinner.Model
	layout   pageLayout

	submitted     string
	infoMessage   string
	noticeMessage string
	serviceStatus string
	helpVisible   bool
	jobStates     map[jobKind]jobSnapshot
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Analyzer == nil {
		client := sentiment.NewClient(sentiment.DefaultEndpoint, nil)
		config.Analyzer = client
		if config.Endpoint == "" {
			config.Endpoint = client.Endpoint()
		}
	}

	urlInput := textinput.New()
	urlInput.Placeholder = urlPlaceholder
	urlInput.CharLimit = urlCharLimit
	urlInput.Width = 72
	urlInput.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		config:      config,
		summary:     &session.SummaryView{},
		charts:      chart.NewManager(nil),
		jobs:        newJobBus(),
		urlInput:    urlInput,
		spinner:     spin,
		layout:      newPageLayout(),
		infoMessage: idleHint,
		jobStates:   map[jobKind]jobSnapshot{},
	}
	m.controller = session.NewController(m.summary, session.ChartView{Charts: m.charts}, m)
	m.controller.Verbose = config.Verbose
	m.dispatcher = session.NewDispatcher(m.controller, config.Analyzer, config.Timeout)
	return m
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.config.Health != nil {
		cmds = append(cmds, m.jobs.Start(jobKindHealth, healthJob(m.config.Health)))
	}
	return tea.Batch(cmds...)
}

// StateChanged keeps the input in step with the submit control.
func (m *model) StateChanged(_, next session.State) {
	if m.controller.SubmitEnabled() {
		m.urlInput.Focus()
	} else {
		m.urlInput.Blur()
	}
	m.noticeMessage = ""
	switch next.Kind {
	case session.KindLoading:
		m.infoMessage = loadingHint
	case session.KindResults:
		m.infoMessage = resultsHint
	case session.KindError:
		m.infoMessage = errorHint
	default:
		m.infoMessage = idleHint
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.controller.Current().Kind != session.KindLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case session.AnalysisDoneMsg:
		m.dispatcher.Resolve(msg)
		return m, nil
	case jobSignalMsg:
		m.jobStates[msg.Snapshot.Kind] = msg.Snapshot
		return m, nil
	case jobResultEnvelope:
		m.jobStates[msg.Snapshot.Kind] = msg.Snapshot
		m.applyJobResult(msg.Payload)
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.urlInput.Width = m.layout.inputWidth
		return m, nil
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyCtrlK:
		m.helpVisible = !m.helpVisible
		return m, nil
	case tea.KeyCtrlE:
		return m, m.startExport()
	case tea.KeyEsc:
		if m.dispatcher.Reset() {
			m.urlInput.SetValue("")
			m.submitted = ""
		}
		return m, nil
	case tea.KeyEnter:
		return m, m.submit()
	}

	if !m.controller.SubmitEnabled() {
		return m, nil
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m *model) submit() tea.Cmd {
	if !m.controller.SubmitEnabled() {
		return nil
	}
	value := m.urlInput.Value()
	cmd := m.dispatcher.Submit(value)
	if cmd == nil {
		return nil
	}
	m.submitted = strings.TrimSpace(value)
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *model) startExport() tea.Cmd {
	if m.jobStates[jobKindExport].Running() {
		m.noticeMessage = "An export is already running."
		return nil
	}
	state := m.controller.Current()
	live := m.charts.Live()
	if state.Kind != session.KindResults || live == nil {
		m.noticeMessage = "Nothing to export yet. Analyze a video with comments first."
		return nil
	}
	svg, err := renderSVG(live)
	if err != nil {
		m.noticeMessage = fmt.Sprintf("Export failed: %v", err)
		return nil
	}
	rec := export.NewRecord(m.submitted, state.Result, time.Now())
	m.noticeMessage = "Exporting chart…"
	// The job's own start signal arrives asynchronously.
	m.jobStates[jobKindExport] = jobSnapshot{Kind: jobKindExport, Status: jobStatusRunning, StartedAt: time.Now()}
	return m.jobs.Start(jobKindExport, exportJob(m.config.ExportDir, rec, svg))
}

func (m *model) applyJobResult(payload tea.Msg) {
	switch p := payload.(type) {
	case healthResultMsg:
		if p.err != nil {
			m.serviceStatus = "service unreachable"
			return
		}
		m.serviceStatus = "service " + p.status
	case exportResultMsg:
		if p.err != nil {
			m.noticeMessage = fmt.Sprintf("Export failed: %v", p.err)
			return
		}
		m.noticeMessage = fmt.Sprintf("Saved %s and %s", p.paths.SVG, p.paths.JSON)
	}
}
