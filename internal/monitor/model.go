package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/hibou/internal/config"
	"github.com/rileyhilliard/hibou/internal/sampler"
)

// Default dimensions used before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options tunes the dashboard beyond its sampling period.
type Options struct {
	Thresholds config.ThresholdsConfig
	Clock      func() time.Time
}

// Model is the Bubble Tea model for the dashboard. It drives the Sampler
// itself: a new sample is only scheduled once the previous frame arrived,
// so at most one Tick is ever in flight. The sampler is stopped on the UI
// goroutine once no Tick is running.
type Model struct {
	sampler    *sampler.Sampler
	period     time.Duration
	info       HostInfo
	thresholds config.ThresholdsConfig
	clock      func() time.Time

	frame      *sampler.Frame
	latency    sampler.LatencySummary
	err        error
	lastUpdate time.Time

	// pending is true while a tick timer or a sample is outstanding;
	// inFlight only while a sample is.
	pending  bool
	inFlight bool
	paused   bool
	quitting bool
	showHelp bool

	width  int
	height int

	keys keyMap
	help help.Model
}

// tickMsg signals that the next sample is due.
type tickMsg time.Time

// frameMsg carries the result of one Sampler.Tick.
type frameMsg struct {
	frame   sampler.Frame
	latency sampler.LatencySummary
	err     error
	took    time.Duration
}

// NewModel creates a dashboard for a running sampler.
func NewModel(s *sampler.Sampler, period time.Duration, info HostInfo, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Thresholds.Warning == 0 && opts.Thresholds.Critical == 0 {
		opts.Thresholds = config.ThresholdsConfig{
			Warning:  int(WarningThreshold),
			Critical: int(CriticalThreshold),
		}
	}
	return Model{
		sampler:    s,
		period:     period,
		info:       info,
		thresholds: opts.Thresholds,
		clock:      opts.Clock,
		pending:    true, // Init samples straight away
		inFlight:   true,
		width:      defaultWidth,
		height:     defaultHeight,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Init takes the first sample immediately.
func (m Model) Init() tea.Cmd {
	return m.sampleCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.pending = false
		if m.paused || m.quitting {
			return m, nil
		}
		return m, m.startSample()

	case frameMsg:
		m.pending = false
		m.inFlight = false
		if m.quitting {
			return m, m.stop()
		}
		if msg.err != nil {
			// Tick only fails once the sampler has stopped.
			m.err = msg.err
			m.quitting = true
			return m, m.stop()
		}
		frame := msg.frame
		m.frame = &frame
		m.latency = msg.latency
		m.lastUpdate = m.clock()
		if m.paused {
			return m, nil
		}
		m.pending = true
		return m, m.tickCmd(m.period - msg.took)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.inFlight {
			// Finish the running sample first; frameMsg stops and quits.
			return m, nil
		}
		return m, m.stop()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Close):
		m.showHelp = false
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if !m.paused && !m.pending {
			return m, m.startSample()
		}
		return m, nil
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Err returns the error that ended the dashboard, if any.
func (m Model) Err() error {
	return m.err
}

// Paused reports whether sampling is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// Sampling reports whether a Tick is running off the UI goroutine.
func (m Model) Sampling() bool {
	return m.inFlight
}

// Frame returns the most recent frame, or nil before the first sample.
func (m Model) Frame() *sampler.Frame {
	return m.frame
}

// startSample marks a sample as outstanding and returns the command for it.
func (m *Model) startSample() tea.Cmd {
	m.pending = true
	m.inFlight = true
	return m.sampleCmd()
}

// stop moves the sampler to Terminating and ends the program. It must only
// run when no sample is in flight.
func (m *Model) stop() tea.Cmd {
	m.sampler.Stop()
	return tea.Quit
}

// tickCmd fires a tickMsg after d, immediately when d is not positive.
func (m Model) tickCmd(d time.Duration) tea.Cmd {
	if d < 0 {
		d = 0
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sampleCmd runs one Tick off the UI goroutine. The latency summary is read
// here too, so the sampler is never touched from View.
func (m Model) sampleCmd() tea.Cmd {
	s := m.sampler
	clock := m.clock
	return func() tea.Msg {
		start := clock()
		frame, err := s.Tick()
		return frameMsg{
			frame:   frame,
			latency: s.Latency().Summary(),
			err:     err,
			took:    clock().Sub(start),
		}
	}
}
