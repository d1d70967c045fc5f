package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/platform-jumper/internal/config"
	"github.com/vovakirdan/platform-jumper/internal/core"
	"github.com/vovakirdan/platform-jumper/internal/jumper"
	"github.com/vovakirdan/platform-jumper/internal/replay"
)

const (
	defaultTermW = 80
	defaultTermH = 24
)

// Options configures a game screen.
type Options struct {
	Config config.JumperConfig
	Seed   int64
	Logger *log.Logger
	// Width and Height are the terminal size until the first resize
	// message arrives. Zero picks 80x24.
	Width, Height int
	// ScreenshotDir defaults to ~/.jumper/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for a game screen. It is the clock driver
// of the simulation: one TickMsg is one fixed step, and the next tick is
// only armed while the game wants to run, so a paused game costs nothing.
type Model struct {
	session  *replay.Session  // live play
	playback *replay.Playback // watching a recording

	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	layout   Layout
	cfg      config.JumperConfig
	snap     jumper.Snapshot
	interval time.Duration
	logger   *log.Logger
	shotDir  string

	ticking  bool // a tick command is in flight
	held     bool // replay paused by the viewer
	status   string
	quitting bool
}

// NewModel creates a model for an interactive session.
func NewModel(opts Options) Model {
	opts = withDefaults(opts)
	m := newModel(opts, DefaultKeyMap())
	m.session = replay.NewSession(opts.Config, opts.Seed, jumper.Options{Logger: opts.Logger})
	m.snap = m.session.Game().Snapshot()
	return m
}

// NewWatchModel creates a model that plays back a recording.
func NewWatchModel(p *replay.Playback, opts Options) Model {
	opts.Config = p.Recording().Config
	opts = withDefaults(opts)
	m := newModel(opts, WatchKeyMap())
	m.playback = p
	m.snap = p.Game().Snapshot()
	return m
}

func withDefaults(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultTermW, defaultTermH
	}
	if opts.ScreenshotDir == "" {
		home, _ := os.UserHomeDir()
		opts.ScreenshotDir = filepath.Join(home, ".jumper", "screenshots")
	}
	return opts
}

func newModel(opts Options, keys KeyMap) Model {
	layout := FitLayout(opts.Config.Screen.Width, opts.Config.Screen.Height, opts.Width, opts.Height)
	h := help.New()
	h.Width = opts.Width

	return Model{
		keys:     keys,
		help:     h,
		screen:   core.NewScreen(layout.ScreenSize()),
		layout:   layout,
		cfg:      opts.Config,
		interval: tickInterval(opts.Config.Screen.TickMS),
		logger:   opts.Logger,
		shotDir:  opts.ScreenshotDir,
		ticking:  true, // Init arms the first tick
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Game actions only raise requests;
// the next tick applies them.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionScreenshot:
		m.saveScreenshot()
		return m, nil
	}

	if m.playback != nil {
		if action == core.ActionPause {
			m.held = !m.held
			if !m.held && !m.ticking && !m.playback.Done() {
				m.ticking = true
				return m, tickCmd(m.interval)
			}
		}
		return m, nil
	}

	m.session.Apply(action)
	m.status = ""
	return m.rearm()
}

// handleResize refits the playfield. The simulation works in pixels and
// is not affected.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.layout = FitLayout(m.cfg.Screen.Width, m.cfg.Screen.Height, msg.Width, msg.Height)
	m.screen.Resize(m.layout.ScreenSize())
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ticking = false

	if m.playback != nil {
		if m.held {
			return m, nil
		}
		m.snap = m.playback.Step()
		if m.playback.Done() {
			m.snap = m.playback.Step()
			m.status = "replay finished"
			return m, nil
		}
		m.ticking = true
		return m, tickCmd(m.interval)
	}

	m.snap = m.session.Tick()
	return m.rearm()
}

// rearm schedules the next tick if the game wants one and none is pending.
func (m Model) rearm() (tea.Model, tea.Cmd) {
	if m.ticking || !m.session.Game().Running() {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.interval)
}

// Snapshot returns the last frame the model drew from.
func (m Model) Snapshot() jumper.Snapshot {
	return m.snap
}

// Recording returns the recording of the live session so far.
func (m Model) Recording() (replay.Recording, bool) {
	if m.session == nil {
		return replay.Recording{}, false
	}
	return m.session.Finish(), true
}

func (m Model) statusText() string {
	if m.playback != nil {
		text := fmt.Sprintf("REPLAY %d/%d", m.playback.Frame(), m.playback.Recording().Frames)
		if m.held {
			text += " held"
		}
		if m.status != "" {
			text += "  " + m.status
		}
		return text
	}
	return m.status
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.snap, m.layout, "")

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "dir", m.shotDir, "error", err)
		m.status = "screenshot failed"
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("jumper_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "path", path, "error", err)
		m.status = "screenshot failed"
		return
	}

	m.logger.Info("screenshot saved", "path", path)
	m.status = "screenshot saved"
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawFrame(m.screen, m.snap, m.layout, m.statusText())
	return renderView(m.screen, m.help.View(m.keys))
}

// Play runs an interactive session and returns its recording.
func Play(opts Options) (replay.Recording, error) {
	model := NewModel(opts)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return replay.Recording{}, err
	}

	if m, ok := final.(Model); ok {
		model = m
	}
	rec, _ := model.Recording()
	return rec, nil
}

// Watch plays a recording back in the terminal.
func Watch(pb *replay.Playback, opts Options) error {
	p := tea.NewProgram(NewWatchModel(pb, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
