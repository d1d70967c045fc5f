package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/platform-jumper/internal/core"
)

// KeyMap defines the key bindings of a game screen.
// It centralizes key bindings and makes them testable.
type KeyMap struct {
	Jump       key.Binding
	Left       key.Binding
	Right      key.Binding
	Center     key.Binding
	Pause      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Left, k.Right, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Left, k.Right, k.Center},
		{k.Pause, k.Restart, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "lean left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "lean right"),
		),
		Center: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "level"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// WatchKeyMap returns the bindings available while watching a replay.
// Game inputs are disabled so the recording stays in control.
func WatchKeyMap() KeyMap {
	k := DefaultKeyMap()
	k.Pause.SetHelp("p", "pause replay")
	for _, b := range []*key.Binding{&k.Jump, &k.Left, &k.Right, &k.Center, &k.Restart} {
		b.SetEnabled(false)
	}
	return k
}

// Action translates a key message to a game action.
// Returns ActionNone for unbound keys.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Left):
		return core.ActionTiltLeft
	case key.Matches(msg, k.Right):
		return core.ActionTiltRight
	case key.Matches(msg, k.Center):
		return core.ActionTiltCenter
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
