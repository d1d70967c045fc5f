// Package tui provides the Bubble Tea front-end for the platform jumper.
// It drives the simulation clock, maps keys to game actions and draws
// snapshots to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after
// interval. The model re-arms it after every tick it wants to follow.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval converts a step length in milliseconds to a duration.
func tickInterval(tickMS float64) time.Duration {
	return time.Duration(tickMS * float64(time.Millisecond))
}
