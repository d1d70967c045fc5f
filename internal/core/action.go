package core

import "fmt"

// Action is a semantic input intent, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionJump              // Space, Up - spend a jump charge
	ActionTiltLeft          // Left, A - lean left
	ActionTiltRight         // Right, D - lean right
	ActionTiltCenter        // Down, S - level out
	ActionPause             // P, Esc - pause/resume toggle
	ActionRestart           // R - deferred reset
	ActionScreenshot        // Ctrl+S
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionTiltLeft:
		return "TiltLeft"
	case ActionTiltRight:
		return "TiltRight"
	case ActionTiltCenter:
		return "TiltCenter"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

var actionsByName = map[string]Action{
	"None":       ActionNone,
	"Jump":       ActionJump,
	"TiltLeft":   ActionTiltLeft,
	"TiltRight":  ActionTiltRight,
	"TiltCenter": ActionTiltCenter,
	"Pause":      ActionPause,
	"Restart":    ActionRestart,
	"Screenshot": ActionScreenshot,
	"Quit":       ActionQuit,
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, error) {
	a, ok := actionsByName[name]
	if !ok {
		return ActionNone, fmt.Errorf("core: unknown action %q", name)
	}
	return a, nil
}

// Replayable reports whether the action changes the simulation and so
// belongs in an input log.
func (a Action) Replayable() bool {
	switch a {
	case ActionJump, ActionTiltLeft, ActionTiltRight, ActionTiltCenter, ActionPause, ActionRestart:
		return true
	}
	return false
}

func (a Action) MarshalText() ([]byte, error) {
	if _, ok := actionsByName[a.String()]; !ok {
		return nil, fmt.Errorf("core: cannot encode action %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
