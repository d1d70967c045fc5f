// Package replay records play sessions as a seed plus an input log and
// reproduces them headlessly. A session is fully determined by its
// configuration, its seed and the frame each action arrived on, so a
// recording replays to the exact same final state.
package replay

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/platform-jumper/internal/config"
	"github.com/vovakirdan/platform-jumper/internal/core"
	"github.com/vovakirdan/platform-jumper/internal/jumper"
)

var (
	// ErrCorrupt is wrapped by every structural problem of a recording.
	ErrCorrupt = errors.New("replay: corrupt recording")
	// ErrMismatch is returned by Verify when a replay ends elsewhere than
	// the recorded session.
	ErrMismatch = errors.New("replay: final state mismatch")
)

// Event is one input applied before the tick with index Frame.
type Event struct {
	Frame  uint64      `yaml:"frame"`
	Action core.Action `yaml:"action"`
}

// Summary is the part of the final snapshot a recording keeps for
// verification and listings.
type Summary struct {
	Score int    `yaml:"score"`
	Level int    `yaml:"level"`
	Tick  uint64 `yaml:"tick"`
	Phase string `yaml:"phase"`
}

// Summarize extracts the summary of a snapshot.
func Summarize(s jumper.Snapshot) Summary {
	return Summary{Score: s.Score, Level: s.Level, Tick: s.Tick, Phase: s.Phase.String()}
}

// Recording is a complete, replayable session.
type Recording struct {
	ID        string              `yaml:"id"`
	CreatedAt time.Time           `yaml:"created_at"`
	Seed      int64               `yaml:"seed"`
	Config    config.JumperConfig `yaml:"config"`
	Frames    uint64              `yaml:"frames"`
	Events    []Event             `yaml:"events"`
	Final     Summary             `yaml:"final"`
}

// Validate checks that the recording can be replayed.
func (r Recording) Validate() error {
	if err := r.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	var prev uint64
	for i, ev := range r.Events {
		if ev.Frame < prev {
			return fmt.Errorf("%w: event %d at frame %d precedes frame %d", ErrCorrupt, i, ev.Frame, prev)
		}
		if ev.Frame > r.Frames {
			return fmt.Errorf("%w: event %d at frame %d after the last frame %d", ErrCorrupt, i, ev.Frame, r.Frames)
		}
		if !ev.Action.Replayable() {
			return fmt.Errorf("%w: event %d has action %v", ErrCorrupt, i, ev.Action)
		}
		prev = ev.Frame
	}
	return nil
}

// Duration returns the played time the recording covers.
func (r Recording) Duration() time.Duration {
	return time.Duration(float64(r.Frames) * r.Config.Screen.TickMS * float64(time.Millisecond))
}

// Marshal encodes a recording as YAML.
func Marshal(r Recording) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates a YAML recording.
func Unmarshal(data []byte) (Recording, error) {
	var r Recording
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Recording{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := r.Validate(); err != nil {
		return Recording{}, err
	}
	return r, nil
}
