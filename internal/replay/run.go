package replay

import (
	"fmt"

	"github.com/vovakirdan/platform-jumper/internal/jumper"
)

// Playback feeds a recording to a fresh game one frame at a time.
type Playback struct {
	rec  Recording
	game *jumper.Game
	dt   float64

	frame uint64
	next  int // index of the first event not yet applied
}

// NewPlayback prepares rec for playback.
func NewPlayback(rec Recording, opts jumper.Options) (*Playback, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	opts.Tilt = jumper.NewKeyboardTilt(rec.Config)
	return &Playback{
		rec:  rec,
		game: jumper.New(rec.Config, rec.Config.Runtime(rec.Seed), opts),
		dt:   rec.Config.Screen.TickMS,
	}, nil
}

// Game returns the game being replayed.
func (p *Playback) Game() *jumper.Game {
	return p.game
}

// Recording returns the recording being replayed.
func (p *Playback) Recording() Recording {
	return p.rec
}

// Frame returns the number of frames played.
func (p *Playback) Frame() uint64 {
	return p.frame
}

// Done reports whether every frame has been played.
func (p *Playback) Done() bool {
	return p.frame >= p.rec.Frames
}

// Step applies the inputs of the current frame and ticks once. After the
// last frame it applies the trailing inputs and stops ticking.
func (p *Playback) Step() jumper.Snapshot {
	p.applyFrame(p.frame)
	if p.Done() {
		return p.game.Snapshot()
	}
	snap := p.game.Tick(p.dt)
	p.frame++
	return snap
}

func (p *Playback) applyFrame(frame uint64) {
	for p.next < len(p.rec.Events) && p.rec.Events[p.next].Frame == frame {
		p.game.Apply(p.rec.Events[p.next].Action)
		p.next++
	}
}

// Run replays rec from its seed and returns the final snapshot. Ticks run
// back to back; nothing waits on a clock.
func Run(rec Recording, opts jumper.Options) (jumper.Snapshot, error) {
	p, err := NewPlayback(rec, opts)
	if err != nil {
		return jumper.Snapshot{}, err
	}
	for !p.Done() {
		p.Step()
	}
	// Inputs that arrived after the last tick still count.
	return p.Step(), nil
}

// Verify replays rec and checks that it ends where the recorded session
// ended.
func Verify(rec Recording, opts jumper.Options) (jumper.Snapshot, error) {
	snap, err := Run(rec, opts)
	if err != nil {
		return snap, err
	}
	if got := Summarize(snap); got != rec.Final {
		return snap, fmt.Errorf("%w: replayed %+v, recorded %+v", ErrMismatch, got, rec.Final)
	}
	return snap, nil
}
