package replay

import (
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/platform-jumper/internal/config"
	"github.com/vovakirdan/platform-jumper/internal/core"
	"github.com/vovakirdan/platform-jumper/internal/jumper"
)

// Recorder collects the input log of a session.
type Recorder struct {
	seed   int64
	cfg    config.JumperConfig
	frame  uint64
	events []Event
}

// NewRecorder starts an empty log for a session with cfg and seed.
func NewRecorder(cfg config.JumperConfig, seed int64) *Recorder {
	return &Recorder{seed: seed, cfg: cfg}
}

// Record logs a at the current frame. Actions that do not affect the
// simulation are skipped and reported as not recorded.
func (r *Recorder) Record(a core.Action) bool {
	if !a.Replayable() {
		return false
	}
	r.events = append(r.events, Event{Frame: r.frame, Action: a})
	return true
}

// Advance marks the end of a tick.
func (r *Recorder) Advance() {
	r.frame++
}

// Frames returns the number of ticks recorded so far.
func (r *Recorder) Frames() uint64 {
	return r.frame
}

// Finish seals the log into a recording ending in final.
func (r *Recorder) Finish(final jumper.Snapshot) Recording {
	return Recording{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Seed:      r.seed,
		Config:    r.cfg,
		Frames:    r.frame,
		Events:    append([]Event(nil), r.events...),
		Final:     Summarize(final),
	}
}

// Session is a game whose inputs and ticks are recorded as they happen.
// Interactive front-ends drive a Session so any run can be saved.
type Session struct {
	game *jumper.Game
	rec  *Recorder
	dt   float64
}

// NewSession creates a game for cfg and seed with keyboard tilt.
func NewSession(cfg config.JumperConfig, seed int64, opts jumper.Options) *Session {
	opts.Tilt = jumper.NewKeyboardTilt(cfg)
	return &Session{
		game: jumper.New(cfg, cfg.Runtime(seed), opts),
		rec:  NewRecorder(cfg, seed),
		dt:   cfg.Screen.TickMS,
	}
}

// Game returns the underlying game.
func (s *Session) Game() *jumper.Game {
	return s.game
}

// Apply records a and hands it to the game.
func (s *Session) Apply(a core.Action) {
	s.rec.Record(a)
	s.game.Apply(a)
}

// Tick advances the game by one fixed step.
func (s *Session) Tick() jumper.Snapshot {
	snap := s.game.Tick(s.dt)
	s.rec.Advance()
	return snap
}

// Frames returns the number of ticks played.
func (s *Session) Frames() uint64 {
	return s.rec.Frames()
}

// Finish returns the recording of everything played so far.
func (s *Session) Finish() Recording {
	return s.rec.Finish(s.game.Snapshot())
}
