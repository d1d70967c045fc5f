// Package jumper implements the platform jumper simulation: a ball falling
// under gravity onto platforms that scroll in from the right.
//
// The Game advances in fixed steps driven by an external clock. All state
// changes happen inside Tick; input handlers only set request flags that the
// next tick consumes, so a tick never observes a half-applied reset.
package jumper

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/platform-jumper/internal/config"
	"github.com/vovakirdan/platform-jumper/internal/core"
)

// Phase is the control state of a game.
type Phase int

const (
	PhasePlaying Phase = iota
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// LandingEvent describes one landing processed by a tick.
type LandingEvent struct {
	ID     SequenceID
	Scored bool
	Score  int
	Level  int
	Tick   uint64
}

// Options configures collaborators of a Game. Zero values are usable.
type Options struct {
	// Logger receives engine diagnostics. Defaults to a discarding logger.
	Logger *log.Logger
	// Tilt is sampled once per simulated tick. Defaults to a level reading.
	Tilt TiltProvider
	// OnLanding is called for every landing, scored or not.
	OnLanding func(LandingEvent)
	// OnPhaseChange is called after every phase transition.
	OnPhaseChange func(from, to Phase)
}

// Game owns one simulation context: platforms, player, score, phase and
// the random source they share.
type Game struct {
	cfg     config.JumperConfig
	runtime core.RuntimeConfig
	curve   config.SpeedCurve

	rng       *Rand
	platforms *PlatformManager
	player    *PlayerSimulation
	score     *ScoreState
	tilt      TiltProvider
	logger    *log.Logger

	phase          Phase
	resetRequested bool
	pauseRequested bool
	tick           uint64

	onLanding     func(LandingEvent)
	onPhaseChange func(from, to Phase)
}

// New creates a game in the Playing phase with the starting platform in
// place. rt.Seed seeds every random decision of the session.
func New(cfg config.JumperConfig, rt core.RuntimeConfig, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tilt := opts.Tilt
	if tilt == nil {
		tilt = NewStaticTilt(0)
	}

	rng := NewRand(rt.Seed)
	g := &Game{
		cfg:           cfg,
		runtime:       rt,
		curve:         cfg.SpeedCurve(),
		rng:           rng,
		platforms:     NewPlatformManager(rng, cfg, rt, logger),
		player:        NewPlayerSimulation(cfg, rt),
		score:         NewScoreState(cfg.Scoring.PointsPerLevel),
		tilt:          tilt,
		logger:        logger,
		phase:         PhasePlaying,
		onLanding:     opts.OnLanding,
		onPhaseChange: opts.OnPhaseChange,
	}
	g.platforms.Reset()
	return g
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Tilt returns the tilt provider sampled by the game.
func (g *Game) Tilt() TiltProvider {
	return g.tilt
}

// Config returns the game configuration.
func (g *Game) Config() config.JumperConfig {
	return g.cfg
}

// Runtime returns the runtime configuration the game was created with.
func (g *Game) Runtime() core.RuntimeConfig {
	return g.runtime
}

// RequestReset asks the next tick to start a fresh round.
func (g *Game) RequestReset() {
	g.resetRequested = true
}

// RequestPauseToggle asks the next tick to flip between Playing and Paused.
func (g *Game) RequestPauseToggle() {
	g.pauseRequested = true
}

// Jump makes the player jump. It does nothing unless the game is Playing.
func (g *Game) Jump() bool {
	if g.phase != PhasePlaying {
		return false
	}
	return g.player.Jump()
}

// Apply routes a front-end action to the game.
func (g *Game) Apply(a core.Action) {
	switch a {
	case core.ActionJump:
		g.Jump()
	case core.ActionPause:
		g.RequestPauseToggle()
	case core.ActionRestart:
		g.RequestReset()
	case core.ActionTiltLeft, core.ActionTiltRight, core.ActionTiltCenter:
		l, ok := g.tilt.(Leaner)
		if !ok {
			return
		}
		switch a {
		case core.ActionTiltLeft:
			l.Lean(-1)
		case core.ActionTiltRight:
			l.Lean(1)
		default:
			l.Lean(0)
		}
	}
}

// Running reports whether the clock driving this game should keep firing.
// A paused game needs no ticks until a request arrives.
func (g *Game) Running() bool {
	return g.phase != PhasePaused || g.resetRequested || g.pauseRequested
}

// Tick advances the game by dt milliseconds and returns the new snapshot.
func (g *Game) Tick(dt float64) Snapshot {
	if g.resetRequested {
		g.resetRequested = false
		g.reset()
	}

	if g.pauseRequested {
		g.pauseRequested = false
		switch g.phase {
		case PhasePlaying:
			g.setPhase(PhasePaused)
			return g.Snapshot()
		case PhasePaused:
			g.setPhase(PhasePlaying)
		}
	}

	if g.phase == PhasePaused {
		return g.Snapshot()
	}

	g.tick++
	speed := g.curve.Speed(g.score.Level())
	g.platforms.AdvanceAndSpawn(dt, speed)

	if g.phase == PhasePlaying {
		ev := g.player.Integrate(g.platforms.Platforms(), speed, g.tilt, dt)
		for _, id := range ev.Landings {
			g.recordLanding(id)
		}
		if ev.FellOut {
			g.setPhase(PhaseGameOver)
		}
	}

	return g.Snapshot()
}

// Snapshot copies the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	p := g.player.Player()
	platforms := g.platforms.Platforms()
	return Snapshot{
		Player: PlayerView{
			X:          p.X,
			Y:          p.Y,
			Radius:     p.Radius,
			JumpsTaken: p.JumpsTaken,
			MaxJumps:   g.player.MaxJumps(),
		},
		Platforms: append([]Platform(nil), platforms...),
		Score:     g.score.Score(),
		Level:     g.score.Level(),
		Speed:     g.curve.Speed(g.score.Level()),
		Phase:     g.phase,
		Tick:      g.tick,
		ScreenW:   g.runtime.ScreenW,
		ScreenH:   g.runtime.ScreenH,
	}
}

func (g *Game) reset() {
	g.score.Reset()
	g.platforms.Reset()
	g.player.Reset()
	g.pauseRequested = false
	g.tick = 0
	g.logger.Info("round reset")
	g.setPhase(PhasePlaying)
}

func (g *Game) recordLanding(id SequenceID) {
	last := g.player.Player().LastLandedID
	prevLevel := g.score.Level()
	scored := g.score.RecordLanding(id, last)
	if scored {
		g.player.MarkLanded(id)
		g.logger.Debug("landed", "platform", id, "score", g.score.Score())
		if lvl := g.score.Level(); lvl != prevLevel {
			g.logger.Info("level up", "level", lvl, "speed", g.curve.Speed(lvl))
		}
	}
	if g.onLanding != nil {
		g.onLanding(LandingEvent{
			ID:     id,
			Scored: scored,
			Score:  g.score.Score(),
			Level:  g.score.Level(),
			Tick:   g.tick,
		})
	}
}

// setPhase is idempotent: setting the current phase again is not a
// transition.
func (g *Game) setPhase(to Phase) {
	from := g.phase
	if from == to {
		return
	}
	g.phase = to
	g.logger.Info("phase changed", "from", from, "to", to, "score", g.score.Score())
	if g.onPhaseChange != nil {
		g.onPhaseChange(from, to)
	}
}
