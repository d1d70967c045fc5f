package jumper

import (
	"math"

	"github.com/vovakirdan/platform-jumper/internal/config"
	"github.com/vovakirdan/platform-jumper/internal/core"
)

// Player is the ball. Coordinates are pixels with y growing downwards;
// velocities are pixels per millisecond with positive VY pointing up.
type Player struct {
	Radius       float64
	X, Y         float64
	LastX, LastY float64
	VX, VY       float64
	JumpsTaken   int
	LastLandedID SequenceID
}

// StepEvents reports what happened during one Integrate call.
type StepEvents struct {
	// Landings lists the platforms touched down on this step, in list order.
	Landings []SequenceID
	Riding   bool
	FellOut  bool
}

// Landed reports whether the step produced at least one landing.
func (e StepEvents) Landed() bool {
	return len(e.Landings) > 0
}

// PlayerSimulation integrates the ball and resolves its collisions.
type PlayerSimulation struct {
	player  Player
	physics config.PhysicsConfig
	cfg     config.PlayerConfig
	screenW float64
	screenH float64
}

// NewPlayerSimulation creates a simulation with the player at its start
// position.
func NewPlayerSimulation(cfg config.JumperConfig, rt core.RuntimeConfig) *PlayerSimulation {
	s := &PlayerSimulation{
		physics: cfg.Physics,
		cfg:     cfg.Player,
		screenW: float64(rt.ScreenW),
		screenH: float64(rt.ScreenH),
	}
	s.Reset()
	return s
}

// Player returns a copy of the current player state.
func (s *PlayerSimulation) Player() Player {
	return s.player
}

// MaxJumps returns the jump charge budget.
func (s *PlayerSimulation) MaxJumps() int {
	return s.physics.MaxJumps
}

// Reset puts the player back at the start: near the top-left corner, at
// rest, with a full charge budget and no landing recorded.
func (s *PlayerSimulation) Reset() {
	r := s.cfg.Radius
	s.player = Player{
		Radius: r,
		X:      2 * r,
		Y:      r,
		LastX:  2 * r,
		LastY:  r,
	}
}

// Jump launches the player upwards if a charge is left.
func (s *PlayerSimulation) Jump() bool {
	if s.player.JumpsTaken >= s.physics.MaxJumps {
		return false
	}
	s.player.VY = s.physics.JumpVelocity
	s.player.JumpsTaken++
	return true
}

// MarkLanded remembers id as the last platform that scored.
func (s *PlayerSimulation) MarkLanded(id SequenceID) {
	s.player.LastLandedID = id
}

// Integrate advances the player by dt milliseconds against platforms.
// speed is the current scroll speed; tilt supplies the lateral reading.
func (s *PlayerSimulation) Integrate(platforms []Platform, speed float64, tilt TiltProvider, dt float64) StepEvents {
	var ev StepEvents
	p := &s.player
	r := p.Radius

	p.Y -= p.VY * dt
	p.X += p.VX * dt

	if p.Y < r {
		p.Y = r
		p.VY = 0
	}

	shift := core.RoundPx(speed * dt)
	for i := range platforms {
		pl := &platforms[i]
		if !s.hits(pl) {
			continue
		}
		p.Y = pl.Y - r
		p.VY = 0
		if p.LastY != p.Y {
			ev.Landings = append(ev.Landings, pl.ID)
			p.JumpsTaken = 0
		} else {
			// Resting on it: move along with the scroll.
			ev.Riding = true
			p.X -= shift
		}
	}

	if p.X < r {
		p.X = r
		p.VX = 0
	}
	if p.X > s.screenW-r {
		p.X = s.screenW - r
		p.VX = 0
	}

	if p.Y-r > s.screenH {
		p.Y = s.screenH + r
		p.VY = 0
		ev.FellOut = true
	}

	p.VY += s.physics.Gravity * dt

	var a float64
	if tilt != nil {
		a = tilt.SampleTilt()
	}
	p.VX = s.lateralVelocity(a)

	p.LastX, p.LastY = p.X, p.Y
	return ev
}

// hits reports whether the player crossed onto the top of pl this step
// while not moving upwards.
func (s *PlayerSimulation) hits(pl *Platform) bool {
	p := &s.player
	bw := s.cfg.BaseWidth
	return p.X+bw >= pl.X &&
		p.X-bw <= pl.Right() &&
		p.LastY+p.Radius <= pl.Y &&
		p.Y+p.Radius >= pl.Y &&
		p.VY <= 0
}

// lateralVelocity maps a tilt reading in milli-G to a horizontal velocity.
func (s *PlayerSimulation) lateralVelocity(a float64) float64 {
	if math.Abs(a) < s.cfg.TiltDeadZone {
		return 0
	}
	a = core.ClampF(a, -s.cfg.MaxXAccel, s.cfg.MaxXAccel)
	return a / s.cfg.MaxXAccel * s.cfg.MaxXVelocity
}
