package jumper

import (
	"errors"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/platform-jumper/internal/config"
	"github.com/vovakirdan/platform-jumper/internal/core"
)

// SequenceID numbers platforms in spawn order.
type SequenceID uint32

// SentinelID marks "no platform": the starting platform carries it and a
// fresh player has landed on it.
const SentinelID SequenceID = 0

// ErrPlatformCapacity is returned by Spawn when the collection is full.
var ErrPlatformCapacity = errors.New("jumper: platform capacity reached")

// Platform is a horizontal bar the player can land on.
// (X, Y) is the top-left corner; Y is the landing surface.
type Platform struct {
	ID SequenceID
	X  float64
	Y  float64
	W  float64
	H  float64
}

// Right returns the x-coordinate of the right edge.
func (p Platform) Right() float64 {
	return p.X + p.W
}

// Rect returns the platform as a pixel rectangle.
func (p Platform) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Sentinel reports whether this is the starting platform.
func (p Platform) Sentinel() bool {
	return p.ID == SentinelID
}

// AdvanceResult summarizes one AdvanceAndSpawn call.
type AdvanceResult struct {
	Shift     float64 // Pixels every platform moved left
	Despawned int     // Platforms removed off the left edge
	Spawned   bool    // Whether a new platform entered on the right
}

// PlatformManager owns the platform collection: it spawns platforms just
// off the right edge, scrolls them left and drops them once they are fully
// past the left edge.
//
// Platforms are stored by value in spawn order. Removal compacts the slice
// in place; the read index is always ahead of the write index, so an entry
// is never looked at again once it has been dropped.
type PlatformManager struct {
	platforms []Platform
	rng       *Rand
	cfg       config.PlatformsConfig
	logger    *log.Logger

	screenW  float64
	screenH  float64
	radius   float64
	maxReach int // whole pixels the player can climb or drop between platforms

	nextID         SequenceID
	spawnCountdown float64 // ms until the next spawn attempt
}

// NewPlatformManager creates an empty manager. Call Reset to place the
// starting platform.
func NewPlatformManager(rng *Rand, cfg config.JumperConfig, rt core.RuntimeConfig, logger *log.Logger) *PlatformManager {
	return &PlatformManager{
		platforms: make([]Platform, 0, cfg.Platforms.MaxPlatforms),
		rng:       rng,
		cfg:       cfg.Platforms,
		logger:    logger,
		screenW:   float64(rt.ScreenW),
		screenH:   float64(rt.ScreenH),
		radius:    cfg.Player.Radius,
		maxReach:  int(math.Round(cfg.Physics.MaxJumpHeight())),
		nextID:    SentinelID + 1,
	}
}

// Platforms returns the current platforms in spawn order.
// The slice is owned by the manager and only valid until the next tick.
func (m *PlatformManager) Platforms() []Platform {
	return m.platforms
}

// Len returns the number of live platforms.
func (m *PlatformManager) Len() int {
	return len(m.platforms)
}

// SpawnCountdown returns the milliseconds left before the next spawn
// attempt.
func (m *PlatformManager) SpawnCountdown() float64 {
	return m.spawnCountdown
}

// Pending reports whether any platform still sticks out past the right
// edge of the screen.
func (m *PlatformManager) Pending() bool {
	for i := range m.platforms {
		if m.platforms[i].Right() > m.screenW {
			return true
		}
	}
	return false
}

// Reset drops every platform and places the full-width starting platform.
// Sequence numbering continues where it was, so ids are never reused.
func (m *PlatformManager) Reset() {
	clear(m.platforms)
	m.platforms = m.platforms[:0]
	m.spawnCountdown = 0

	lo, hi := m.spawnBounds()
	m.platforms = append(m.platforms, Platform{
		ID: SentinelID,
		X:  0,
		Y:  float64(m.rng.Range(lo, hi)),
		W:  m.screenW,
		H:  m.cfg.Thickness,
	})
}

// Spawn appends a platform just off the right edge. Its height is drawn
// from the window reachable from after (or the whole playfield without a
// predecessor), so the player can always climb from one to the next.
func (m *PlatformManager) Spawn(after *Platform) (Platform, error) {
	if len(m.platforms) >= m.cfg.MaxPlatforms {
		return Platform{}, ErrPlatformCapacity
	}

	lo, hi := m.reachableWindow(after)
	p := Platform{
		ID: m.nextID,
		X:  m.screenW + 1,
		Y:  float64(m.rng.Range(lo, hi)),
		H:  m.cfg.Thickness,
	}
	p.W = float64(m.rng.Range(m.cfg.MinWidth, m.cfg.MaxWidth))
	m.nextID++

	m.platforms = append(m.platforms, p)
	return p, nil
}

// AdvanceAndSpawn scrolls every platform left by speed*dt rounded to whole
// pixels, removes the ones that left the screen and, once nothing is
// waiting past the right edge, runs down the spawn countdown.
func (m *PlatformManager) AdvanceAndSpawn(dt, speed float64) AdvanceResult {
	res := AdvanceResult{Shift: core.RoundPx(speed * dt)}

	kept := m.platforms[:0]
	for i := 0; i < len(m.platforms); i++ {
		p := m.platforms[i]
		p.X -= res.Shift
		if p.Right() < 0 {
			res.Despawned++
			m.logger.Debug("platform despawned", "id", p.ID)
			continue
		}
		kept = append(kept, p)
	}
	clear(m.platforms[len(kept):])
	m.platforms = kept

	if m.Pending() {
		return res
	}

	m.spawnCountdown -= dt
	if m.spawnCountdown > 0 {
		return res
	}

	var after *Platform
	if n := len(m.platforms); n > 0 {
		last := m.platforms[n-1]
		after = &last
	}
	p, err := m.Spawn(after)
	if err != nil {
		// Countdown stays expired so the next tick tries again.
		m.logger.Warn("platform spawn failed", "error", err, "platforms", len(m.platforms))
		return res
	}
	res.Spawned = true
	m.spawnCountdown = float64(m.rng.Range(m.cfg.SpawnRateMaxMS, m.cfg.SpawnRateMinMS))
	m.logger.Debug("platform spawned", "id", p.ID, "y", p.Y, "w", p.W, "next_in_ms", m.spawnCountdown)
	return res
}

// spawnBounds is the vertical range platforms may occupy at all: never so
// high that the player cannot fit above, never below the bottom edge.
func (m *PlatformManager) spawnBounds() (int, int) {
	return int(m.radius * 3), int(m.screenH)
}

// reachableWindow returns [lo, hi) for the next platform's top. An
// inverted window collapses onto lo.
func (m *PlatformManager) reachableWindow(after *Platform) (int, int) {
	lo, hi := m.spawnBounds()
	if after == nil {
		return lo, hi
	}

	y := int(after.Y)
	lo = max(lo, y-m.maxReach)
	hi = min(hi, y+m.maxReach)
	if lo > hi {
		hi = lo
	}
	return lo, hi
}
