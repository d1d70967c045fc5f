// Package config provides YAML-based configuration loading for the
// platform jumper and the level-to-speed curve.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/platform-jumper/internal/core"
)

// JumperConfig contains all tunables of the simulation.
type JumperConfig struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Platforms PlatformsConfig `yaml:"platforms"`
	Scoring   ScoringConfig   `yaml:"scoring"`
}

// ScreenConfig describes the display surface and the clock.
type ScreenConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	TickMS float64 `yaml:"tick_ms"`
}

// PhysicsConfig defines gravity and jumping.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	MaxJumps         int     `yaml:"max_jumps"`
	JumpHeightSafety float64 `yaml:"jump_height_safety"`
}

// PlayerConfig defines the ball and its lateral control.
type PlayerConfig struct {
	Radius       float64 `yaml:"radius"`
	BaseWidth    float64 `yaml:"base_width"`
	MaxXVelocity float64 `yaml:"max_x_velocity"`
	MaxXAccel    float64 `yaml:"max_x_accel"`
	TiltDeadZone float64 `yaml:"tilt_dead_zone"`
}

// PlatformsConfig defines platform geometry, scrolling and spawning.
type PlatformsConfig struct {
	Thickness              float64 `yaml:"thickness"`
	MinWidth               int     `yaml:"min_width"`
	MaxWidth               int     `yaml:"max_width"`
	BaseSpeed              float64 `yaml:"base_speed"`
	SpeedIncrementPerLevel float64 `yaml:"speed_increment_per_level"`
	SpawnRateMinMS         int     `yaml:"spawn_rate_min_ms"`
	SpawnRateMaxMS         int     `yaml:"spawn_rate_max_ms"`
	MaxPlatforms           int     `yaml:"max_platforms"`
}

// ScoringConfig defines how score turns into levels.
type ScoringConfig struct {
	PointsPerLevel int `yaml:"points_per_level"`
}

// MaxJumpHeight returns the height the spawner assumes the player can climb
// between two platforms: h = v^2 / (2g) per charge, derated by the safety
// factor.
func (p PhysicsConfig) MaxJumpHeight() float64 {
	if p.Gravity == 0 {
		return 0
	}
	ideal := p.JumpVelocity * p.JumpVelocity / (2 * math.Abs(p.Gravity)) * float64(p.MaxJumps)
	return p.JumpHeightSafety * ideal
}

// SpeedCurve returns the scroll speed curve for this configuration.
func (c JumperConfig) SpeedCurve() SpeedCurve {
	return NewSpeedCurve(c.Platforms.BaseSpeed, c.Platforms.SpeedIncrementPerLevel)
}

// Runtime builds the runtime config for a session with the given seed.
func (c JumperConfig) Runtime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW: c.Screen.Width,
		ScreenH: c.Screen.Height,
		TickMS:  c.Screen.TickMS,
		Seed:    seed,
	}
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports the first out-of-range value.
func (c JumperConfig) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen must be positive, got %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Screen.TickMS <= 0:
		return fmt.Errorf("%w: tick_ms must be positive, got %v", ErrInvalid, c.Screen.TickMS)
	case c.Physics.Gravity >= 0:
		return fmt.Errorf("%w: gravity must be negative, got %v", ErrInvalid, c.Physics.Gravity)
	case c.Physics.JumpVelocity <= 0:
		return fmt.Errorf("%w: jump_velocity must be positive, got %v", ErrInvalid, c.Physics.JumpVelocity)
	case c.Physics.MaxJumps < 1:
		return fmt.Errorf("%w: max_jumps must be at least 1, got %d", ErrInvalid, c.Physics.MaxJumps)
	case c.Physics.JumpHeightSafety <= 0 || c.Physics.JumpHeightSafety > 1:
		return fmt.Errorf("%w: jump_height_safety must be in (0, 1], got %v", ErrInvalid, c.Physics.JumpHeightSafety)
	case c.Player.Radius <= 0:
		return fmt.Errorf("%w: player radius must be positive, got %v", ErrInvalid, c.Player.Radius)
	case c.Player.MaxXAccel <= 0:
		return fmt.Errorf("%w: max_x_accel must be positive, got %v", ErrInvalid, c.Player.MaxXAccel)
	case c.Platforms.MinWidth <= 0 || c.Platforms.MaxWidth < c.Platforms.MinWidth:
		return fmt.Errorf("%w: platform widths must satisfy 0 < min <= max, got [%d, %d]", ErrInvalid, c.Platforms.MinWidth, c.Platforms.MaxWidth)
	case c.Platforms.BaseSpeed < 0 || c.Platforms.SpeedIncrementPerLevel < 0:
		return fmt.Errorf("%w: platform speeds must not be negative", ErrInvalid)
	case c.Platforms.SpawnRateMinMS <= 0 || c.Platforms.SpawnRateMaxMS <= 0:
		return fmt.Errorf("%w: spawn rates must be positive", ErrInvalid)
	case c.Platforms.MaxPlatforms < 2:
		return fmt.Errorf("%w: max_platforms must be at least 2, got %d", ErrInvalid, c.Platforms.MaxPlatforms)
	case c.Scoring.PointsPerLevel <= 0:
		return fmt.Errorf("%w: points_per_level must be positive, got %d", ErrInvalid, c.Scoring.PointsPerLevel)
	}
	return nil
}
