package config

import (
	_ "embed"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

// DefaultJumperConfig returns the built-in configuration, used when the
// embedded YAML cannot be parsed.
func DefaultJumperConfig() JumperConfig {
	const radius = 10
	return JumperConfig{
		Screen: ScreenConfig{
			Width:  144,
			Height: 168,
			TickMS: 50, // 20 Hz
		},
		Physics: PhysicsConfig{
			Gravity:          -0.001,
			JumpVelocity:     0.3,
			MaxJumps:         2,
			JumpHeightSafety: 0.9,
		},
		Player: PlayerConfig{
			Radius:       radius,
			BaseWidth:    radius / 2,
			MaxXVelocity: 0.3,
			MaxXAccel:    707.1,
			TiltDeadZone: 30,
		},
		Platforms: PlatformsConfig{
			Thickness:              3,
			MinWidth:               radius * 2,
			MaxWidth:               radius * 6,
			BaseSpeed:              0.036,
			SpeedIncrementPerLevel: 0.0072, // 20% of base speed
			SpawnRateMinMS:         800,
			SpawnRateMaxMS:         500,
			MaxPlatforms:           16,
		},
		Scoring: ScoringConfig{
			PointsPerLevel: 10,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultJumperYAML
}
