package config

// SpeedCurve maps a level to the platform scroll speed in px/ms.
// Difficulty grows only through this linear term.
type SpeedCurve struct {
	base      float64
	increment float64
}

// NewSpeedCurve creates a curve starting at base and rising by increment
// per level.
func NewSpeedCurve(base, increment float64) SpeedCurve {
	return SpeedCurve{base: base, increment: increment}
}

// Speed returns the scroll speed for the given level.
func (s SpeedCurve) Speed(level int) float64 {
	if level < 0 {
		level = 0
	}
	return s.base + s.increment*float64(level)
}

// Base returns the level-0 speed.
func (s SpeedCurve) Base() float64 {
	return s.base
}

// Increment returns the per-level speed increase.
func (s SpeedCurve) Increment() float64 {
	return s.increment
}
