package jumper

import (
	"math"

	"github.com/vovakirdan/platform-jumper/internal/config"
)

// TiltProvider supplies the lateral tilt reading in milli-G. It is sampled
// once per simulated tick.
type TiltProvider interface {
	SampleTilt() float64
}

// TiltFunc adapts a plain function to TiltProvider.
type TiltFunc func() float64

// SampleTilt calls f.
func (f TiltFunc) SampleTilt() float64 {
	return f()
}

// StaticTilt reports a fixed reading until changed.
type StaticTilt struct {
	value float64
}

// NewStaticTilt creates a provider reporting value.
func NewStaticTilt(value float64) *StaticTilt {
	return &StaticTilt{value: value}
}

// Set changes the reported reading.
func (t *StaticTilt) Set(value float64) {
	t.value = value
}

func (t *StaticTilt) SampleTilt() float64 {
	return t.value
}

// Leaner is a tilt provider driven by discrete left/right inputs.
type Leaner interface {
	TiltProvider
	// Lean pushes the reading towards dir (-1 left, +1 right); 0 levels it.
	Lean(dir int)
}

const (
	defaultKeyTiltDecay = 0.8
	keyTiltFloor        = 1.0
)

// KeyTilt emulates an accelerometer with the keyboard. Each lean adds an
// impulse of half the full-scale reading, capped at full scale, and the
// reading decays every sample so the ball settles once keys are released.
type KeyTilt struct {
	value float64
	full  float64
	decay float64
}

// NewKeyTilt creates a keyboard tilt whose readings saturate at full.
func NewKeyTilt(full float64) *KeyTilt {
	return &KeyTilt{full: full, decay: defaultKeyTiltDecay}
}

// NewKeyboardTilt creates the keyboard tilt for cfg: a full lean reaches
// the top lateral speed.
func NewKeyboardTilt(cfg config.JumperConfig) *KeyTilt {
	return NewKeyTilt(cfg.Player.MaxXAccel)
}

// Lean applies one key press.
func (k *KeyTilt) Lean(dir int) {
	switch {
	case dir < 0:
		k.value = max(k.value-k.full/2, -k.full)
	case dir > 0:
		k.value = min(k.value+k.full/2, k.full)
	default:
		k.value = 0
	}
}

// Value returns the current reading without decaying it.
func (k *KeyTilt) Value() float64 {
	return k.value
}

func (k *KeyTilt) SampleTilt() float64 {
	v := k.value
	k.value *= k.decay
	if math.Abs(k.value) < keyTiltFloor {
		k.value = 0
	}
	return v
}
