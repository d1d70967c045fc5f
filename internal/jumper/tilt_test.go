package jumper

import "testing"

func TestKeyTiltLean(t *testing.T) {
	k := NewKeyTilt(707.1)

	k.Lean(1)
	if k.Value() != 353.55 {
		t.Errorf("after one lean right: %v, want 353.55", k.Value())
	}
	k.Lean(1)
	k.Lean(1)
	if k.Value() != 707.1 {
		t.Errorf("lean did not saturate: %v", k.Value())
	}
	k.Lean(-1)
	if k.Value() != 353.55 {
		t.Errorf("lean left from full right: %v, want 353.55", k.Value())
	}
	k.Lean(0)
	if k.Value() != 0 {
		t.Errorf("center: %v, want 0", k.Value())
	}
}

func TestKeyTiltDecays(t *testing.T) {
	k := NewKeyTilt(707.1)
	k.Lean(-1)

	first := k.SampleTilt()
	if first != -353.55 {
		t.Fatalf("first sample = %v, want -353.55", first)
	}
	second := k.SampleTilt()
	if second <= first || second >= 0 {
		t.Errorf("second sample = %v, want between %v and 0", second, first)
	}
	for i := 0; i < 100; i++ {
		k.SampleTilt()
	}
	if k.Value() != 0 {
		t.Errorf("reading did not settle: %v", k.Value())
	}
}

func TestStaticTilt(t *testing.T) {
	s := NewStaticTilt(40)
	if s.SampleTilt() != 40 || s.SampleTilt() != 40 {
		t.Error("static reading changed between samples")
	}
	s.Set(-12)
	if s.SampleTilt() != -12 {
		t.Errorf("SampleTilt() = %v after Set(-12)", s.SampleTilt())
	}

	var f TiltProvider = TiltFunc(func() float64 { return 3 })
	if f.SampleTilt() != 3 {
		t.Error("TiltFunc did not call through")
	}
}
