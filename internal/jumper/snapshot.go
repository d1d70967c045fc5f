package jumper

// PlayerView is the renderable part of the player.
type PlayerView struct {
	X, Y       float64
	Radius     float64
	JumpsTaken int
	MaxJumps   int
}

// ChargesLeft returns how many jumps remain before the next landing.
func (p PlayerView) ChargesLeft() int {
	return max(p.MaxJumps-p.JumpsTaken, 0)
}

// Snapshot is an immutable copy of the game for renderers. It shares no
// memory with the running game.
type Snapshot struct {
	Player    PlayerView
	Platforms []Platform
	Score     int
	Level     int
	Speed     float64
	Phase     Phase
	Tick      uint64
	ScreenW   int
	ScreenH   int
}

// Equal reports whether two snapshots describe the same frame.
func (s Snapshot) Equal(o Snapshot) bool {
	if s.Player != o.Player || s.Score != o.Score || s.Level != o.Level ||
		s.Speed != o.Speed || s.Phase != o.Phase || s.Tick != o.Tick ||
		s.ScreenW != o.ScreenW || s.ScreenH != o.ScreenH {
		return false
	}
	if len(s.Platforms) != len(o.Platforms) {
		return false
	}
	for i := range s.Platforms {
		if s.Platforms[i] != o.Platforms[i] {
			return false
		}
	}
	return true
}
