package core

// RuntimeConfig contains the parameters a session is created with.
// Screen dimensions are in simulation pixels, not terminal cells.
type RuntimeConfig struct {
	ScreenW int     // Display surface width in pixels
	ScreenH int     // Display surface height in pixels
	TickMS  float64 // Fixed simulation step in milliseconds
	Seed    int64   // RNG seed for deterministic gameplay
}

