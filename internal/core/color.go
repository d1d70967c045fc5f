package core

// Color is a semantic foreground color for a screen cell.
// The platform layer maps each value to a terminal style.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBall
	ColorPlatform
	ColorSentinel // the id-0 starting platform
	ColorHUD
	ColorCharge
	ColorOverlay
	ColorDanger
	ColorDim
)
