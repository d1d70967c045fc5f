package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/platform-jumper/internal/core"
	"github.com/vovakirdan/platform-jumper/internal/jumper"
)

const (
	hudRows    = 1
	helpRows   = 1
	borderSize = 1
)

// Layout maps the simulation surface onto terminal cells. Cells are about
// twice as tall as they are wide, so a row covers twice the pixels of a
// column.
type Layout struct {
	Cols, Rows int // playfield size in cells
	PxPerCol   float64
	PxPerRow   float64
}

// FitLayout picks the finest scale at which a screenW x screenH pixel
// surface fits a termW x termH terminal next to the HUD and help line.
// One column never covers less than one pixel.
func FitLayout(screenW, screenH, termW, termH int) Layout {
	availW := max(termW-2*borderSize, 1)
	availH := max(termH-hudRows-helpRows-2*borderSize, 1)

	px := max(
		float64(screenW)/float64(availW),
		float64(screenH)/float64(2*availH),
		1,
	)
	l := Layout{PxPerCol: px, PxPerRow: 2 * px}
	l.Cols = int(math.Ceil(float64(screenW) / l.PxPerCol))
	l.Rows = int(math.Ceil(float64(screenH) / l.PxPerRow))
	return l
}

// ScreenSize returns the buffer size needed to draw a frame.
func (l Layout) ScreenSize() (w, h int) {
	return l.Cols + 2*borderSize, l.Rows + hudRows + 2*borderSize
}

// Field returns the playfield area inside the border.
func (l Layout) Field() core.Rect {
	return core.NewRect(borderSize, hudRows+borderSize, l.Cols, l.Rows)
}

// cell converts a pixel position to the screen cell that shows it.
func (l Layout) cell(x, y float64) (int, int) {
	f := l.Field()
	return f.X + int(math.Floor(x/l.PxPerCol)), f.Y + int(math.Floor(y/l.PxPerRow))
}

// DrawFrame renders snap into s. status, when set, is shown at the right
// of the HUD line.
func DrawFrame(s *core.Screen, snap jumper.Snapshot, l Layout, status string) {
	s.Clear()
	field := l.Field()

	drawHUD(s, snap, status)
	s.DrawBox(core.NewRect(0, hudRows, field.W+2*borderSize, field.H+2*borderSize), core.ColorDim)

	for _, p := range snap.Platforms {
		r := p.Rect().Scale(l.PxPerCol, l.PxPerRow)
		r.X += field.X
		r.Y += field.Y
		r.H = 1 // platforms are thinner than a row
		ch, c := '▬', core.ColorPlatform
		if p.Sentinel() {
			ch, c = '═', core.ColorSentinel
		}
		fillClipped(s, r, field, ch, c)
	}

	drawBall(s, snap.Player, l)

	switch snap.Phase {
	case jumper.PhasePaused:
		drawOverlay(s, field, core.ColorOverlay, "PAUSED", "press p to resume")
	case jumper.PhaseGameOver:
		drawOverlay(s, field, core.ColorDanger, "GAME OVER",
			fmt.Sprintf("score %d  level %d", snap.Score, snap.Level),
			"press r to restart")
	}
}

func drawHUD(s *core.Screen, snap jumper.Snapshot, status string) {
	left := fmt.Sprintf(" SCORE %d  LVL %d  ", snap.Score, snap.Level)
	s.DrawTextColored(0, 0, left, core.ColorHUD)

	charges := snap.Player.ChargesLeft()
	used := max(snap.Player.MaxJumps-charges, 0)
	s.DrawTextColored(len(left), 0, strings.Repeat("●", charges), core.ColorCharge)
	s.DrawTextColored(len(left)+charges, 0, strings.Repeat("○", used), core.ColorDim)

	if status != "" {
		x := s.Width() - len([]rune(status)) - 1
		s.DrawTextColored(x, 0, status, core.ColorDim)
	}
}

// drawBall fills every cell whose center lies inside the ball, and always
// the cell under its center.
func drawBall(s *core.Screen, p jumper.PlayerView, l Layout) {
	field := l.Field()
	cx, cy := l.cell(p.X, p.Y)

	x0, y0 := l.cell(p.X-p.Radius, p.Y-p.Radius)
	x1, y1 := l.cell(p.X+p.Radius, p.Y+p.Radius)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x-field.X) + 0.5) * l.PxPerCol
			py := (float64(y-field.Y) + 0.5) * l.PxPerRow
			if math.Hypot(px-p.X, py-p.Y) <= p.Radius && field.Contains(x, y) {
				s.SetColored(x, y, '●', core.ColorBall)
			}
		}
	}
	if field.Contains(cx, cy) {
		s.SetColored(cx, cy, '●', core.ColorBall)
	}
}

func drawOverlay(s *core.Screen, field core.Rect, c core.Color, title string, lines ...string) {
	y := field.Y + field.H/2 - (len(lines)+1)/2
	drawCentered(s, field, y, title, c)
	for i, line := range lines {
		drawCentered(s, field, y+1+i, line, core.ColorDim)
	}
}

func drawCentered(s *core.Screen, field core.Rect, y int, text string, c core.Color) {
	x := field.X + (field.W-len([]rune(text)))/2
	s.DrawTextColored(max(x, field.X), y, text, c)
}

// fillClipped fills the part of r that lies inside clip.
func fillClipped(s *core.Screen, r, clip core.Rect, ch rune, c core.Color) {
	if !r.Intersects(clip) {
		return
	}
	x0, x1 := max(r.X, clip.X), min(r.Right(), clip.Right())
	y0, y1 := max(r.Y, clip.Y), min(r.Bottom(), clip.Bottom())
	s.DrawRect(core.NewRect(x0, y0, x1-x0, y1-y0), ch, c)
}
