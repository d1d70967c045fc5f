package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/platform-jumper/internal/core"
	"github.com/vovakirdan/platform-jumper/internal/jumper"
)

func TestFitLayout(t *testing.T) {
	tests := []struct {
		name         string
		termW, termH int
		want         Layout
	}{
		{"exact half scale", 74, 46, Layout{Cols: 72, Rows: 42, PxPerCol: 2, PxPerRow: 4}},
		{"one pixel per column", 146, 88, Layout{Cols: 144, Rows: 84, PxPerCol: 1, PxPerRow: 2}},
		{"huge terminal keeps one pixel", 400, 300, Layout{Cols: 144, Rows: 84, PxPerCol: 1, PxPerRow: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitLayout(144, 168, tt.termW, tt.termH); got != tt.want {
				t.Errorf("FitLayout() = %+v, want %+v", got, tt.want)
			}
		})
	}

	l := FitLayout(144, 168, 80, 24)
	w, h := l.ScreenSize()
	if w > 80 || h+helpRows > 24 {
		t.Errorf("80x24 layout needs %dx%d plus help", w, h)
	}
}

func testSnapshot(phase jumper.Phase) jumper.Snapshot {
	return jumper.Snapshot{
		Player: jumper.PlayerView{X: 40, Y: 60, Radius: 10, JumpsTaken: 1, MaxJumps: 2},
		Platforms: []jumper.Platform{
			{ID: 0, X: -20, Y: 100, W: 144, H: 3},
			{ID: 4, X: 100, Y: 140, W: 30, H: 3},
		},
		Score:   7,
		Level:   0,
		Phase:   phase,
		ScreenW: 144,
		ScreenH: 168,
	}
}

func TestDrawFrame(t *testing.T) {
	l := FitLayout(144, 168, 74, 46) // 2 px per column, 4 per row
	s := core.NewScreen(l.ScreenSize())

	DrawFrame(s, testSnapshot(jumper.PhasePlaying), l, "")

	if hud := s.Row(0); !strings.Contains(hud, "SCORE 7") || !strings.Contains(hud, "●○") {
		t.Errorf("HUD = %q", hud)
	}

	field := l.Field()
	// Ball center (40, 60) -> column 20, row 15 inside the field.
	if got := s.GetCell(field.X+20, field.Y+15); got.Rune != '●' || got.Color != core.ColorBall {
		t.Errorf("ball cell = %+v", got)
	}

	// Sentinel clipped at the left border: starts in the first field column.
	if got := s.GetCell(field.X, field.Y+25); got.Rune != '═' || got.Color != core.ColorSentinel {
		t.Errorf("sentinel cell = %+v", got)
	}
	if got := s.GetCell(0, field.Y+25); got.Rune != '│' {
		t.Errorf("border overwritten by platform: %q", got.Rune)
	}

	// Platform 4 spans columns 50..64 on row 35.
	if got := s.GetCell(field.X+50, field.Y+35); got.Rune != '▬' || got.Color != core.ColorPlatform {
		t.Errorf("platform cell = %+v", got)
	}
	if got := s.GetCell(field.X+65, field.Y+35); got.Rune == '▬' {
		t.Error("platform drawn past its right edge")
	}

	if strings.Contains(s.String(), "PAUSED") || strings.Contains(s.String(), "GAME OVER") {
		t.Error("overlay drawn while playing")
	}
}

func TestDrawFrameOverlays(t *testing.T) {
	l := FitLayout(144, 168, 74, 46)
	s := core.NewScreen(l.ScreenSize())

	DrawFrame(s, testSnapshot(jumper.PhasePaused), l, "")
	if !strings.Contains(s.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}

	DrawFrame(s, testSnapshot(jumper.PhaseGameOver), l, "REPLAY 3/9")
	out := s.String()
	for _, want := range []string{"GAME OVER", "score 7  level 0", "press r to restart"} {
		if !strings.Contains(out, want) {
			t.Errorf("game over overlay missing %q", want)
		}
	}
	if !strings.Contains(s.Row(0), "REPLAY 3/9") {
		t.Errorf("status missing from HUD: %q", s.Row(0))
	}
}

func TestDrawFrameFallenBallIsClipped(t *testing.T) {
	l := FitLayout(144, 168, 74, 46)
	s := core.NewScreen(l.ScreenSize())
	snap := testSnapshot(jumper.PhaseGameOver)
	snap.Player.Y = 178

	DrawFrame(s, snap, l, "")

	_, h := l.ScreenSize()
	if strings.ContainsRune(s.Row(h-1), '●') {
		t.Error("ball drawn over the bottom border")
	}
}
