package jumper

import (
	"math"
	"testing"

	"github.com/vovakirdan/platform-jumper/internal/config"
	"github.com/vovakirdan/platform-jumper/internal/core"
)

func newTestGame(t *testing.T, seed int64, opts Options) *Game {
	t.Helper()
	cfg := config.DefaultJumperConfig()
	return New(cfg, cfg.Runtime(seed), opts)
}

// isolate replaces the generated platforms and holds off further spawns.
func isolate(g *Game, platforms ...Platform) {
	g.platforms.platforms = append(g.platforms.platforms[:0], platforms...)
	g.platforms.spawnCountdown = 1e9
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t, 42, Options{})
	s := g.Snapshot()

	if s.Phase != PhasePlaying {
		t.Errorf("Phase = %v, want playing", s.Phase)
	}
	if len(s.Platforms) != 1 || !s.Platforms[0].Sentinel() {
		t.Errorf("Platforms = %+v, want only the sentinel", s.Platforms)
	}
	if s.Score != 0 || s.Level != 0 || s.Tick != 0 {
		t.Errorf("score/level/tick = %d/%d/%d, want zeros", s.Score, s.Level, s.Tick)
	}
	if s.Player.X != 20 || s.Player.Y != 10 || s.Player.ChargesLeft() != 2 {
		t.Errorf("Player = %+v, want fresh at (20, 10)", s.Player)
	}
	if !g.Running() {
		t.Error("Running() = false for a new game")
	}
}

func TestLandingScoresOncePerPlatform(t *testing.T) {
	var landings []LandingEvent
	g := newTestGame(t, 1, Options{OnLanding: func(e LandingEvent) { landings = append(landings, e) }})
	isolate(g, Platform{ID: 7, X: 0, Y: 100, W: 144, H: 3})
	g.player.player.Y, g.player.player.LastY = 80, 80

	for i := 0; i < 40; i++ {
		g.Tick(testDT)
	}

	s := g.Snapshot()
	if s.Score != 1 {
		t.Errorf("Score = %d after resting on one platform, want 1", s.Score)
	}
	if s.Phase != PhasePlaying {
		t.Errorf("Phase = %v, want playing", s.Phase)
	}
	if len(landings) != 1 || landings[0].ID != 7 || !landings[0].Scored {
		t.Errorf("landings = %+v, want one scored landing on 7", landings)
	}
	if g.player.Player().LastLandedID != 7 {
		t.Errorf("LastLandedID = %d, want 7", g.player.Player().LastLandedID)
	}
}

func TestRelandingSamePlatformDoesNotScore(t *testing.T) {
	g := newTestGame(t, 1, Options{})
	isolate(g, Platform{ID: 3, X: 0, Y: 100, W: 144, H: 3})
	g.player.player.Y, g.player.player.LastY = 80, 80

	for i := 0; i < 10; i++ {
		g.Tick(testDT)
	}
	if g.Snapshot().Score != 1 {
		t.Fatalf("Score = %d after first landing, want 1", g.Snapshot().Score)
	}

	if !g.Jump() {
		t.Fatal("jump refused after landing")
	}
	for i := 0; i < 40; i++ {
		g.Tick(testDT)
	}
	if got := g.Snapshot().Score; got != 1 {
		t.Errorf("Score = %d after landing on the same platform again, want 1", got)
	}
}

func TestSentinelNeverScores(t *testing.T) {
	g := newTestGame(t, 1, Options{})
	isolate(g, Platform{ID: SentinelID, X: 0, Y: 100, W: 144, H: 3})

	for i := 0; i < 30; i++ {
		g.Tick(testDT)
	}
	if g.Snapshot().Score != 0 {
		t.Errorf("Score = %d from the sentinel, want 0", g.Snapshot().Score)
	}
	if g.Snapshot().Player.Y != 90 {
		t.Errorf("player not resting on the sentinel: Y = %v", g.Snapshot().Player.Y)
	}
}

func TestTenLandingsRaiseLevelAndSpeed(t *testing.T) {
	g := newTestGame(t, 1, Options{})
	curve := g.Config().SpeedCurve()

	for id := SequenceID(1); id <= 10; id++ {
		g.recordLanding(id)
	}

	s := g.Snapshot()
	if s.Score != 10 || s.Level != 1 {
		t.Fatalf("score/level = %d/%d, want 10/1", s.Score, s.Level)
	}
	if s.Speed != curve.Speed(1) {
		t.Errorf("Speed = %v, want %v", s.Speed, curve.Speed(1))
	}
	if d := s.Speed - curve.Speed(0); math.Abs(d-0.0072) > 1e-12 {
		t.Errorf("speed increase = %v, want 0.0072", d)
	}
}

func TestFallOutEndsGameAndFreezesPlayer(t *testing.T) {
	var transitions [][2]Phase
	g := newTestGame(t, 1, Options{OnPhaseChange: func(from, to Phase) {
		transitions = append(transitions, [2]Phase{from, to})
	}})
	isolate(g, Platform{ID: 3, X: 100, Y: 50, W: 20, H: 3})
	g.player.player.Y, g.player.player.LastY, g.player.player.VY = 160, 160, -1

	g.Tick(testDT)
	s := g.Snapshot()
	if s.Phase != PhaseGameOver {
		t.Fatalf("Phase = %v, want game over", s.Phase)
	}
	if s.Player.Y != 178 {
		t.Errorf("player Y = %v, want pinned at 178", s.Player.Y)
	}
	if len(transitions) != 1 || transitions[0] != [2]Phase{PhasePlaying, PhaseGameOver} {
		t.Errorf("transitions = %v", transitions)
	}

	if g.Jump() {
		t.Error("jump accepted in game over")
	}
	for i := 0; i < 5; i++ {
		g.Tick(testDT)
	}
	after := g.Snapshot()
	if after.Player != s.Player {
		t.Errorf("player moved in game over: %+v -> %+v", s.Player, after.Player)
	}
	if after.Platforms[0].X >= s.Platforms[0].X {
		t.Errorf("platforms stopped scrolling in game over: X %v -> %v", s.Platforms[0].X, after.Platforms[0].X)
	}
	if after.Tick != s.Tick+5 {
		t.Errorf("Tick = %d, want %d", after.Tick, s.Tick+5)
	}
	if len(transitions) != 1 {
		t.Errorf("game over re-entered: %v", transitions)
	}
}

func TestPauseFreezesState(t *testing.T) {
	g := newTestGame(t, 8, Options{})
	for i := 0; i < 5; i++ {
		g.Tick(testDT)
	}

	g.RequestPauseToggle()
	before := g.Snapshot()
	paused := g.Tick(testDT)
	if paused.Phase != PhasePaused {
		t.Fatalf("Phase = %v, want paused", paused.Phase)
	}
	before.Phase = PhasePaused
	if !paused.Equal(before) {
		t.Error("the pausing tick simulated")
	}
	if g.Running() {
		t.Error("Running() = true while paused")
	}
	if g.Jump() {
		t.Error("jump accepted while paused")
	}

	for i := 0; i < 10; i++ {
		if s := g.Tick(testDT); !s.Equal(paused) {
			t.Fatalf("paused tick %d changed state", i)
		}
	}

	g.RequestPauseToggle()
	if !g.Running() {
		t.Error("Running() = false with a resume pending")
	}
	resumed := g.Tick(testDT)
	if resumed.Phase != PhasePlaying {
		t.Errorf("Phase = %v, want playing", resumed.Phase)
	}
	if resumed.Tick != paused.Tick+1 {
		t.Errorf("resume tick did not simulate: Tick = %d, want %d", resumed.Tick, paused.Tick+1)
	}
}

func TestPauseIgnoredInGameOver(t *testing.T) {
	g := newTestGame(t, 2, Options{})
	g.setPhase(PhaseGameOver)

	g.RequestPauseToggle()
	g.Tick(testDT)
	if g.Phase() != PhaseGameOver {
		t.Errorf("Phase = %v, want game over", g.Phase())
	}
	if g.pauseRequested {
		t.Error("pause request not consumed")
	}
}

func TestResetIsDeferred(t *testing.T) {
	g := newTestGame(t, 4, Options{})
	for id := SequenceID(1); id <= 12; id++ {
		g.recordLanding(id)
	}
	for i := 0; i < 30; i++ {
		g.Tick(testDT)
	}
	maxID := SentinelID
	for _, p := range g.Snapshot().Platforms {
		maxID = max(maxID, p.ID)
	}

	g.RequestReset()
	if g.Snapshot().Score != 12 {
		t.Fatal("RequestReset changed state before the next tick")
	}

	s := g.Tick(testDT)
	if s.Score != 0 || s.Level != 0 {
		t.Errorf("score/level = %d/%d after reset, want 0/0", s.Score, s.Level)
	}
	if s.Phase != PhasePlaying || s.Tick != 1 {
		t.Errorf("phase/tick = %v/%d, want playing/1", s.Phase, s.Tick)
	}
	if !s.Platforms[0].Sentinel() {
		t.Error("first platform after reset is not the sentinel")
	}
	for _, p := range s.Platforms[1:] {
		if p.ID <= maxID {
			t.Errorf("platform id %d reused after reset (previous max %d)", p.ID, maxID)
		}
	}
}

func TestResetContents(t *testing.T) {
	g := newTestGame(t, 4, Options{})
	g.recordLanding(5)
	g.player.player.X, g.player.player.VX, g.player.player.JumpsTaken = 90, 0.2, 2
	g.setPhase(PhaseGameOver)
	g.pauseRequested = true

	g.reset()

	s := g.Snapshot()
	if s.Phase != PhasePlaying || s.Score != 0 || s.Level != 0 {
		t.Errorf("phase/score/level = %v/%d/%d", s.Phase, s.Score, s.Level)
	}
	if len(s.Platforms) != 1 || !s.Platforms[0].Sentinel() {
		t.Errorf("Platforms = %+v, want only the sentinel", s.Platforms)
	}
	p := g.player.Player()
	if p.X != 20 || p.Y != 10 || p.VX != 0 || p.VY != 0 || p.JumpsTaken != 0 || p.LastLandedID != SentinelID {
		t.Errorf("player not at start: %+v", p)
	}
	if g.pauseRequested {
		t.Error("reset kept a pending pause")
	}
}

func TestResetFromPausedResumes(t *testing.T) {
	g := newTestGame(t, 4, Options{})
	g.RequestPauseToggle()
	g.Tick(testDT)

	g.RequestReset()
	if !g.Running() {
		t.Fatal("Running() = false with a reset pending")
	}
	if s := g.Tick(testDT); s.Phase != PhasePlaying {
		t.Errorf("Phase = %v after reset, want playing", s.Phase)
	}
}

func TestApplyActions(t *testing.T) {
	tilt := NewKeyTilt(707.1)
	g := newTestGame(t, 6, Options{Tilt: tilt})

	g.Apply(core.ActionJump)
	if g.player.Player().JumpsTaken != 1 {
		t.Errorf("JumpsTaken = %d, want 1", g.player.Player().JumpsTaken)
	}
	g.Apply(core.ActionTiltRight)
	if tilt.Value() <= 0 {
		t.Errorf("tilt = %v after lean right", tilt.Value())
	}
	g.Apply(core.ActionTiltCenter)
	if tilt.Value() != 0 {
		t.Errorf("tilt = %v after center", tilt.Value())
	}
	g.Apply(core.ActionPause)
	g.Apply(core.ActionRestart)
	if !g.pauseRequested || !g.resetRequested {
		t.Error("pause/restart actions did not set request flags")
	}
	g.Apply(core.ActionQuit)
}

func TestSnapshotIsACopy(t *testing.T) {
	g := newTestGame(t, 3, Options{})
	s := g.Snapshot()
	x := s.Platforms[0].X

	g.Tick(testDT)
	if s.Platforms[0].X != x {
		t.Error("snapshot shares platform storage with the game")
	}
}

func TestSpawnedPlatformsStayReachable(t *testing.T) {
	g := newTestGame(t, 2024, Options{})
	hmax := g.Config().Physics.MaxJumpHeight()

	var prev *Platform
	seen := map[SequenceID]bool{}
	for i := 0; i < 3000; i++ {
		if i%9 == 0 {
			g.Jump()
		}
		s := g.Tick(testDT)
		for j := 1; j < len(s.Platforms); j++ {
			if s.Platforms[j].ID <= s.Platforms[j-1].ID {
				t.Fatalf("tick %d: ids out of order: %d after %d", i, s.Platforms[j].ID, s.Platforms[j-1].ID)
			}
		}
		for j, p := range s.Platforms {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			if j > 0 {
				prev = &s.Platforms[j-1]
			}
			if prev != nil && math.Abs(p.Y-prev.Y) > hmax+1e-6 {
				t.Fatalf("platform %d at Y=%v unreachable from %d at Y=%v", p.ID, p.Y, prev.ID, prev.Y)
			}
			if p.Y < 30 || p.Y >= 168 {
				t.Fatalf("platform %d at Y=%v outside the playfield", p.ID, p.Y)
			}
		}
		prev = nil
	}
	if len(seen) < 10 {
		t.Errorf("only %d platforms spawned over the run", len(seen))
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() []Snapshot {
		tilt := NewKeyTilt(707.1)
		g := newTestGame(t, 12345, Options{Tilt: tilt})
		var out []Snapshot
		for i := 0; i < 600; i++ {
			switch {
			case i%11 == 0:
				g.Apply(core.ActionJump)
			case i%17 == 0:
				g.Apply(core.ActionTiltRight)
			case i%23 == 0:
				g.Apply(core.ActionTiltLeft)
			case i == 300:
				g.Apply(core.ActionRestart)
			}
			out = append(out, g.Tick(testDT))
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("tick %d differs:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}
