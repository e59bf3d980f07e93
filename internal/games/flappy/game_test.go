package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
)

// desktopDims is an 80x24 terminal converted to virtual pixels.
var desktopDims = core.ResolveDimensions(800, 480)

func newTestGame(seed int64, loop int) *Game {
	g := New(config.DefaultEngineConfig().Flappy, rand.New(rand.NewSource(seed)))
	g.Reset(desktopDims, loop, 1.0)
	return g
}

func TestResetCentersBird(t *testing.T) {
	g := newTestGame(1, 0)
	snap := g.Snapshot()

	if want := desktopDims.CanvasHeight/2 - snap.BirdSize/2; snap.BirdY != want {
		t.Errorf("BirdY = %v, expected %v", snap.BirdY, want)
	}
	if snap.BirdX != 0.2*desktopDims.CanvasWidth {
		t.Errorf("BirdX = %v, expected 20%% of width", snap.BirdX)
	}
	if len(snap.Pipes) != 0 || snap.Vel != 0 {
		t.Errorf("reset should clear pipes and velocity, got %+v", snap)
	}
}

func TestFlapHasNoCooldown(t *testing.T) {
	g := newTestGame(2, 0)
	g.Flap()
	g.Flap()
	if g.Snapshot().Vel != -15.2 {
		t.Errorf("Vel = %v, expected -15.2", g.Snapshot().Vel)
	}
	g.Step()
	g.Flap()
	if g.Snapshot().Vel != -15.2 {
		t.Errorf("flap after a step should reset velocity, got %v", g.Snapshot().Vel)
	}
}

func TestGravityCapsFallSpeed(t *testing.T) {
	g := newTestGame(3, 0)
	g.SetBird(0, 0)
	for range 20 {
		g.Step()
	}
	if v := g.Snapshot().Vel; v != 11 {
		t.Errorf("Vel = %v, expected cap 11", v)
	}
}

func TestLeavingCanvasDies(t *testing.T) {
	g := newTestGame(4, 0)
	g.SetBird(desktopDims.CanvasHeight-g.BirdSize()-1, 5)
	if res := g.Step(); !res.Died {
		t.Error("falling through the floor should die")
	}

	g = newTestGame(5, 0)
	g.SetBird(1, -10)
	if res := g.Step(); !res.Died {
		t.Error("flying above the canvas should die")
	}
}

func TestPipeCollision(t *testing.T) {
	g := newTestGame(6, 0)
	bird := g.Sprite()
	// Pipe overlapping the bird with the gap well below it.
	g.AddPipe(Pipe{X: bird.X, GapY: bird.Bottom() + 50, GapSize: 100})

	if res := g.Step(); !res.Died {
		t.Error("bird inside the top section should die")
	}
}

func TestHitboxInsetForgivesGrazes(t *testing.T) {
	g := newTestGame(7, 0)
	bird := g.Sprite()
	// Gap top sits 2px into the sprite: within the 4px inset.
	g.SetBird(bird.Y, -g.cfg.Gravity)
	g.AddPipe(Pipe{X: bird.X + g.speed, GapY: bird.Y + 2, GapSize: bird.H + 40})

	if res := g.Step(); res.Died {
		t.Error("graze inside the hitbox inset should not die")
	}
}

func TestPipesSpawnAndScore(t *testing.T) {
	g := newTestGame(8, 0)
	passed := 0
	for range 600 {
		// Keep the bird fixed mid-canvas to isolate pipe logic.
		g.SetBird(desktopDims.CanvasHeight/2, -g.cfg.Gravity)
		res := g.Step()
		passed += res.Passed
	}
	if g.frames != 600 {
		t.Fatalf("frames = %d", g.frames)
	}
	if passed == 0 {
		t.Error("pipes should spawn and be passed")
	}
	for _, p := range g.Snapshot().Pipes {
		if p.GapSize != g.GapSize() {
			t.Errorf("gap size %v, expected %v", p.GapSize, g.GapSize())
		}
		if p.GapY < 0 || p.GapBottom() > desktopDims.CanvasHeight {
			t.Errorf("gap out of canvas: %+v", p)
		}
	}
}

func TestDifficultyByLoop(t *testing.T) {
	tests := []struct {
		loop       int
		speed      float64
		spawnEvery int
		gapFrac    float64
	}{
		{0, 4, 95, 0.36},
		{1, 4.6, 87, 0.34},
		{5, 7, 55, 0.26},
		{9, 9.4, 55, 0.26},
	}

	for _, tc := range tests {
		g := newTestGame(9, tc.loop)
		if diff := g.Speed() - tc.speed; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("loop %d: speed = %v, expected %v", tc.loop, g.Speed(), tc.speed)
		}
		if g.SpawnEvery() != tc.spawnEvery {
			t.Errorf("loop %d: spawnEvery = %d, expected %d", tc.loop, g.SpawnEvery(), tc.spawnEvery)
		}
		want := max(3*desktopDims.GridSize, tc.gapFrac*desktopDims.CanvasHeight)
		if diff := g.GapSize() - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("loop %d: gap = %v, expected %v", tc.loop, g.GapSize(), want)
		}
	}
}

func TestAutopilotFlapsNearGapFloor(t *testing.T) {
	g := newTestGame(10, 0)
	size := g.BirdSize()
	g.AddPipe(Pipe{X: g.BirdX() + 100, GapY: 100, GapSize: 150})

	g.SetBird(250-size+4, 5) // hitbox bottom on the gap floor, falling
	if !g.Autopilot() {
		t.Error("should flap when about to cross the gap floor")
	}

	g.SetBird(100, -10) // high in the gap and rising
	if g.Autopilot() {
		t.Error("should not flap while rising near the ceiling")
	}
}

func TestAutopilotSurvives(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(seed, 0)
		passed := 0
		for frame := 0; frame < 3000; frame++ {
			if g.Autopilot() {
				g.Flap()
			}
			res := g.Step()
			passed += res.Passed
			if res.Died {
				t.Fatalf("seed %d: autopilot died at frame %d after %d pipes", seed, frame, passed)
			}
		}
		if passed < 20 {
			t.Errorf("seed %d: only %d pipes passed", seed, passed)
		}
	}
}

func TestResizeScalesPositions(t *testing.T) {
	g := newTestGame(11, 0)
	g.AddPipe(Pipe{X: 400, GapY: 100, GapSize: 150})
	before := g.Snapshot()

	bigger := core.ResolveDimensions(1600, 960)
	g.Resize(bigger)
	after := g.Snapshot()

	sy := bigger.CanvasHeight / desktopDims.CanvasHeight
	if diff := after.BirdY - before.BirdY*sy; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("BirdY = %v, expected %v", after.BirdY, before.BirdY*sy)
	}
	if after.Pipes[0].X <= before.Pipes[0].X {
		t.Error("pipe x should scale up with the canvas")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	g := newTestGame(12, 0)
	g.AddPipe(Pipe{X: 400, GapY: 100, GapSize: 150})
	snap := g.Snapshot()
	snap.Pipes[0].X = -1

	if g.pipes[0].X == -1 {
		t.Error("mutating the snapshot must not affect the game")
	}
}
