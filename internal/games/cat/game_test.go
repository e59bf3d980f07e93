package cat

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
)

var desktopDims = core.ResolveDimensions(800, 480)

func newTestGame(seed int64, loop int) *Game {
	cfg := config.DefaultEngineConfig().Cat
	g := New(cfg, rand.New(rand.NewSource(seed)))
	g.Reset(desktopDims, loop, 1.0)
	return g
}

func TestJumpOnlyFromGround(t *testing.T) {
	g := newTestGame(1, 0)
	if !g.Jump() {
		t.Fatal("first jump should start")
	}
	if g.Jump() {
		t.Error("jump while airborne should be ignored")
	}

	landed := false
	for range 100 {
		g.Step()
		if !g.Jumping() {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("cat should land")
	}
	if g.Sprite().Bottom() != g.GroundY() {
		t.Errorf("landed cat bottom = %v, ground = %v", g.Sprite().Bottom(), g.GroundY())
	}
}

func TestJumpHeightScalesWithCanvas(t *testing.T) {
	peak := func(d core.Dimensions) float64 {
		g := New(config.DefaultEngineConfig().Cat, rand.New(rand.NewSource(1)))
		g.Reset(d, 0, 1.0)
		g.Jump()
		best := 0.0
		for g.Jumping() {
			g.Step()
			best = min(best, g.y)
		}
		return -best / d.CanvasHeight
	}

	small := peak(core.ResolveDimensions(800, 480))
	large := peak(core.ResolveDimensions(1600, 1200))
	if diff := small - large; diff > 0.01 || diff < -0.01 {
		t.Errorf("relative jump height differs: %v vs %v", small, large)
	}
}

func TestDuckAndJumpExclusive(t *testing.T) {
	g := newTestGame(2, 0)
	g.SetDuck(true)
	if !g.Ducking() {
		t.Fatal("duck should hold on the ground")
	}
	g.Jump()
	if g.Ducking() {
		t.Error("jump start should clear the duck")
	}
	g.SetDuck(true)
	if g.Ducking() {
		t.Error("duck should be ignored while airborne")
	}
}

func TestDuckShrinksSprite(t *testing.T) {
	g := newTestGame(3, 0)
	standing := g.Sprite()
	g.SetDuck(true)
	ducked := g.Sprite()

	if ducked.H >= standing.H {
		t.Errorf("ducked height %v should be below standing %v", ducked.H, standing.H)
	}
	if ducked.Bottom() != standing.Bottom() {
		t.Error("ducking should keep the feet on the ground")
	}
}

func TestObstacleCollisions(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		duck bool
		dies bool
	}{
		{"standing cat hits cactus", KindCactus, false, true},
		{"ducking does not clear cactus", KindCactus, true, true},
		{"standing cat hits low bird", KindLowBird, false, true},
		{"ducking clears low bird", KindLowBird, true, false},
		{"standing cat clears high bird", KindHighBird, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGame(4, 0)
			g.SetDuck(tc.duck)
			g.AddObstacle(Obstacle{Kind: tc.kind, X: g.CatX() + g.Speed()})
			if res := g.Step(); res.Died != tc.dies {
				t.Errorf("Died = %v, expected %v", res.Died, tc.dies)
			}
		})
	}
}

func TestMercyBufferWhileAirborne(t *testing.T) {
	g := newTestGame(5, 0)
	g.Jump()
	g.Step()

	sprite := g.Sprite()
	hitbox := g.Hitbox()
	if want := sprite.H - 0.2*desktopDims.GridSize; hitbox.H != want {
		t.Errorf("airborne hitbox height = %v, expected %v", hitbox.H, want)
	}
	if hitbox.Y != sprite.Y {
		t.Error("mercy buffer should only raise the bottom edge")
	}
}

func TestPassingScores(t *testing.T) {
	g := newTestGame(6, 0)
	bird := Obstacle{Kind: KindHighBird}
	bird.X = g.CatX() - bird.Width(desktopDims.GridSize) // Right edge level with the cat
	g.AddObstacle(bird)
	res := g.Step()
	if res.Passed != 1 {
		t.Errorf("Passed = %d, expected 1", res.Passed)
	}
	if res2 := g.Step(); res2.Passed != 0 {
		t.Error("an obstacle scores only once")
	}
}

func TestDifficultyByLoop(t *testing.T) {
	tests := []struct {
		loop       int
		speed      float64
		spawnEvery int
	}{
		{0, 6, 85},
		{2, 7.5, 73},
		{7, 11.25, 45},
	}
	for _, tc := range tests {
		g := newTestGame(7, tc.loop)
		if g.Speed() != tc.speed || g.SpawnEvery() != tc.spawnEvery {
			t.Errorf("loop %d: speed %v spawn %d, expected %v %d",
				tc.loop, g.Speed(), g.SpawnEvery(), tc.speed, tc.spawnEvery)
		}
	}
}

func TestAutopilotDecisions(t *testing.T) {
	g := newTestGame(8, 0)
	g.AddObstacle(Obstacle{Kind: KindCactus, X: g.CatX() + 60})
	g.AddObstacle(Obstacle{Kind: KindLowBird, X: g.CatX() + 100})

	d := g.Autopilot()
	if !d.Jump || d.Duck {
		t.Errorf("jump should take precedence over duck, got %+v", d)
	}

	g = newTestGame(9, 0)
	g.AddObstacle(Obstacle{Kind: KindLowBird, X: g.CatX() + 300})
	if d := g.Autopilot(); !d.Duck || d.Jump {
		t.Errorf("bird inside the window should duck, got %+v", d)
	}

	g = newTestGame(10, 0)
	g.AddObstacle(Obstacle{Kind: KindCactus, X: g.CatX() + 390})
	if d := g.Autopilot(); d.Jump {
		t.Error("cactus beyond the lead distance should not trigger a jump")
	}
}

func TestAutopilotSurvives(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(seed, 0)
		passed := 0
		for frame := 0; frame < 3000; frame++ {
			g.Apply(g.Autopilot())
			res := g.Step()
			passed += res.Passed
			if res.Died {
				t.Fatalf("seed %d: autopilot died at frame %d after %d obstacles", seed, frame, passed)
			}
		}
		if passed < 20 {
			t.Errorf("seed %d: only %d obstacles passed", seed, passed)
		}
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	g := newTestGame(11, 0)
	g.AddObstacle(Obstacle{Kind: KindCactus, X: 300})
	snap := g.Snapshot()
	snap.Obstacles[0].X = -1

	if g.obstacles[0].X == -1 {
		t.Error("mutating the snapshot must not affect the game")
	}
}
