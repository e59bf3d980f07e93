package engine

import (
	"testing"
	"time"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/games/snake"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, cfg config.EngineConfig) *Engine {
	t.Helper()
	return New(cfg, WithSeed(7), WithViewport(800, 480))
}

func startedEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t, config.DefaultEngineConfig())
	e.StartGame(t0)
	return e
}

// killSnake runs frames until a human-played snake hits the right wall.
func killSnake(t *testing.T, e *Engine) (time.Time, []Event) {
	t.Helper()
	var events []Event
	now := t0
	for i := 0; i < 100; i++ {
		now = now.Add(150 * time.Millisecond)
		rep := e.Frame(now)
		events = append(events, rep.Events...)
		if e.Snapshot().Phase == PhaseGameOver {
			return now, events
		}
	}
	t.Fatal("snake never died")
	return now, nil
}

func TestModeForScore(t *testing.T) {
	tests := []struct {
		score int
		want  Mode
	}{
		{0, ModeSnake},
		{149, ModeSnake},
		{150, ModeFlappy},
		{299, ModeFlappy},
		{300, ModeCat},
		{449, ModeCat},
		{450, ModeSnake},
		{1060, ModeFlappy},
	}
	for _, tc := range tests {
		if got := ModeForScore(tc.score, 450, 150, 300); got != tc.want {
			t.Errorf("ModeForScore(%d) = %v, expected %v", tc.score, got, tc.want)
		}
	}

	for score := 0; score < 5000; score += 7 {
		pos := score % 450
		want := ModeCat
		if pos < 150 {
			want = ModeSnake
		} else if pos < 300 {
			want = ModeFlappy
		}
		if got := ModeForScore(score, 450, 150, 300); got != want {
			t.Fatalf("ModeForScore(%d) = %v, expected %v", score, got, want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Phase
		want     bool
	}{
		{PhaseMenu, PhasePlaying, true},
		{PhaseMenu, PhaseGameOver, false},
		{PhasePlaying, PhaseGameOver, true},
		{PhasePlaying, PhaseMenu, true},
		{PhaseGameOver, PhasePlaying, true},
		{PhaseGameOver, PhaseMenu, true},
		{PhaseGameOver, PhaseGameOver, false},
	}
	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%v, %v) = %v, expected %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestNewStartsInDemoMenu(t *testing.T) {
	e := newTestEngine(t, config.DefaultEngineConfig())
	snap := e.Snapshot()
	if snap.Phase != PhaseMenu || !snap.Autoplay {
		t.Errorf("new engine: phase %v autoplay %v, expected menu with autoplay", snap.Phase, snap.Autoplay)
	}
	if snap.Mode != ModeSnake || snap.Score != 0 {
		t.Errorf("new engine: mode %v score %d", snap.Mode, snap.Score)
	}
	if len(snap.Snake.Body) != 4 {
		t.Errorf("snake length = %d, expected 4", len(snap.Snake.Body))
	}
}

func TestMenuStartsOnJump(t *testing.T) {
	e := newTestEngine(t, config.DefaultEngineConfig())
	events := e.Handle(core.ActionJump, t0)

	snap := e.Snapshot()
	if snap.Phase != PhasePlaying || snap.Autoplay {
		t.Fatalf("after start: phase %v autoplay %v", snap.Phase, snap.Autoplay)
	}
	found := false
	for _, ev := range events {
		if pc, ok := ev.(PhaseChanged); ok && pc.From == PhaseMenu && pc.To == PhasePlaying {
			found = true
		}
	}
	if !found {
		t.Errorf("expected PhaseChanged menu -> playing, got %v", events)
	}
}

func TestMenuIgnoresSteering(t *testing.T) {
	e := newTestEngine(t, config.DefaultEngineConfig())
	e.Handle(core.ActionUp, t0)
	if q := e.Snapshot().Snake.Queue; len(q) != 0 {
		t.Errorf("menu accepted a turn: %v", q)
	}
}

func TestScoreThresholdStartsMorph(t *testing.T) {
	e := startedEngine(t)
	e.AwardPoints(140)
	if e.Snapshot().Mode != ModeSnake {
		t.Fatalf("140 points should stay in snake")
	}

	events := e.AwardPoints(15)
	snap := e.Snapshot()
	if snap.Mode != ModeFlappy {
		t.Fatalf("mode = %v, expected flappy", snap.Mode)
	}
	if snap.Morph == nil || snap.Morph.From != ModeSnake || snap.Morph.To != ModeFlappy {
		t.Fatalf("morph = %+v, expected snake -> flappy", snap.Morph)
	}
	if snap.Morph.Remaining != 1500*time.Millisecond {
		t.Errorf("morph remaining = %v, expected 1.5s", snap.Morph.Remaining)
	}

	var changed *ModeChanged
	for _, ev := range events {
		if mc, ok := ev.(ModeChanged); ok {
			changed = &mc
		}
	}
	if changed == nil || changed.From != ModeSnake || changed.To != ModeFlappy {
		t.Errorf("expected ModeChanged snake -> flappy, got %v", events)
	}
}

func TestAwardPointsIgnoresNonPositive(t *testing.T) {
	e := startedEngine(t)
	if events := e.AwardPoints(0); len(events) != 0 {
		t.Errorf("zero award emitted %v", events)
	}
	e.AwardPoints(-5)
	if e.Snapshot().Score != 0 {
		t.Errorf("score = %d, expected 0", e.Snapshot().Score)
	}
}

func TestLoopCountTracksScore(t *testing.T) {
	e := startedEngine(t)
	e.AwardPoints(460)
	snap := e.Snapshot()
	if snap.Loop != 1 || snap.Mode != ModeSnake {
		t.Errorf("loop %d mode %v, expected loop 1 in snake", snap.Loop, snap.Mode)
	}
}

func TestStalledFrameIsClamped(t *testing.T) {
	e := startedEngine(t)
	rep := e.Frame(t0.Add(5 * time.Second))
	if rep.Delta != 16*time.Millisecond {
		t.Errorf("delta = %v, expected the 16ms clamp", rep.Delta)
	}
	if rep.SnakeSteps != 0 {
		t.Errorf("snake steps = %d, expected 0 after a stall", rep.SnakeSteps)
	}
}

func TestSnakeCatchUpIsBounded(t *testing.T) {
	cfg := config.DefaultEngineConfig()
	cfg.Timing.StallThreshold = time.Hour
	e := newTestEngine(t, cfg)
	e.StartGame(t0)
	e.snake.SetFood(snake.Point{X: 0, Y: 0})
	before, _ := e.snake.Head()

	rep := e.Frame(t0.Add(5 * time.Second))
	if rep.SnakeSteps != 2 {
		t.Fatalf("snake steps = %d, expected 2", rep.SnakeSteps)
	}
	after, _ := e.snake.Head()
	if after.X-before.X != 2 {
		t.Errorf("head moved %d cells, expected 2", after.X-before.X)
	}
	if e.session.snakeAcc >= 150*time.Millisecond {
		t.Errorf("leftover %v not reduced modulo the interval", e.session.snakeAcc)
	}
}

func TestFrameCapSkipsLogic(t *testing.T) {
	e := startedEngine(t)
	rep := e.Frame(t0.Add(5 * time.Millisecond))
	if rep.Stepped {
		t.Fatal("5ms frame should be skipped")
	}
	rep = e.Frame(t0.Add(20 * time.Millisecond))
	if !rep.Stepped || rep.Delta != 20*time.Millisecond {
		t.Errorf("second frame: stepped %v delta %v, expected 20ms from the last processed frame", rep.Stepped, rep.Delta)
	}
}

func TestResyncAfterSuspend(t *testing.T) {
	e := startedEngine(t)
	resume := t0.Add(10 * time.Second)
	e.Resync(resume)
	rep := e.Frame(resume.Add(16 * time.Millisecond))
	if rep.Delta != 16*time.Millisecond {
		t.Errorf("delta after resync = %v, expected 16ms", rep.Delta)
	}
}

func TestMorphPausesPhysics(t *testing.T) {
	e := startedEngine(t)
	e.AwardPoints(150)
	birdY := e.Snapshot().Flappy.BirdY

	now := t0
	for i := 0; i < 10; i++ {
		now = now.Add(16 * time.Millisecond)
		e.Frame(now)
	}
	e.Handle(core.ActionJump, now)

	snap := e.Snapshot()
	if snap.Flappy.BirdY != birdY || snap.Flappy.Vel != 0 {
		t.Fatalf("bird moved during morph: y %v -> %v vel %v", birdY, snap.Flappy.BirdY, snap.Flappy.Vel)
	}
	if snap.Morph == nil || snap.Morph.Remaining != 1500*time.Millisecond-160*time.Millisecond {
		t.Fatalf("morph = %+v, expected 1340ms remaining", snap.Morph)
	}

	for e.Snapshot().Morph != nil {
		now = now.Add(16 * time.Millisecond)
		e.Frame(now)
	}
	now = now.Add(16 * time.Millisecond)
	e.Frame(now)
	if e.Snapshot().Flappy.BirdY == birdY {
		t.Error("bird should fall once the morph completes")
	}
}

func TestSnakeTurnsFromInput(t *testing.T) {
	e := startedEngine(t)
	e.Handle(core.ActionUp, t0)
	e.Handle(core.ActionDown, t0)

	q := e.Snapshot().Snake.Queue
	if len(q) != 1 || q[0] != snake.DirUp {
		t.Errorf("queue = %v, expected [up]", q)
	}
}

func TestHumanDeathEndsInGameOver(t *testing.T) {
	e := startedEngine(t)
	_, events := killSnake(t, e)

	var over *GameOver
	for _, ev := range events {
		if g, ok := ev.(GameOver); ok {
			over = &g
		}
	}
	if over == nil {
		t.Fatalf("expected a GameOver event, got %v", events)
	}
	snap := e.Snapshot()
	if over.Score != snap.Score || snap.HighScore < snap.Score {
		t.Errorf("game over %+v, snapshot score %d high %d", over, snap.Score, snap.HighScore)
	}
	if snap.Visuals.ScreenShake <= 0 {
		t.Error("death should shake the screen")
	}
	if rep := e.Frame(t0.Add(time.Hour)); rep.Stepped {
		t.Error("frames must not run in game over")
	}
}

func TestRestartCooldown(t *testing.T) {
	e := startedEngine(t)
	died, _ := killSnake(t, e)
	if got := e.Session().GameOverAt; !got.Equal(died) {
		t.Fatalf("GameOverAt = %v, expected %v", got, died)
	}
	if ready := e.Snapshot().RestartReadyAt; !ready.Equal(died.Add(3 * time.Second)) {
		t.Errorf("RestartReadyAt = %v", ready)
	}

	e.Handle(core.ActionRestart, died.Add(time.Second))
	if e.Snapshot().Phase != PhaseGameOver {
		t.Fatal("restart inside the cooldown should be ignored")
	}
	e.Tap(400, 200, died.Add(2*time.Second))
	if e.Snapshot().Phase != PhaseGameOver {
		t.Fatal("tap inside the cooldown should be ignored")
	}

	e.Handle(core.ActionRestart, died.Add(3*time.Second))
	snap := e.Snapshot()
	if snap.Phase != PhasePlaying || snap.Score != 0 || snap.Mode != ModeSnake {
		t.Errorf("after restart: phase %v score %d mode %v", snap.Phase, snap.Score, snap.Mode)
	}
}

func TestForceRestartBypassesCooldown(t *testing.T) {
	e := startedEngine(t)
	died, _ := killSnake(t, e)
	e.Handle(core.ActionForceRestart, died.Add(10*time.Millisecond))
	if e.Snapshot().Phase != PhasePlaying {
		t.Error("forced restart should start immediately")
	}
}

func TestBackFromGameOver(t *testing.T) {
	e := startedEngine(t)
	died, _ := killSnake(t, e)
	high := e.Snapshot().HighScore
	e.Handle(core.ActionBack, died)
	snap := e.Snapshot()
	if snap.Phase != PhaseMenu || !snap.Autoplay {
		t.Errorf("after back: phase %v autoplay %v", snap.Phase, snap.Autoplay)
	}
	if snap.HighScore != high {
		t.Errorf("high score lost: %d -> %d", high, snap.HighScore)
	}
}

func TestAutoplayDeathResetsToMenu(t *testing.T) {
	e := newTestEngine(t, config.DefaultEngineConfig())
	e.AwardPoints(20)

	// Head in the corner with every move blocked.
	body := []snake.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	d := e.Dimensions()
	e.snake.SetBody(d.Cols, d.Rows, body, snake.DirLeft)
	e.snake.SetFood(snake.Point{X: 10, Y: 10})

	var events []Event
	events = append(events, e.Frame(t0).Events...)
	events = append(events, e.Frame(t0.Add(150*time.Millisecond)).Events...)

	snap := e.Snapshot()
	if snap.Phase != PhaseMenu || !snap.Autoplay {
		t.Fatalf("phase %v autoplay %v, expected the demo to restart", snap.Phase, snap.Autoplay)
	}
	if snap.Score != 0 || snap.HighScore != 0 {
		t.Errorf("score %d high %d, expected a silent reset", snap.Score, snap.HighScore)
	}
	if len(snap.Snake.Body) != 4 {
		t.Errorf("snake length = %d, expected a fresh snake", len(snap.Snake.Body))
	}
	for _, ev := range events {
		if _, ok := ev.(GameOver); ok {
			t.Error("demo death must not emit GameOver")
		}
	}
}

func TestDemoSurvivesSnake(t *testing.T) {
	e := newTestEngine(t, config.DefaultEngineConfig())
	now := t0
	e.Frame(now)
	best := 0
	for i := 0; i < 200; i++ {
		now = now.Add(150 * time.Millisecond)
		e.Frame(now)
		snap := e.Snapshot()
		if snap.Phase != PhaseMenu {
			t.Fatalf("demo left the menu: %v", snap.Phase)
		}
		best = max(best, snap.Score)
	}
	if best == 0 {
		t.Error("autopilot never reached food in 200 steps")
	}
}

func TestCatTouchZones(t *testing.T) {
	e := startedEngine(t)
	e.AwardPoints(300)
	e.session.Morph = nil
	h := e.Dimensions().CanvasHeight

	e.Tap(100, h*0.9, t0)
	if !e.Snapshot().Cat.Ducking {
		t.Fatal("a tap near the bottom should duck")
	}
	e.Release(t0)
	if e.Snapshot().Cat.Ducking {
		t.Fatal("release should end the duck")
	}
	e.Tap(100, h*0.1, t0)
	if !e.Snapshot().Cat.Jumping {
		t.Error("a tap near the top should jump")
	}
}

func TestSnakeTapTurnsTowardTouch(t *testing.T) {
	e := startedEngine(t)
	head, _ := e.snake.Head()
	g := e.Dimensions().GridSize

	e.Tap((float64(head.X)+0.5)*g, (float64(head.Y)-3)*g, t0)
	q := e.Snapshot().Snake.Queue
	if len(q) != 1 || q[0] != snake.DirUp {
		t.Errorf("queue = %v, expected [up]", q)
	}
}

func TestOcclusion(t *testing.T) {
	e := startedEngine(t)
	d := e.Dimensions()

	e.snake.SetBody(d.Cols, d.Rows, []snake.Point{{X: 1, Y: 1}, {X: 0, Y: 1}}, snake.DirRight)
	e.updateOcclusion()
	if !e.session.Occluded {
		t.Error("head inside the branding area should occlude")
	}

	e.snake.SetBody(d.Cols, d.Rows, []snake.Point{{X: 15, Y: 10}, {X: 14, Y: 10}}, snake.DirRight)
	e.updateOcclusion()
	if e.session.Occluded {
		t.Error("head far from the branding area should not occlude")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	e := startedEngine(t)
	e.AwardPoints(150)
	snap := e.Snapshot()
	snap.Morph.Remaining = 0
	snap.Snake.Body[0] = snake.Point{X: -1, Y: -1}

	again := e.Snapshot()
	if again.Morph.Remaining == 0 {
		t.Error("snapshot morph aliases engine state")
	}
	if again.Snake.Body[0].X == -1 {
		t.Error("snapshot snake body aliases engine state")
	}
}

func TestResizeRescalesPlayField(t *testing.T) {
	e := startedEngine(t)
	e.Resize(390, 844)
	d := e.Dimensions()
	if d.GridSize != 26 {
		t.Fatalf("grid = %v, expected 26", d.GridSize)
	}
	for _, p := range e.Snapshot().Snake.Body {
		if p.X < 0 || p.X >= d.Cols || p.Y < 0 || p.Y >= d.Rows {
			t.Fatalf("segment %v outside %dx%d", p, d.Cols, d.Rows)
		}
	}
	if len(e.Snapshot().Snake.Body) == 0 {
		t.Error("snake should be rebuilt after an out-of-bounds resize")
	}
}

func TestSnakeIntervalHonorsMinTickUnderPresets(t *testing.T) {
	hardFactor := 1.3
	tests := []struct {
		preset config.DifficultyPreset
		score  int
		want   time.Duration
	}{
		{config.DifficultyNormal, 0, 150 * time.Millisecond},
		{config.DifficultyHard, 0, time.Duration(float64(150*time.Millisecond) / hardFactor)},
		{config.DifficultyHard, 100000, 70 * time.Millisecond},
		{config.DifficultyEasy, 100000, time.Duration(float64(70*time.Millisecond) / 0.7)},
	}
	for _, tt := range tests {
		cfg := config.DefaultEngineConfig()
		config.ApplyPreset(&cfg, tt.preset)
		e := newTestEngine(t, cfg)
		e.session.Score = tt.score
		if got := e.snakeInterval(); got != tt.want {
			t.Errorf("%s at score %d: interval = %v, expected %v", tt.preset, tt.score, got, tt.want)
		}
		if got := e.snakeInterval(); got < cfg.Snake.MinTick {
			t.Errorf("%s: interval %v below MinTick %v", tt.preset, got, cfg.Snake.MinTick)
		}
	}
}
