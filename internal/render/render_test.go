package render

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/engine"
	"github.com/vovakirdan/retromorph/internal/leaderboard"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newEngine() *engine.Engine {
	return engine.New(config.DefaultEngineConfig(), engine.WithSeed(3), engine.WithViewport(800, 480))
}

func draw(snap engine.Snapshot, hud HUD) *core.Screen {
	dst := core.NewScreen(80, 24)
	Draw(dst, snap, hud)
	return dst
}

func contains(s *core.Screen, text string) bool {
	return strings.Contains(s.String(), text)
}

func countRune(s *core.Screen, r rune) int {
	return strings.Count(s.String(), string(r))
}

func TestLayoutCentersCanvas(t *testing.T) {
	d := core.ResolveDimensions(800, 480)
	c := Layout(d, 80, 24, 0)
	if c.Cols != 77 || c.Rows != 23 {
		t.Fatalf("canvas cells = %dx%d, expected 77x23", c.Cols, c.Rows)
	}
	if c.OffsetX != 1 || c.OffsetY != 0 {
		t.Errorf("offset = %d,%d, expected 1,0", c.OffsetX, c.OffsetY)
	}
	if x, y := c.Cell(35, 40); x != 4 || y != 2 {
		t.Errorf("Cell(35, 40) = %d,%d, expected 4,2", x, y)
	}
}

func TestLayoutShake(t *testing.T) {
	d := core.ResolveDimensions(800, 480)
	still := Layout(d, 80, 24, 0)
	shaken := Layout(d, 80, 24, 12)
	if shaken.OffsetX == still.OffsetX {
		t.Errorf("shake 12 should move the canvas, offset stayed %d", still.OffsetX)
	}
}

func TestFillClipsToCanvas(t *testing.T) {
	dst := core.NewScreen(20, 10)
	c := Canvas{OffsetX: 2, OffsetY: 1, Cols: 5, Rows: 3}
	c.Fill(dst, core.NewRectF(-100, -100, 1000, 1000), '#', core.ColorDefault)

	if got := countRune(dst, '#'); got != 15 {
		t.Errorf("filled %d cells, expected 15", got)
	}
	if dst.Get(1, 1) == '#' || dst.Get(7, 1) == '#' {
		t.Error("fill leaked outside the canvas")
	}
}

func TestFillTinySprite(t *testing.T) {
	dst := core.NewScreen(10, 10)
	c := Canvas{Cols: 10, Rows: 10}
	c.Fill(dst, core.NewRectF(12, 22, 2, 2), '*', core.ColorDefault)
	if dst.Get(1, 1) != '*' {
		t.Error("a sub-cell sprite should still cover one cell")
	}
}

func TestDrawMenu(t *testing.T) {
	dst := draw(newEngine().Snapshot(), HUD{})
	if !contains(dst, "R E T R O M O R P H") {
		t.Errorf("menu overlay missing:\n%s", dst)
	}
	if !contains(dst, BrandingTxt) {
		t.Error("branding missing")
	}
}

func TestDrawPlayingSnake(t *testing.T) {
	e := newEngine()
	e.StartGame(t0)
	dst := draw(e.Snapshot(), HUD{})

	if countRune(dst, SnakeHead) == 0 || countRune(dst, SnakeBody) == 0 {
		t.Errorf("snake not drawn:\n%s", dst)
	}
	if countRune(dst, FoodChar) == 0 {
		t.Error("food not drawn")
	}
	if !contains(dst, "SNAKE  Score 0") {
		t.Error("HUD missing")
	}
	if contains(dst, "OFFLINE") {
		t.Error("offline badge shown while online")
	}
}

func TestDrawOfflineBadge(t *testing.T) {
	e := newEngine()
	e.StartGame(t0)
	dst := draw(e.Snapshot(), HUD{Offline: true, Pending: 2})
	if !contains(dst, "OFFLINE (2 queued)") {
		t.Errorf("offline badge missing:\n%s", dst)
	}
}

func TestDrawMorphWipe(t *testing.T) {
	e := newEngine()
	e.StartGame(t0)
	e.AwardPoints(150)
	e.Frame(t0.Add(750 * time.Millisecond))

	snap := e.Snapshot()
	if snap.Morph == nil {
		t.Fatal("expected a running morph")
	}
	dst := draw(snap, HUD{})
	if countRune(dst, '┊') == 0 {
		t.Errorf("wipe line missing:\n%s", dst)
	}
	if countRune(dst, BirdChar) == 0 && countRune(dst, SnakeHead) == 0 {
		t.Error("neither mode drawn during the morph")
	}
}

func TestDrawCat(t *testing.T) {
	e := newEngine()
	e.StartGame(t0)
	e.AwardPoints(300)
	now := t0
	for e.Snapshot().Morph != nil {
		now = now.Add(16 * time.Millisecond)
		e.Frame(now)
	}
	dst := draw(e.Snapshot(), HUD{})
	if countRune(dst, GroundChar) == 0 || countRune(dst, CatChar) == 0 {
		t.Errorf("cat scene missing:\n%s", dst)
	}
}

func TestDrawGameOverCountdown(t *testing.T) {
	snap := newEngine().Snapshot()
	snap.Phase = engine.PhaseGameOver
	snap.Score = 120
	snap.HighScore = 120
	snap.GameOverAt = t0
	snap.RestartReadyAt = t0.Add(3 * time.Second)

	dst := draw(snap, HUD{Now: t0.Add(500 * time.Millisecond), NewRecord: true})
	for _, want := range []string{"GAME OVER", "Score 120", "NEW RECORD!", "Restart in 3s"} {
		if !contains(dst, want) {
			t.Errorf("missing %q:\n%s", want, dst)
		}
	}

	dst = draw(snap, HUD{Now: t0.Add(4 * time.Second)})
	if !contains(dst, "R / SPACE  restart") {
		t.Errorf("restart hint missing after cooldown:\n%s", dst)
	}
}

// findText returns the cell where text starts.
func findText(s *core.Screen, text string) (int, int, bool) {
	for y := 0; y < s.Height(); y++ {
		row := s.Row(y)
		if i := strings.Index(row, text); i >= 0 {
			return utf8.RuneCountInString(row[:i]), y, true
		}
	}
	return 0, 0, false
}

func TestDrawGameOverStandings(t *testing.T) {
	snap := newEngine().Snapshot()
	snap.Phase = engine.PhaseGameOver
	snap.Score = 120

	standings := []leaderboard.Entry{
		{Name: "zed", Score: 500, Rank: 1},
		{Name: "ann", Score: 120, Rank: 2, Mine: true},
	}
	for i := 3; i <= 8; i++ {
		standings = append(standings, leaderboard.Entry{Name: fmt.Sprintf("p%d", i), Score: 10 - i, Rank: i})
	}
	dst := draw(snap, HUD{Now: t0, Standings: standings, Offline: true})

	for _, want := range []string{"LEADERBOARD", "#1  zed", "*#2  ann", "OFFLINE"} {
		if !contains(dst, want) {
			t.Errorf("missing %q:\n%s", want, dst)
		}
	}
	if contains(dst, "p6") {
		t.Errorf("only %d rows should be listed:\n%s", OverlayStandings, dst)
	}

	x, y, ok := findText(dst, "ann")
	if !ok {
		t.Fatal("ann row not drawn")
	}
	if col := dst.GetCell(x, y).Color; col != core.ColorBrightGreen {
		t.Errorf("own row color = %v, expected bright green", col)
	}
	x, y, _ = findText(dst, "zed")
	if col := dst.GetCell(x, y).Color; col != core.ColorWhite {
		t.Errorf("other row color = %v, expected white", col)
	}
}

func TestDrawGameOverWithoutStandings(t *testing.T) {
	snap := newEngine().Snapshot()
	snap.Phase = engine.PhaseGameOver
	if dst := draw(snap, HUD{Now: t0}); contains(dst, "LEADERBOARD") {
		t.Errorf("no leaderboard section expected:\n%s", dst)
	}
}

func TestDrawTooSmall(t *testing.T) {
	dst := draw(engine.Snapshot{}, HUD{})
	if !contains(dst, "Terminal too small") {
		t.Errorf("expected the too-small notice:\n%s", dst)
	}
}
