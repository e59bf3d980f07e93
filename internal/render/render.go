// Package render draws published engine snapshots into a core.Screen.
// It never mutates engine state: everything it needs arrives in a Snapshot
// and a HUD value, and every frame is drawn from scratch.
package render

import (
	"math"
	"time"

	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/engine"
	"github.com/vovakirdan/retromorph/internal/leaderboard"
)

// Glyphs used by the play field.
const (
	SnakeHead   = '█'
	SnakeBody   = '▓'
	FoodChar    = '◆'
	PulseChar   = '░'
	BirdChar    = '@'
	PipeChar    = '█'
	CatChar     = '▆'
	CactusChar  = '▓'
	FlyerChar   = '~'
	GroundChar  = '═'
	BrandingTxt = "RETROMORPH"
)

// OverlayStandings is how many leaderboard rows the game over box lists.
const OverlayStandings = 5

// HUD carries host-side information that is not part of the engine session.
type HUD struct {
	Now       time.Time
	Username  string
	Offline   bool
	Pending   int  // Submissions waiting for connectivity
	NewRecord bool // Set on the game over that beat the high score

	// Standings are the global leaderboard rows, best first.
	Standings []leaderboard.Entry
}

// Canvas maps canvas pixels onto screen cells.
type Canvas struct {
	OffsetX int
	OffsetY int
	Cols    int
	Rows    int
}

// Layout centers the canvas of d on a screen of the given size. The shake
// amount nudges the whole field horizontally.
func Layout(d core.Dimensions, screenW, screenH int, shake float64) Canvas {
	cols := int(math.Ceil(d.CanvasWidth / core.CellPixelsX))
	rows := int(math.Ceil(d.CanvasHeight / core.CellPixelsY))
	c := Canvas{
		OffsetX: (screenW - cols) / 2,
		OffsetY: (screenH - rows) / 2,
		Cols:    cols,
		Rows:    rows,
	}
	if shake >= 1 {
		c.OffsetX += int(shake)%3 - 1
	}
	return c
}

// Cell converts a canvas pixel position to a screen cell.
func (c Canvas) Cell(px, py float64) (int, int) {
	return c.OffsetX + int(math.Floor(px/core.CellPixelsX)), c.OffsetY + int(math.Floor(py/core.CellPixelsY))
}

// Fill paints every cell touched by r. Rects thinner than a cell still get
// one column or row so small sprites stay visible.
func (c Canvas) Fill(dst *core.Screen, r core.RectF, ch rune, col core.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	x0, y0 := c.Cell(r.X, r.Y)
	x1 := c.OffsetX + int(math.Ceil(r.Right()/core.CellPixelsX))
	y1 := c.OffsetY + int(math.Ceil(r.Bottom()/core.CellPixelsY))
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)
	minX, maxX := c.OffsetX, c.OffsetX+c.Cols
	minY, maxY := c.OffsetY, c.OffsetY+c.Rows
	for y := max(y0, minY); y < min(y1, maxY); y++ {
		for x := max(x0, minX); x < min(x1, maxX); x++ {
			dst.SetColored(x, y, ch, col)
		}
	}
}

// Draw renders a full frame.
func Draw(dst *core.Screen, snap engine.Snapshot, hud HUD) {
	dst.Clear()
	if snap.Dims.Empty() {
		drawTooSmall(dst)
		return
	}

	c := Layout(snap.Dims, dst.Width(), dst.Height(), snap.Visuals.ScreenShake)
	drawFrame(dst, c)

	if m := snap.Morph; m != nil {
		drawMorph(dst, c, snap, *m)
	} else {
		drawMode(dst, c, snap, snap.Mode, core.ColorDefault)
	}

	drawBranding(dst, c, snap)
	drawHUD(dst, c, snap, hud)

	switch snap.Phase {
	case engine.PhaseMenu:
		drawMenu(dst, snap)
	case engine.PhaseGameOver:
		drawGameOver(dst, snap, hud)
	}
}

func drawMode(dst *core.Screen, c Canvas, snap engine.Snapshot, m engine.Mode, tint core.Color) {
	switch m {
	case engine.ModeSnake:
		drawSnake(dst, c, snap, tint)
	case engine.ModeFlappy:
		drawFlappy(dst, c, snap, tint)
	case engine.ModeCat:
		drawCat(dst, c, snap, tint)
	}
}

// drawMorph wipes from the outgoing mode to the incoming one, left to right.
func drawMorph(dst *core.Screen, c Canvas, snap engine.Snapshot, m engine.Morph) {
	split := c.OffsetX + int(float64(c.Cols)*m.Progress())

	from := core.NewScreen(dst.Width(), dst.Height())
	drawMode(from, c, snap, m.From, core.ColorDim)
	to := core.NewScreen(dst.Width(), dst.Height())
	drawMode(to, c, snap, m.To, core.ColorDefault)

	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			src := from
			if x < split {
				src = to
			}
			if cell := src.GetCell(x, y); cell.Rune != ' ' {
				dst.SetColored(x, y, cell.Rune, cell.Color)
			}
		}
	}
	if split >= c.OffsetX && split < c.OffsetX+c.Cols {
		dst.DrawVLine(split, c.OffsetY, c.Rows, '┊', core.ColorBrightCyan)
	}
}

// drawFrame outlines the canvas when the screen has room around it.
func drawFrame(dst *core.Screen, c Canvas) {
	if c.OffsetX < 1 || c.OffsetY < 1 || c.OffsetX+c.Cols >= dst.Width() || c.OffsetY+c.Rows >= dst.Height() {
		return
	}
	dst.DrawBox(core.NewRect(c.OffsetX-1, c.OffsetY-1, c.Cols+2, c.Rows+2), core.ColorGray)
}

func drawTooSmall(dst *core.Screen) {
	dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorYellow)
}

// tinted returns base unless a tint overrides it.
func tinted(base, tint core.Color) core.Color {
	if tint != core.ColorDefault {
		return tint
	}
	return base
}
