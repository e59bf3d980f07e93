package render

import (
	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/engine"
	"github.com/vovakirdan/retromorph/internal/games/cat"
)

func drawSnake(dst *core.Screen, c Canvas, snap engine.Snapshot, tint core.Color) {
	g := snap.Dims.GridSize
	s := snap.Snake
	cellRect := func(x, y int) core.RectF {
		return core.NewRectF(float64(x)*g, float64(y)*g, g, g)
	}

	if lf := snap.Visuals.LastFood; lf != nil && snap.Visuals.ImpactPulse > 0 {
		c.Fill(dst, cellRect(lf.X, lf.Y).Inset(-g*snap.Visuals.ImpactPulse/2), PulseChar, tinted(core.ColorBrightYellow, tint))
	}
	if s.HasFood {
		c.Fill(dst, cellRect(s.Food.X, s.Food.Y).Inset(g/4), FoodChar, tinted(core.ColorBrightRed, tint))
	}
	for i := len(s.Body) - 1; i >= 0; i-- {
		p := s.Body[i]
		ch, col := SnakeBody, core.ColorGreen
		if i == 0 {
			ch, col = SnakeHead, core.ColorBrightGreen
		}
		c.Fill(dst, cellRect(p.X, p.Y), ch, tinted(col, tint))
	}
}

func drawFlappy(dst *core.Screen, c Canvas, snap engine.Snapshot, tint core.Color) {
	f := snap.Flappy
	for _, p := range f.Pipes {
		top, bottom := p.Rects(f.PipeWidth, f.Height)
		c.Fill(dst, top, PipeChar, tinted(core.ColorGreen, tint))
		c.Fill(dst, bottom, PipeChar, tinted(core.ColorGreen, tint))
	}
	bird := core.NewRectF(f.BirdX, f.BirdY, f.BirdSize, f.BirdSize)
	c.Fill(dst, bird, BirdChar, tinted(core.ColorBrightYellow, tint))
}

func drawCat(dst *core.Screen, c Canvas, snap engine.Snapshot, tint core.Color) {
	k := snap.Cat
	_, gy := c.Cell(0, k.GroundY)
	dst.DrawHLine(c.OffsetX, min(gy, c.OffsetY+c.Rows-1), c.Cols, GroundChar, tinted(core.ColorGray, tint))

	for i, o := range k.Obstacles {
		if i >= len(k.Rects) {
			break
		}
		ch, col := CactusChar, core.ColorGreen
		if o.Kind != cat.KindCactus {
			ch, col = FlyerChar, core.ColorMagenta
		}
		c.Fill(dst, k.Rects[i], ch, tinted(col, tint))
	}
	c.Fill(dst, k.Cat, CatChar, tinted(core.ColorOrange, tint))
}
