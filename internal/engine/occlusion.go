package engine

import "github.com/vovakirdan/retromorph/internal/core"

// Branding returns the reserved top-left rectangle in canvas pixels.
func (e *Engine) Branding() core.RectF {
	b := e.cfg.Branding
	g := e.dims.GridSize
	return core.NewRectF(0, 0, b.WidthCells*g, b.HeightCells*g)
}

// PlayerRect returns the active mode's sprite in canvas pixels.
func (e *Engine) PlayerRect() core.RectF {
	switch e.session.Mode {
	case ModeFlappy:
		return e.flappy.Sprite()
	case ModeCat:
		return e.cat.Sprite()
	default:
		head, ok := e.snake.Head()
		if !ok {
			return core.RectF{}
		}
		g := e.dims.GridSize
		return core.NewRectF(float64(head.X)*g, float64(head.Y)*g, g, g)
	}
}

func (e *Engine) updateOcclusion() {
	e.session.Occluded = e.PlayerRect().Intersects(e.Branding())
}
