package flappy

import "github.com/vovakirdan/retromorph/internal/core"

// Pipe is a vertical obstacle with a gap for the bird to pass through.
type Pipe struct {
	X       float64 // Left edge
	GapY    float64 // Top of the gap
	GapSize float64 // Height of the gap
	Passed  bool    // Already scored
}

// GapBottom returns the y of the gap's lower edge.
func (p Pipe) GapBottom() float64 {
	return p.GapY + p.GapSize
}

// Rects returns the solid top and bottom sections of the pipe.
func (p Pipe) Rects(width, canvasH float64) (top, bottom core.RectF) {
	top = core.NewRectF(p.X, 0, width, p.GapY)
	bottom = core.NewRectF(p.X, p.GapBottom(), width, canvasH-p.GapBottom())
	return top, bottom
}

// nextPipe returns the first pipe whose right edge has not passed x.
func (g *Game) nextPipe(x float64) (Pipe, bool) {
	w := g.PipeWidth()
	for _, p := range g.pipes {
		if p.X+w >= x {
			return p, true
		}
	}
	return Pipe{}, false
}
