package cat

import "github.com/vovakirdan/retromorph/internal/core"

// Snapshot is a deep copy of the Cat sub-state.
type Snapshot struct {
	Cat       core.RectF
	Jumping   bool
	Ducking   bool
	Obstacles []Obstacle
	Rects     []core.RectF // Obstacle hitboxes, parallel to Obstacles
	GroundY   float64
	Width     float64
	Height    float64
	Speed     float64
	Frames    int
}

// Snapshot returns a copy that shares no memory with the game.
func (g *Game) Snapshot() Snapshot {
	rects := make([]core.RectF, len(g.obstacles))
	for i, o := range g.obstacles {
		rects[i] = o.Rect(g.grid, g.groundY)
	}
	return Snapshot{
		Cat:       g.Sprite(),
		Jumping:   g.jumping,
		Ducking:   g.ducking,
		Obstacles: append([]Obstacle(nil), g.obstacles...),
		Rects:     rects,
		GroundY:   g.groundY,
		Width:     g.width,
		Height:    g.height,
		Speed:     g.speed,
		Frames:    g.frames,
	}
}
