// Package flappy implements the Flappy sub-game: a bird under continuous
// gravity that must pass through gaps in scrolling pipes.
// All positions are canvas pixels; one Step is one processed frame.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
)

// StepResult reports what one physics frame did.
type StepResult struct {
	Passed int  // Pipes cleared this frame
	Died   bool // Left the canvas or hit a pipe
}

// Game holds the Flappy sub-state.
type Game struct {
	cfg config.FlappyConfig
	rng *rand.Rand

	width  float64
	height float64
	grid   float64

	birdY float64 // Top of the bird sprite
	vel   float64 // Positive is down

	pipes      []Pipe
	frames     int
	speed      float64
	spawnEvery int
	loop       int
}

// New creates an empty Flappy sub-state. Call Reset before stepping.
func New(cfg config.FlappyConfig, rng *rand.Rand) *Game {
	return &Game{cfg: cfg, rng: rng}
}

// Reset puts the bird in the vertical middle with no pipes and applies
// loop-count difficulty. speedFactor scales the pipe speed.
func (g *Game) Reset(d core.Dimensions, loop int, speedFactor float64) {
	g.width = d.CanvasWidth
	g.height = d.CanvasHeight
	g.grid = d.GridSize
	g.loop = loop

	g.birdY = g.height/2 - g.BirdSize()/2
	g.vel = 0
	g.pipes = g.pipes[:0]
	g.frames = 0
	g.speed = (g.cfg.SpeedBase + g.cfg.SpeedPerLoop*float64(loop)) * speedFactor
	g.spawnEvery = max(g.cfg.SpawnMin, g.cfg.SpawnBase-g.cfg.SpawnPerLoop*loop)
}

// Resize rescales positions proportionally to the new canvas.
func (g *Game) Resize(d core.Dimensions) {
	if g.width <= 0 || g.height <= 0 {
		g.width, g.height, g.grid = d.CanvasWidth, d.CanvasHeight, d.GridSize
		g.birdY = g.height/2 - g.BirdSize()/2
		return
	}
	sx := d.CanvasWidth / g.width
	sy := d.CanvasHeight / g.height
	g.width, g.height, g.grid = d.CanvasWidth, d.CanvasHeight, d.GridSize
	g.birdY *= sy
	g.vel *= sy
	for i := range g.pipes {
		g.pipes[i].X *= sx
		g.pipes[i].GapY *= sy
		g.pipes[i].GapSize *= sy
	}
}

// Flap sets the upward impulse. There is no cooldown.
func (g *Game) Flap() {
	g.vel = g.cfg.FlapImpulse
}

// Step integrates gravity, spawns and scrolls pipes, then checks collisions.
func (g *Game) Step() StepResult {
	var res StepResult

	g.vel = min(g.vel+g.cfg.Gravity, g.cfg.MaxFall)
	g.birdY += g.vel

	g.frames++
	if g.spawnEvery > 0 && g.frames%g.spawnEvery == 0 {
		g.spawnPipe()
	}

	birdX := g.BirdX()
	pipeW := g.PipeWidth()
	kept := g.pipes[:0]
	for _, p := range g.pipes {
		p.X -= g.speed
		if !p.Passed && p.X+pipeW < birdX {
			p.Passed = true
			res.Passed++
		}
		if p.X+pipeW > 0 {
			kept = append(kept, p)
		}
	}
	g.pipes = kept

	if g.birdY < 0 || g.birdY+g.BirdSize() > g.height {
		res.Died = true
		return res
	}
	hitbox := g.Hitbox()
	for _, p := range g.pipes {
		top, bottom := p.Rects(pipeW, g.height)
		if hitbox.Intersects(top) || hitbox.Intersects(bottom) {
			res.Died = true
			break
		}
	}
	return res
}

// GapSize returns the gap height for the current loop:
// max(minCells*grid, max(floor, base-perLoop*loop)*height), capped at height.
func (g *Game) GapSize() float64 {
	frac := max(g.cfg.GapFloor, g.cfg.GapBase-g.cfg.GapPerLoop*float64(g.loop))
	gap := max(g.cfg.GapMinCells*g.grid, frac*g.height)
	return min(gap, g.height)
}

func (g *Game) spawnPipe() {
	gap := g.GapSize()
	margin := g.grid / 2
	lo, hi := margin, g.height-gap-margin
	gapY := (g.height - gap) / 2
	if hi > lo {
		gapY = lo + g.rng.Float64()*(hi-lo)
	}
	g.pipes = append(g.pipes, Pipe{X: g.width, GapY: gapY, GapSize: gap})
}

// BirdSize is the bird sprite edge in pixels.
func (g *Game) BirdSize() float64 {
	return g.cfg.BirdSize * g.grid
}

// BirdX is the fixed left edge of the bird.
func (g *Game) BirdX() float64 {
	return g.cfg.BirdX * g.width
}

// PipeWidth is the pipe width in pixels.
func (g *Game) PipeWidth() float64 {
	return g.cfg.PipeWidth * g.grid
}

// Sprite returns the bird's drawn rectangle.
func (g *Game) Sprite() core.RectF {
	s := g.BirdSize()
	return core.NewRectF(g.BirdX(), g.birdY, s, s)
}

// Hitbox returns the collision rectangle, inset from the sprite.
func (g *Game) Hitbox() core.RectF {
	return g.Sprite().Inset(g.cfg.HitboxInset)
}

// SetBird places the bird explicitly. Used by scenario setups.
func (g *Game) SetBird(y, vel float64) {
	g.birdY, g.vel = y, vel
}

// AddPipe inserts a pipe explicitly. Used by scenario setups.
func (g *Game) AddPipe(p Pipe) {
	g.pipes = append(g.pipes, p)
}

// Speed returns the pipe scroll speed in pixels per frame.
func (g *Game) Speed() float64 {
	return g.speed
}

// SpawnEvery returns the number of frames between pipes.
func (g *Game) SpawnEvery() int {
	return g.spawnEvery
}
