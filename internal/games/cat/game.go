// Package cat implements the endless-runner sub-game: a cat that jumps
// cacti and ducks birds on a ground line scrolling at increasing speed.
package cat

import (
	"math/rand"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
)

// Cat body size in grid cells.
const (
	catWidth      = 0.9
	catHeight     = 1.0
	catDuckHeight = 0.5
)

// StepResult reports what one physics frame did.
type StepResult struct {
	Passed int
	Died   bool
}

// Game holds the Cat sub-state.
type Game struct {
	cfg config.CatConfig
	rng *rand.Rand

	width   float64
	height  float64
	grid    float64
	groundY float64

	y       float64 // Height relative to the ground line, negative is up
	vel     float64
	jumping bool
	ducking bool

	obstacles  []Obstacle
	frames     int
	speed      float64
	spawnEvery int
}

// New creates an empty Cat sub-state. Call Reset before stepping.
func New(cfg config.CatConfig, rng *rand.Rand) *Game {
	return &Game{cfg: cfg, rng: rng}
}

// Reset puts the cat on the ground with no obstacles and applies loop-count
// difficulty. speedFactor scales the ground speed.
func (g *Game) Reset(d core.Dimensions, loop int, speedFactor float64) {
	g.setDims(d)
	g.y, g.vel = 0, 0
	g.jumping, g.ducking = false, false
	g.obstacles = g.obstacles[:0]
	g.frames = 0
	g.speed = (g.cfg.SpeedBase + g.cfg.SpeedPerLoop*float64(loop)) * speedFactor
	g.spawnEvery = max(g.cfg.SpawnMin, g.cfg.SpawnBase-g.cfg.SpawnPerLoop*loop)
}

// Resize rescales obstacle positions and any jump in progress.
func (g *Game) Resize(d core.Dimensions) {
	if g.width > 0 && g.height > 0 {
		sx := d.CanvasWidth / g.width
		sy := d.CanvasHeight / g.height
		g.y *= sy
		g.vel *= sy
		for i := range g.obstacles {
			g.obstacles[i].X *= sx
		}
	}
	g.setDims(d)
}

func (g *Game) setDims(d core.Dimensions) {
	g.width = d.CanvasWidth
	g.height = d.CanvasHeight
	g.grid = d.GridSize
	g.groundY = d.CanvasHeight - float64(g.cfg.GroundRows)*d.GridSize
}

// Jump starts a jump if the cat is on the ground. Jumping clears ducking.
func (g *Game) Jump() bool {
	if g.jumping {
		return false
	}
	g.jumping = true
	g.ducking = false
	g.vel = -g.cfg.JumpImpulse * g.height
	return true
}

// SetDuck sets or clears the held duck. Ducking is ignored while airborne.
func (g *Game) SetDuck(on bool) {
	if on && g.jumping {
		return
	}
	g.ducking = on
}

// Step integrates the jump, spawns and scrolls obstacles and checks hits.
func (g *Game) Step() StepResult {
	var res StepResult

	if g.jumping {
		g.vel += g.cfg.Gravity * g.height
		g.y += g.vel
		if g.y >= 0 {
			g.y, g.vel = 0, 0
			g.jumping = false
		}
	}

	g.frames++
	if g.spawnEvery > 0 && g.frames%g.spawnEvery == 0 {
		g.spawn()
	}

	catX := g.CatX()
	kept := g.obstacles[:0]
	for _, o := range g.obstacles {
		o.X -= g.speed
		w := o.Width(g.grid)
		if !o.Passed && o.X+w < catX {
			o.Passed = true
			res.Passed++
		}
		if o.X+w > 0 {
			kept = append(kept, o)
		}
	}
	g.obstacles = kept

	hitbox := g.Hitbox()
	for _, o := range g.obstacles {
		if hitbox.Intersects(o.Rect(g.grid, g.groundY)) {
			res.Died = true
			break
		}
	}
	return res
}

func (g *Game) spawn() {
	kind := KindCactus
	if g.rng.Float64() < g.cfg.BirdChance {
		kind = KindLowBird
		if g.rng.Intn(2) == 1 {
			kind = KindHighBird
		}
	}
	g.obstacles = append(g.obstacles, Obstacle{Kind: kind, X: g.width})
}

// CatX is the fixed left edge of the cat.
func (g *Game) CatX() float64 {
	return g.cfg.CatX * g.width
}

// Sprite returns the drawn cat rectangle, shrunk while ducking.
func (g *Game) Sprite() core.RectF {
	h := catHeight
	if g.ducking {
		h = catDuckHeight
	}
	h *= g.grid
	return core.NewRectF(g.CatX(), g.groundY+g.y-h, catWidth*g.grid, h)
}

// Hitbox returns the collision rectangle. While airborne the bottom edge is
// raised by the mercy buffer.
func (g *Game) Hitbox() core.RectF {
	r := g.Sprite()
	if g.jumping {
		r.H = max(r.H-g.cfg.MercyCells*g.grid, 0)
	}
	return r
}

// AddObstacle inserts an obstacle explicitly. Used by scenario setups.
func (g *Game) AddObstacle(o Obstacle) {
	g.obstacles = append(g.obstacles, o)
}

// Jumping reports whether the cat is airborne.
func (g *Game) Jumping() bool {
	return g.jumping
}

// Ducking reports whether the duck is held.
func (g *Game) Ducking() bool {
	return g.ducking
}

// Speed returns the ground speed in pixels per frame.
func (g *Game) Speed() float64 {
	return g.speed
}

// SpawnEvery returns the number of frames between obstacles.
func (g *Game) SpawnEvery() int {
	return g.spawnEvery
}

// GroundY returns the y of the ground line.
func (g *Game) GroundY() float64 {
	return g.groundY
}
