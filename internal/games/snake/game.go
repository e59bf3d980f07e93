// Package snake implements the discrete-time Snake sub-game: a grid snake
// stepped by the engine's metronome, with a bounded direction queue.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/retromorph/internal/config"
)

// Point represents a grid cell.
type Point struct {
	X, Y int
}

// Add returns p moved one cell in direction d.
func (p Point) Add(d Direction) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Direction is a unit movement vector.
type Direction struct {
	X, Y int
}

var (
	DirUp    = Direction{X: 0, Y: -1}
	DirRight = Direction{X: 1, Y: 0}
	DirDown  = Direction{X: 0, Y: 1}
	DirLeft  = Direction{X: -1, Y: 0}
)

// Directions lists the four moves in the fixed order used for tie breaking.
var Directions = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// Opposite reports whether d and other point in exactly opposite directions.
func (d Direction) Opposite(other Direction) bool {
	return d.X == -other.X && d.Y == -other.Y && d != other
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// StepResult reports what a single metronome step did.
type StepResult struct {
	Moved bool
	Ate   bool
	Died  bool
	Food  Point // Cell of the eaten food when Ate is set
}

// Game holds the Snake sub-state.
type Game struct {
	cfg  config.SnakeConfig
	rng  *rand.Rand
	cols int
	rows int

	body    []Point // Head at index 0
	dir     Direction
	queue   []Direction
	growth  int // Segments still to be added
	food    Point
	hasFood bool
}

// New creates an empty snake sub-state. Call Reset or Reenter to place it.
func New(cfg config.SnakeConfig, rng *rand.Rand) *Game {
	return &Game{cfg: cfg, rng: rng, dir: DirRight}
}

// Reset rebuilds the snake with the given length on a cols x rows grid.
// The body lies horizontally through the center heading right.
func (g *Game) Reset(cols, rows, length int) {
	g.cols, g.rows = max(cols, 0), max(rows, 0)
	g.body = g.body[:0]
	g.queue = g.queue[:0]
	g.growth = 0
	g.dir = DirRight
	g.hasFood = false

	if g.cols == 0 || g.rows == 0 {
		return
	}

	head := Point{X: g.cols / 2, Y: g.rows / 2}
	for i := 0; i < length && head.X-i >= 0; i++ {
		g.body = append(g.body, Point{X: head.X - i, Y: head.Y})
	}
	g.SpawnFood()
}

// Reenter prepares the snake when the cycle comes back to Snake mode.
// A surviving body keeps its history and grows by loop segments; an emptied
// one is rebuilt at the start length plus loop.
func (g *Game) Reenter(cols, rows, loop int) {
	g.Resize(cols, rows)
	g.queue = g.queue[:0]
	if len(g.body) == 0 {
		g.Reset(cols, rows, g.cfg.StartLength+loop)
		return
	}
	g.growth += loop
	if !g.hasFood {
		g.SpawnFood()
	}
}

// Resize adapts to a new grid. A body that no longer fits is cleared and
// food outside the grid is respawned.
func (g *Game) Resize(cols, rows int) {
	g.cols, g.rows = max(cols, 0), max(rows, 0)
	for _, seg := range g.body {
		if !g.inBounds(seg) {
			g.body = g.body[:0]
			g.queue = g.queue[:0]
			break
		}
	}
	if g.hasFood && !g.inBounds(g.food) {
		g.hasFood = false
	}
	if !g.hasFood && len(g.body) > 0 {
		g.SpawnFood()
	}
}

// Enqueue adds a turn. It is rejected when it reverses the most recently
// queued direction (or the current one when the queue is empty) or when the
// queue is full.
func (g *Game) Enqueue(d Direction) bool {
	if len(g.queue) >= g.cfg.QueueDepth {
		return false
	}
	last := g.dir
	if n := len(g.queue); n > 0 {
		last = g.queue[n-1]
	}
	if d.Opposite(last) {
		return false
	}
	g.queue = append(g.queue, d)
	return true
}

// Steer replaces pending turns with a single direction, used by the
// autopilot. Reversals are ignored.
func (g *Game) Steer(d Direction) {
	if d == g.dir || d.Opposite(g.dir) {
		g.queue = g.queue[:0]
		return
	}
	g.queue = append(g.queue[:0], d)
}

// Step advances the snake one cell.
func (g *Game) Step() StepResult {
	if len(g.body) == 0 {
		return StepResult{}
	}

	if len(g.queue) > 0 {
		g.dir = g.queue[0]
		g.queue = g.queue[1:]
	}

	head := g.body[0].Add(g.dir)
	if !g.inBounds(head) {
		return StepResult{Died: true}
	}

	// The tail vacates its cell this step unless the snake is growing.
	checkLen := len(g.body)
	if g.growth == 0 {
		checkLen--
	}
	for i := range checkLen {
		if g.body[i] == head {
			return StepResult{Died: true}
		}
	}

	g.body = append(g.body, Point{})
	copy(g.body[1:], g.body)
	g.body[0] = head

	if g.growth > 0 {
		g.growth--
	} else {
		g.body = g.body[:len(g.body)-1]
	}

	res := StepResult{Moved: true}
	if g.hasFood && head == g.food {
		res.Ate = true
		res.Food = head
		g.growth++
		g.SpawnFood()
	}
	return res
}

// SpawnFood places food at a random free cell. With no free cell the snake
// simply has no food.
func (g *Game) SpawnFood() {
	free := make([]Point, 0, g.cols*g.rows)
	for y := 0; y < g.rows; y++ {
		for x := 0; x < g.cols; x++ {
			p := Point{X: x, Y: y}
			if !g.occupies(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.hasFood = false
		return
	}
	g.food = free[g.rng.Intn(len(free))]
	g.hasFood = true
}

// SetBody places the snake explicitly. Used by scenario setups.
func (g *Game) SetBody(cols, rows int, body []Point, dir Direction) {
	g.cols, g.rows = cols, rows
	g.body = append(g.body[:0], body...)
	g.dir = dir
	g.queue = g.queue[:0]
	g.growth = 0
}

// SetFood places food on a specific cell.
func (g *Game) SetFood(p Point) {
	g.food = p
	g.hasFood = true
}

// Head returns the head cell and whether the snake exists.
func (g *Game) Head() (Point, bool) {
	if len(g.body) == 0 {
		return Point{}, false
	}
	return g.body[0], true
}

// Direction returns the current heading.
func (g *Game) Direction() Direction {
	return g.dir
}

// Len returns the body length.
func (g *Game) Len() int {
	return len(g.body)
}

func (g *Game) inBounds(p Point) bool {
	return p.X >= 0 && p.X < g.cols && p.Y >= 0 && p.Y < g.rows
}

func (g *Game) occupies(p Point) bool {
	for _, seg := range g.body {
		if seg == p {
			return true
		}
	}
	return false
}

// Interval returns the metronome period for a score and loop count:
// max(minTick, initialTick/(1+loopScaling*loop) - score*scorePenalty).
func Interval(cfg config.SnakeConfig, score, loop int) time.Duration {
	scaling := 1 + cfg.LoopScaling*float64(loop)
	d := time.Duration(float64(cfg.InitialTick)/scaling) - time.Duration(score)*cfg.ScorePenalty
	return max(d, cfg.MinTick)
}
