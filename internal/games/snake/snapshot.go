package snake

// Snapshot is a deep copy of the snake sub-state for rendering and tests.
type Snapshot struct {
	Body    []Point // Head first
	Dir     Direction
	Queue   []Direction
	Growth  int
	Food    Point
	HasFood bool
	Cols    int
	Rows    int
}

// Snapshot returns a copy that shares no memory with the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Body:    append([]Point(nil), g.body...),
		Dir:     g.dir,
		Queue:   append([]Direction(nil), g.queue...),
		Growth:  g.growth,
		Food:    g.food,
		HasFood: g.hasFood,
		Cols:    g.cols,
		Rows:    g.rows,
	}
}
