package snake

// Autopilot picks the next heading for demo play. It prefers the first step
// of a shortest path to the food; with no path it takes the legal move with
// the largest reachable area. The heuristic can still trap itself.
func (g *Game) Autopilot() (Direction, bool) {
	head, ok := g.Head()
	if !ok {
		return Direction{}, false
	}

	blocked := g.blockedSet()
	if g.hasFood {
		if d, found := ShortestFirstStep(head, g.food, blocked, g.cols, g.rows, g.dir); found {
			return d, true
		}
	}
	return SurvivalMove(head, g.dir, blocked, g.cols, g.rows, g.cfg.FloodFillCap), true
}

// blockedSet marks every body cell, tail included.
func (g *Game) blockedSet() map[Point]bool {
	blocked := make(map[Point]bool, len(g.body))
	for _, seg := range g.body {
		blocked[seg] = true
	}
	return blocked
}

// LegalMoves returns the moves from head that stay on the grid, avoid
// blocked cells and do not reverse the current heading.
func LegalMoves(head Point, current Direction, blocked map[Point]bool, cols, rows int) []Direction {
	moves := make([]Direction, 0, 3)
	for _, d := range Directions {
		if d.Opposite(current) {
			continue
		}
		next := head.Add(d)
		if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows || blocked[next] {
			continue
		}
		moves = append(moves, d)
	}
	return moves
}

// ShortestFirstStep runs a breadth-first search from head to food over free
// cells and returns the first move of a shortest path.
func ShortestFirstStep(head, food Point, blocked map[Point]bool, cols, rows int, current Direction) (Direction, bool) {
	type node struct {
		p     Point
		first Direction
	}

	visited := map[Point]bool{head: true}
	queue := make([]node, 0, cols*rows)
	for _, d := range LegalMoves(head, current, blocked, cols, rows) {
		next := head.Add(d)
		if next == food {
			return d, true
		}
		visited[next] = true
		queue = append(queue, node{p: next, first: d})
	}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			next := n.p.Add(d)
			if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows {
				continue
			}
			if visited[next] || blocked[next] {
				continue
			}
			if next == food {
				return n.first, true
			}
			visited[next] = true
			queue = append(queue, node{p: next, first: n.first})
		}
	}
	return Direction{}, false
}

// FloodFill counts free cells reachable from start, stopping at limit.
// A blocked or off-grid start reaches nothing.
func FloodFill(start Point, blocked map[Point]bool, cols, rows, limit int) int {
	if start.X < 0 || start.X >= cols || start.Y < 0 || start.Y >= rows || blocked[start] {
		return 0
	}
	visited := map[Point]bool{start: true}
	stack := []Point{start}
	count := 0
	for len(stack) > 0 && count < limit {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		for _, d := range Directions {
			next := p.Add(d)
			if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows {
				continue
			}
			if visited[next] || blocked[next] {
				continue
			}
			visited[next] = true
			stack = append(stack, next)
		}
	}
	return count
}

// SurvivalMove returns the legal move whose flood fill is largest. Ties go
// to the earlier move in Directions order; with no legal move the current
// heading is kept.
func SurvivalMove(head Point, current Direction, blocked map[Point]bool, cols, rows, limit int) Direction {
	best := current
	bestArea := -1
	for _, d := range LegalMoves(head, current, blocked, cols, rows) {
		area := FloodFill(head.Add(d), blocked, cols, rows, limit)
		if area > bestArea {
			best, bestArea = d, area
		}
	}
	return best
}
