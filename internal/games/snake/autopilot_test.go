package snake

import (
	"math/rand"
	"testing"
)

// bfsDistance is an independent reference search used to check the autopilot.
func bfsDistance(from, to Point, blocked map[Point]bool, cols, rows int) int {
	if from == to {
		return 0
	}
	dist := map[Point]int{from: 0}
	queue := []Point{from}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range []Direction{DirLeft, DirDown, DirRight, DirUp} {
			n := p.Add(d)
			if n.X < 0 || n.X >= cols || n.Y < 0 || n.Y >= rows || blocked[n] {
				continue
			}
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[p] + 1
			if n == to {
				return dist[n]
			}
			queue = append(queue, n)
		}
	}
	return -1
}

// randomBody grows a self-avoiding walk of the given length heading right.
func randomBody(rng *rand.Rand, cols, rows, length int) []Point {
	for {
		head := Point{X: rng.Intn(cols), Y: rng.Intn(rows)}
		body := []Point{head}
		used := map[Point]bool{head: true}
		for len(body) < length {
			tail := body[len(body)-1]
			var options []Point
			for _, d := range Directions {
				n := tail.Add(d)
				if n.X >= 0 && n.X < cols && n.Y >= 0 && n.Y < rows && !used[n] {
					options = append(options, n)
				}
			}
			if len(options) == 0 {
				break
			}
			n := options[rng.Intn(len(options))]
			body = append(body, n)
			used[n] = true
		}
		if len(body) == length {
			return body
		}
	}
}

func headingOf(body []Point) Direction {
	return Direction{X: body[0].X - body[1].X, Y: body[0].Y - body[1].Y}
}

func TestAutopilotFollowsShortestPath(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const cols, rows = 12, 10
	checked := 0

	for trial := 0; trial < 500; trial++ {
		body := randomBody(rng, cols, rows, 2+rng.Intn(15))
		g := newTestGame(int64(trial))
		g.SetBody(cols, rows, body, headingOf(body))
		g.SpawnFood()
		snap := g.Snapshot()
		if !snap.HasFood {
			continue
		}

		blocked := g.blockedSet()
		dist := bfsDistance(body[0], snap.Food, blocked, cols, rows)
		if dist < 0 {
			continue
		}

		d, ok := g.Autopilot()
		if !ok {
			t.Fatalf("trial %d: autopilot returned no move", trial)
		}
		next := body[0].Add(d)
		if next == snap.Food {
			if dist != 1 {
				t.Fatalf("trial %d: stepped onto food but distance was %d", trial, dist)
			}
		} else if got := bfsDistance(next, snap.Food, blocked, cols, rows); got != dist-1 {
			t.Fatalf("trial %d: move %v leaves distance %d, expected %d", trial, d, got, dist-1)
		}
		checked++
	}
	if checked < 100 {
		t.Fatalf("only %d reachable configurations checked", checked)
	}
}

func TestAutopilotFloodFillFallback(t *testing.T) {
	// Food at (5,0) is sealed off by body cells at (4,0), (4,1) and (5,1).
	const cols, rows = 6, 6
	body := []Point{
		{2, 3}, {2, 4}, {3, 4}, {4, 4}, {5, 4},
	}
	g := newTestGame(1)
	g.SetBody(cols, rows, append(body, Point{4, 0}, Point{4, 1}, Point{5, 1}), DirUp)
	g.SetFood(Point{X: 5, Y: 0})

	blocked := g.blockedSet()
	if bfsDistance(Point{2, 3}, Point{5, 0}, blocked, cols, rows) >= 0 {
		t.Fatal("setup error: food should be unreachable")
	}

	d, ok := g.Autopilot()
	if !ok {
		t.Fatal("expected a move")
	}

	bestArea := -1
	for _, m := range LegalMoves(Point{2, 3}, DirUp, blocked, cols, rows) {
		bestArea = max(bestArea, FloodFill(Point{2, 3}.Add(m), blocked, cols, rows, 100))
	}
	if got := FloodFill(Point{2, 3}.Add(d), blocked, cols, rows, 100); got != bestArea {
		t.Errorf("chose %v with area %d, best legal area is %d", d, got, bestArea)
	}
}

func TestFloodFillFallbackProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	const cols, rows = 8, 8
	checked := 0

	for trial := 0; trial < 2000 && checked < 50; trial++ {
		body := randomBody(rng, cols, rows, 10+rng.Intn(20))
		g := newTestGame(int64(trial))
		g.SetBody(cols, rows, body, headingOf(body))
		g.SpawnFood()
		snap := g.Snapshot()
		if !snap.HasFood {
			continue
		}
		blocked := g.blockedSet()
		if bfsDistance(body[0], snap.Food, blocked, cols, rows) >= 0 {
			continue
		}

		moves := LegalMoves(body[0], snap.Dir, blocked, cols, rows)
		if len(moves) == 0 {
			continue
		}
		d, _ := g.Autopilot()
		best := -1
		for _, m := range moves {
			best = max(best, FloodFill(body[0].Add(m), blocked, cols, rows, 100))
		}
		if got := FloodFill(body[0].Add(d), blocked, cols, rows, 100); got != best {
			t.Fatalf("trial %d: chose area %d, best %d", trial, got, best)
		}
		checked++
	}
	if checked == 0 {
		t.Skip("no unreachable-food configuration generated")
	}
}

func TestFloodFillCap(t *testing.T) {
	if got := FloodFill(Point{0, 0}, nil, 50, 50, 100); got != 100 {
		t.Errorf("FloodFill on open grid = %d, expected cap 100", got)
	}
	if got := FloodFill(Point{0, 0}, nil, 5, 5, 100); got != 25 {
		t.Errorf("FloodFill on 5x5 = %d, expected 25", got)
	}
	blocked := map[Point]bool{{1, 1}: true}
	if got := FloodFill(Point{1, 1}, blocked, 5, 5, 100); got != 0 {
		t.Errorf("blocked start should reach nothing, got %d", got)
	}
}

func TestSurvivalMoveNoLegalMoves(t *testing.T) {
	blocked := map[Point]bool{{1, 0}: true, {0, 1}: true}
	if got := SurvivalMove(Point{0, 0}, DirLeft, blocked, 3, 3, 100); got != DirLeft {
		t.Errorf("boxed-in snake should keep its heading, got %v", got)
	}
}
