package flappy

// Snapshot is a deep copy of the Flappy sub-state.
type Snapshot struct {
	BirdX     float64
	BirdY     float64
	BirdSize  float64
	Vel       float64
	Pipes     []Pipe
	PipeWidth float64
	Width     float64
	Height    float64
	Speed     float64
	Frames    int
}

// Snapshot returns a copy that shares no memory with the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		BirdX:     g.BirdX(),
		BirdY:     g.birdY,
		BirdSize:  g.BirdSize(),
		Vel:       g.vel,
		Pipes:     append([]Pipe(nil), g.pipes...),
		PipeWidth: g.PipeWidth(),
		Width:     g.width,
		Height:    g.height,
		Speed:     g.speed,
		Frames:    g.frames,
	}
}
