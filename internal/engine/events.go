package engine

// Event is a typed notification produced by Frame and the input methods.
type Event interface {
	event()
}

// PhaseChanged is emitted when the lifecycle phase changes.
type PhaseChanged struct {
	From, To Phase
}

// GameOver is emitted when a human-played session ends.
type GameOver struct {
	Score     int
	HighScore int
	NewRecord bool
}

// ModeChanged is emitted when a score threshold starts a morph.
type ModeChanged struct {
	From, To Mode
	Loop     int
}

// ScoreChanged is emitted after every score increment.
type ScoreChanged struct {
	Score int
	Delta int
}

func (PhaseChanged) event() {}
func (GameOver) event()     {}
func (ModeChanged) event()  {}
func (ScoreChanged) event() {}
