package engine

// Mode is the sub-game currently driving physics and collision.
type Mode int

const (
	ModeSnake Mode = iota
	ModeFlappy
	ModeCat
)

func (m Mode) String() string {
	switch m {
	case ModeSnake:
		return "snake"
	case ModeFlappy:
		return "flappy"
	case ModeCat:
		return "cat"
	default:
		return "unknown"
	}
}

// ModeForScore maps a score to its mode within the repeating cycle:
// cyclePos < snakeEnd is Snake, < flappyEnd is Flappy, the rest is Cat.
func ModeForScore(score, cycle, snakeEnd, flappyEnd int) Mode {
	if cycle <= 0 {
		return ModeSnake
	}
	pos := score % cycle
	if pos < 0 {
		pos += cycle
	}
	switch {
	case pos < snakeEnd:
		return ModeSnake
	case pos < flappyEnd:
		return ModeFlappy
	default:
		return ModeCat
	}
}

// Phase is the top-level lifecycle of a session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// phaseTransitions lists the legal phase changes.
var phaseTransitions = map[Phase][]Phase{
	PhaseMenu:     {PhaseMenu, PhasePlaying},
	PhasePlaying:  {PhaseMenu, PhasePlaying, PhaseGameOver},
	PhaseGameOver: {PhaseMenu, PhasePlaying},
}

// CanTransition reports whether from -> to is a legal phase change.
func CanTransition(from, to Phase) bool {
	for _, p := range phaseTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}
