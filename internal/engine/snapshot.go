package engine

import (
	"time"

	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/games/cat"
	"github.com/vovakirdan/retromorph/internal/games/flappy"
	"github.com/vovakirdan/retromorph/internal/games/snake"
)

// Snapshot is the read-only display state published after every processed
// frame and every intent. It shares no memory with the engine.
type Snapshot struct {
	Mode      Mode
	Phase     Phase
	Score     int
	HighScore int
	Loop      int
	Autoplay  bool
	Occluded  bool
	Morph     *Morph // nil when no transition is running
	Visuals   Visuals

	Dims     core.Dimensions
	Branding core.RectF
	Player   core.RectF

	GameOverAt     time.Time
	RestartReadyAt time.Time

	Snake  snake.Snapshot
	Flappy flappy.Snapshot
	Cat    cat.Snapshot
}

// Snapshot returns the most recently published display state.
func (e *Engine) Snapshot() Snapshot {
	return e.snap
}

// Session returns a copy of the session record.
func (e *Engine) Session() Session {
	s := e.session
	if s.Morph != nil {
		m := *s.Morph
		s.Morph = &m
	}
	return s
}

func (e *Engine) publish() {
	s := e.session
	snap := Snapshot{
		Mode:       s.Mode,
		Phase:      s.Phase,
		Score:      s.Score,
		HighScore:  s.HighScore,
		Loop:       s.Loop,
		Autoplay:   s.Autoplay,
		Occluded:   s.Occluded,
		Visuals:    s.Visuals,
		Dims:       e.dims,
		Branding:   e.Branding(),
		Player:     e.PlayerRect(),
		GameOverAt: s.GameOverAt,
		Snake:      e.snake.Snapshot(),
		Flappy:     e.flappy.Snapshot(),
		Cat:        e.cat.Snapshot(),
	}
	if s.Morph != nil {
		m := *s.Morph
		snap.Morph = &m
	}
	if s.Visuals.LastFood != nil {
		p := *s.Visuals.LastFood
		snap.Visuals.LastFood = &p
	}
	if s.Phase == PhaseGameOver {
		snap.RestartReadyAt = s.GameOverAt.Add(e.cfg.Timing.RestartCooldown)
	}
	e.snap = snap
}
