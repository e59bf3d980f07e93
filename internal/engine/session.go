package engine

import (
	"time"

	"github.com/vovakirdan/retromorph/internal/games/snake"
)

// Morph is a running transition between two modes. Its presence pauses
// physics, collision and autopilot for both modes.
type Morph struct {
	From      Mode
	To        Mode
	Remaining time.Duration
	Total     time.Duration
}

// Progress returns how far the blend has run, in [0, 1].
func (m Morph) Progress() float64 {
	if m.Total <= 0 {
		return 1
	}
	p := 1 - float64(m.Remaining)/float64(m.Total)
	return min(max(p, 0), 1)
}

// Visuals are render-only effects. Logic never reads them.
type Visuals struct {
	ScreenShake float64
	ImpactPulse float64
	LastFood    *snake.Point
}

func (v *Visuals) decay(shake, pulse float64) {
	v.ScreenShake = max(v.ScreenShake-shake, 0)
	v.ImpactPulse = max(v.ImpactPulse-pulse, 0)
	if v.ImpactPulse == 0 {
		v.LastFood = nil
	}
}

// Session is the mutable game record owned by one Engine.
type Session struct {
	Mode      Mode
	Phase     Phase
	Score     int
	HighScore int
	Loop      int
	Autoplay  bool
	Occluded  bool
	Morph     *Morph
	Visuals   Visuals

	GameOverAt time.Time

	lastFrame time.Time
	snakeAcc  time.Duration
}

// setPhase moves the session to a new phase. Illegal transitions are
// programming errors.
func (s *Session) setPhase(to Phase) (PhaseChanged, bool) {
	if !CanTransition(s.Phase, to) {
		panic("engine: illegal phase transition " + s.Phase.String() + " -> " + to.String())
	}
	ev := PhaseChanged{From: s.Phase, To: to}
	s.Phase = to
	return ev, ev.From != ev.To
}
