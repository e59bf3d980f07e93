package engine

import (
	"time"

	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/games/snake"
)

// duckZone is the fraction of the viewport, measured from the bottom, where a
// touch ducks in Cat mode.
const duckZone = 0.7

// Handle routes a semantic action to the session.
// Gameplay intents only apply while PLAYING with no morph running; MENU
// accepts start, GAME_OVER accepts restart and back.
func (e *Engine) Handle(action core.Action, now time.Time) []Event {
	s := &e.session
	switch s.Phase {
	case PhaseMenu:
		if action == core.ActionJump || action == core.ActionConfirm {
			return e.StartGame(now)
		}
		return nil

	case PhaseGameOver:
		switch action {
		case core.ActionRestart, core.ActionJump, core.ActionConfirm:
			return e.Restart(now, false)
		case core.ActionForceRestart:
			return e.Restart(now, true)
		case core.ActionBack:
			return e.ResetToMenu(now)
		}
		return nil
	}

	switch action {
	case core.ActionBack:
		return e.ResetToMenu(now)
	case core.ActionForceRestart:
		return e.StartGame(now)
	}
	if s.Morph != nil {
		return nil
	}

	switch s.Mode {
	case ModeSnake:
		if d, ok := directionFor(action); ok {
			e.snake.Enqueue(d)
		}
	case ModeFlappy:
		if action == core.ActionJump || action == core.ActionUp {
			e.flappy.Flap()
		}
	case ModeCat:
		switch action {
		case core.ActionJump, core.ActionUp:
			e.cat.Jump()
		case core.ActionDown:
			e.cat.SetDuck(true)
		case core.ActionDuckRelease:
			e.cat.SetDuck(false)
		}
	}
	e.publish()
	return e.drain()
}

// Tap routes a touch (mouse press) at viewport coordinates.
func (e *Engine) Tap(x, y float64, now time.Time) []Event {
	s := &e.session
	switch s.Phase {
	case PhaseMenu:
		return e.StartGame(now)
	case PhaseGameOver:
		return e.Restart(now, false)
	}
	if s.Morph != nil {
		return nil
	}

	switch s.Mode {
	case ModeSnake:
		if d, ok := e.tapDirection(x, y); ok {
			e.snake.Enqueue(d)
		}
	case ModeFlappy:
		e.flappy.Flap()
	case ModeCat:
		if y >= e.dims.CanvasHeight*(1-duckZone) {
			e.cat.SetDuck(true)
		} else {
			e.cat.Jump()
		}
	}
	e.publish()
	return e.drain()
}

// Release ends a touch; it releases a held duck.
func (e *Engine) Release(now time.Time) []Event {
	return e.Handle(core.ActionDuckRelease, now)
}

func directionFor(a core.Action) (snake.Direction, bool) {
	switch a {
	case core.ActionUp:
		return snake.DirUp, true
	case core.ActionDown:
		return snake.DirDown, true
	case core.ActionLeft:
		return snake.DirLeft, true
	case core.ActionRight:
		return snake.DirRight, true
	default:
		return snake.Direction{}, false
	}
}

// tapDirection turns toward the tap along the axis with the larger offset
// from the snake's head.
func (e *Engine) tapDirection(x, y float64) (snake.Direction, bool) {
	head, ok := e.snake.Head()
	if !ok || e.dims.GridSize <= 0 {
		return snake.Direction{}, false
	}
	g := e.dims.GridSize
	dx := x - (float64(head.X)+0.5)*g
	dy := y - (float64(head.Y)+0.5)*g
	if dx*dx >= dy*dy {
		if dx >= 0 {
			return snake.DirRight, true
		}
		return snake.DirLeft, true
	}
	if dy >= 0 {
		return snake.DirDown, true
	}
	return snake.DirUp, true
}
