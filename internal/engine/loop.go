package engine

import (
	"time"

	"github.com/vovakirdan/retromorph/internal/games/snake"
)

const (
	screenShakeOnDeath = 12.0
	impactPulseOnScore = 1.0
)

// FrameReport describes one scheduler pass.
type FrameReport struct {
	Delta      time.Duration // Delta used for logic, after stall clamping
	Stepped    bool          // Logic ran (the frame was not skipped by the cap)
	SnakeSteps int
	Events     []Event
}

// Frame runs one pass of the scheduler:
//  1. autopilot, when the demo is running and no morph is active
//  2. delta since the last processed frame, clamped after a stall
//  3. visual decay
//  4. frame cap: short frames skip logic
//  5. morph countdown, or
//  6. the active mode's physics (metronome steps for Snake)
//  7. mode-transition check
//  8. occlusion update
//
// Frame does nothing in GAME_OVER.
func (e *Engine) Frame(now time.Time) FrameReport {
	var rep FrameReport
	s := &e.session
	if s.Phase == PhaseGameOver {
		return rep
	}
	if s.lastFrame.IsZero() {
		s.lastFrame = now
	}

	if s.Autoplay && s.Morph == nil {
		e.runAutopilot()
	}

	t := e.cfg.Timing
	delta := now.Sub(s.lastFrame)
	if delta > t.StallThreshold {
		delta = t.StallClamp
		s.snakeAcc = 0
	}

	s.Visuals.decay(t.ShakeDecay, t.PulseDecay)

	if delta < t.FrameCap {
		e.publish()
		rep.Events = e.drain()
		return rep
	}
	s.lastFrame = now
	rep.Delta = delta
	rep.Stepped = true

	if m := s.Morph; m != nil {
		m.Remaining -= delta
		if m.Remaining <= 0 {
			s.Morph = nil
			s.snakeAcc = 0
		}
	} else {
		rep.SnakeSteps = e.advance(now, delta)
	}

	if s.Phase != PhaseGameOver {
		e.checkTransition()
	}
	e.updateOcclusion()
	e.publish()
	rep.Events = e.drain()
	return rep
}

// advance runs the active mode's physics and returns the number of snake
// steps taken.
func (e *Engine) advance(now time.Time, delta time.Duration) int {
	switch e.session.Mode {
	case ModeSnake:
		return e.advanceSnake(now, delta)
	case ModeFlappy:
		res := e.flappy.Step()
		e.scored(res.Passed * e.cfg.Flappy.PipePoints)
		if res.Died {
			e.die(now)
		}
	case ModeCat:
		res := e.cat.Step()
		e.scored(res.Passed * e.cfg.Cat.ObstaclePoints)
		if res.Died {
			e.die(now)
		}
	}
	return 0
}

// advanceSnake is the metronome: accumulated time is spent in fixed steps,
// at most MaxSnakeSteps per frame, leftover time kept modulo the interval.
func (e *Engine) advanceSnake(now time.Time, delta time.Duration) int {
	s := &e.session
	interval := e.snakeInterval()
	if interval <= 0 {
		return 0
	}

	s.snakeAcc += delta
	steps := 0
	for s.snakeAcc >= interval && steps < e.cfg.Timing.MaxSnakeSteps {
		s.snakeAcc -= interval
		steps++

		res := e.snake.Step()
		if res.Died {
			e.die(now)
			return steps
		}
		if res.Ate {
			food := res.Food
			s.Visuals.LastFood = &food
			e.scored(e.cfg.Snake.FoodPoints)
		}
		if s.Morph != nil || s.Mode != ModeSnake {
			s.snakeAcc = 0
			return steps
		}
	}
	if s.snakeAcc >= interval {
		s.snakeAcc %= interval
	}
	return steps
}

func (e *Engine) scored(points int) {
	if points <= 0 {
		return
	}
	e.session.Visuals.ImpactPulse = impactPulseOnScore
	e.award(points)
}

// snakeInterval is the metronome period after the preset speed factor. The
// factor never takes it below MinTick.
func (e *Engine) snakeInterval() time.Duration {
	s := &e.session
	d := e.scaler.Interval(snake.Interval(e.cfg.Snake, s.Score, e.scaler.Loop(s.Loop)))
	return max(d, e.cfg.Snake.MinTick)
}
