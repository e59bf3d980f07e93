package engine

// runAutopilot lets the active mode's heuristic drive the session.
func (e *Engine) runAutopilot() {
	switch e.session.Mode {
	case ModeSnake:
		if d, ok := e.snake.Autopilot(); ok {
			e.snake.Steer(d)
		}
	case ModeFlappy:
		if e.flappy.Autopilot() {
			e.flappy.Flap()
		}
	case ModeCat:
		e.cat.Apply(e.cat.Autopilot())
	}
}
