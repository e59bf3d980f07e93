// Package engine owns a RetroMorph game session: the phase and morph state
// machine, the frame scheduler that mixes Snake's metronome with Flappy and
// Cat continuous physics, input routing, autopilot and published snapshots.
//
// An Engine is not safe for concurrent use. The host calls it from a single
// goroutine (the Bubble Tea update loop) and hands Snapshot values to the
// renderer.
package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/games/cat"
	"github.com/vovakirdan/retromorph/internal/games/flappy"
	"github.com/vovakirdan/retromorph/internal/games/snake"
)

// Engine drives one game session.
type Engine struct {
	cfg    config.EngineConfig
	scaler *config.Scaler
	rng    *rand.Rand
	logger *log.Logger

	dims    core.Dimensions
	session Session

	snake  *snake.Game
	flappy *flappy.Game
	cat    *cat.Game

	events []Event
	snap   Snapshot
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes obstacle and food placement deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithViewport resolves dimensions for an initial viewport in pixels.
func WithViewport(width, height float64) Option {
	return func(e *Engine) {
		e.dims = core.ResolveDimensions(width, height)
	}
}

// WithHighScore seeds the best score, usually from local storage.
func WithHighScore(score int) Option {
	return func(e *Engine) {
		e.session.HighScore = max(score, 0)
	}
}

// New creates an engine in MENU with the autopilot demo running.
func New(cfg config.EngineConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:    cfg,
		scaler: config.NewScaler(cfg.Difficulty),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.snake = snake.New(cfg.Snake, e.rng)
	e.flappy = flappy.New(cfg.Flappy, e.rng)
	e.cat = cat.New(cfg.Cat, e.rng)

	e.reinit(PhaseMenu, time.Time{})
	e.events = nil
	e.publish()
	return e
}

// Config returns the configuration the engine runs with.
func (e *Engine) Config() config.EngineConfig {
	return e.cfg
}

// Dimensions returns the resolved play-field geometry.
func (e *Engine) Dimensions() core.Dimensions {
	return e.dims
}

// Resize re-resolves the play field for a new viewport. Out-of-bounds
// sub-state is rescaled or rebuilt.
func (e *Engine) Resize(width, height float64) {
	e.dims = core.ResolveDimensions(width, height)
	e.snake.Resize(e.dims.Cols, e.dims.Rows)
	if e.snake.Len() == 0 && e.session.Mode == ModeSnake {
		e.snake.Reset(e.dims.Cols, e.dims.Rows, e.cfg.Snake.StartLength+e.session.Loop)
	}
	e.flappy.Resize(e.dims)
	e.cat.Resize(e.dims)
	e.updateOcclusion()
	e.publish()
}

// StartGame fully reinitializes the session for a human player.
func (e *Engine) StartGame(now time.Time) []Event {
	e.reinit(PhasePlaying, now)
	e.logger.Debug("game started")
	e.publish()
	return e.drain()
}

// ResetToMenu fully reinitializes the session and resumes the demo.
func (e *Engine) ResetToMenu(now time.Time) []Event {
	e.reinit(PhaseMenu, now)
	e.publish()
	return e.drain()
}

// Restart starts a new game from GAME_OVER. Requests inside the restart
// cooldown are ignored unless force is set.
func (e *Engine) Restart(now time.Time, force bool) []Event {
	if e.session.Phase != PhaseGameOver {
		return nil
	}
	if !force && now.Sub(e.session.GameOverAt) < e.cfg.Timing.RestartCooldown {
		return nil
	}
	return e.StartGame(now)
}

// SetHighScore raises the recorded best score.
func (e *Engine) SetHighScore(score int) {
	if score > e.session.HighScore {
		e.session.HighScore = score
		e.publish()
	}
}

// Resync realigns frame timing to now after the host was suspended.
func (e *Engine) Resync(now time.Time) {
	e.session.lastFrame = now
	e.session.snakeAcc = 0
}

// AwardPoints adds n points and runs the mode-transition check.
// Non-positive n is ignored.
func (e *Engine) AwardPoints(n int) []Event {
	e.award(n)
	e.publish()
	return e.drain()
}

func (e *Engine) award(n int) {
	if n <= 0 {
		return
	}
	e.session.Score += n
	e.emit(ScoreChanged{Score: e.session.Score, Delta: n})
	e.checkTransition()
}

// reinit rebuilds every sub-state for a fresh session in the given phase.
func (e *Engine) reinit(phase Phase, now time.Time) {
	s := &e.session
	if ev, changed := s.setPhase(phase); changed {
		e.emit(ev)
	}
	s.Mode = ModeSnake
	s.Score = 0
	s.Loop = 0
	s.Autoplay = phase == PhaseMenu
	s.Morph = nil
	s.Visuals = Visuals{}
	s.GameOverAt = time.Time{}
	s.lastFrame = now
	s.snakeAcc = 0

	e.snake.Reset(e.dims.Cols, e.dims.Rows, e.cfg.Snake.StartLength)
	e.flappy.Reset(e.dims, 0, e.scaler.Speed(1))
	e.cat.Reset(e.dims, 0, e.scaler.Speed(1))
	e.updateOcclusion()
}

// checkTransition starts a morph when the score has left the current mode's
// range and prepares the entering mode.
func (e *Engine) checkTransition() {
	s := &e.session
	c := e.cfg.Cycle
	s.Loop = config.LoopFor(s.Score, c.Length)
	target := ModeForScore(s.Score, c.Length, c.SnakeEnd, c.FlappyEnd)
	if target == s.Mode {
		return
	}

	from := s.Mode
	s.Morph = &Morph{From: from, To: target, Remaining: e.cfg.Timing.Morph, Total: e.cfg.Timing.Morph}
	s.Mode = target
	e.enterMode(target)
	e.emit(ModeChanged{From: from, To: target, Loop: s.Loop})
	e.logger.Debug("mode transition", "from", from, "to", target, "score", s.Score, "loop", s.Loop)
}

func (e *Engine) enterMode(m Mode) {
	loop := e.scaler.Loop(e.session.Loop)
	switch m {
	case ModeSnake:
		e.snake.Reenter(e.dims.Cols, e.dims.Rows, e.session.Loop)
	case ModeFlappy:
		e.flappy.Reset(e.dims, loop, e.scaler.Speed(1))
	case ModeCat:
		e.cat.Reset(e.dims, loop, e.scaler.Speed(1))
	}
}

// die handles a collision: demo sessions silently restart the menu, human
// sessions end in GAME_OVER.
func (e *Engine) die(now time.Time) {
	s := &e.session
	if s.Autoplay {
		e.reinit(PhaseMenu, now)
		return
	}

	record := s.Score > s.HighScore
	if record {
		s.HighScore = s.Score
	}
	if ev, changed := s.setPhase(PhaseGameOver); changed {
		e.emit(ev)
	}
	s.GameOverAt = now
	s.Visuals.ScreenShake = screenShakeOnDeath
	e.emit(GameOver{Score: s.Score, HighScore: s.HighScore, NewRecord: record})
	e.logger.Info("game over", "score", s.Score, "high", s.HighScore, "mode", s.Mode)
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) drain() []Event {
	evs := e.events
	e.events = nil
	return evs
}
