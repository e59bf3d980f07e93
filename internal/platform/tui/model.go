package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/retromorph/internal/config"
	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/engine"
	"github.com/vovakirdan/retromorph/internal/leaderboard"
	"github.com/vovakirdan/retromorph/internal/render"
	"github.com/vovakirdan/retromorph/internal/storage"
)

// duckHold is how long a Down press keeps the cat ducked without a repeat.
const duckHold = 220 * time.Millisecond

// Page is a destination outside the game the player asked to navigate to.
type Page string

const (
	PageNone  Page = ""
	PageGames Page = "games"
	PageAbout Page = "about"
)

// Navigator is called when the player leaves the game for another page.
type Navigator func(Page)

// Options configures a game Model.
type Options struct {
	Engine  config.EngineConfig
	Runtime core.RuntimeConfig

	// Board is the leaderboard client. Nil plays without one.
	Board *leaderboard.Client

	// Store keeps local high scores under Player. Nil disables them.
	Store  *storage.Store
	Player string

	Logger    *log.Logger
	Navigator Navigator

	// Context bounds leaderboard calls; it is cancelled when an SSH
	// session ends.
	Context context.Context

	// AltScreen reports whether the program starts in the alternate screen.
	AltScreen bool
}

// Model is the Bubble Tea model hosting one engine session.
type Model struct {
	eng    *engine.Engine
	screen *core.Screen
	config core.RuntimeConfig

	board  *leaderboard.Client
	store  *storage.Store
	player string
	logger *log.Logger
	ctx    context.Context
	now    func() time.Time

	keys     KeyMap
	help     help.Model
	showHelp bool
	navigate Navigator

	engineRunning bool
	duckHeld      bool
	duckGen       int
	altScreen     bool

	naming    bool
	nameEntry NameEntry
	newRecord bool

	page     Page
	quitting bool
}

// NewModel creates a model with the engine in the demo menu.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	player := opts.Player
	if player == "" {
		player = storage.LocalPlayer
	}

	best := 0
	if opts.Store != nil {
		if hs, err := opts.Store.HighScore(player); err != nil {
			logger.Warn("could not load high score", "error", err)
		} else {
			best = hs
		}
	}

	w, h := cfg.Viewport()
	eng := engine.New(opts.Engine,
		engine.WithSeed(cfg.Seed),
		engine.WithViewport(w, h),
		engine.WithHighScore(best),
		engine.WithLogger(logger),
	)

	hm := help.New()
	hm.Width = cfg.ScreenW

	return Model{
		eng:       eng,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		board:     opts.Board,
		store:     opts.Store,
		player:    player,
		logger:    logger,
		ctx:       ctx,
		now:       time.Now,
		keys:      DefaultKeyMap(),
		help:      hm,
		navigate:  opts.Navigator,
		altScreen: opts.AltScreen,
	}
}

// Init starts both tick chains and the first leaderboard fetch.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("RetroMorph"),
		engineTickCmd(m.config.TickRate),
		frameTickCmd(m.config.TickRate),
	}
	if m.board != nil {
		cmds = append(cmds, fetchCmd(m.ctx, m.board))
	}
	return tea.Batch(cmds...)
}

// Engine exposes the hosted engine.
func (m Model) Engine() *engine.Engine {
	return m.eng
}

// Page returns where the player navigated, or PageNone.
func (m Model) Page() Page {
	return m.page
}

// IsQuitting reports whether the player quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Naming reports whether the name prompt is showing.
func (m Model) Naming() bool {
	return m.naming
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.naming {
			return m.updateNaming(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg.Width, msg.Height)

	case tea.FocusMsg:
		m.eng.Resync(m.now())
		return m, m.ensureEngineTick()

	case tea.BlurMsg:
		return m, nil

	case engineTickMsg:
		return m.handleEngineTick(time.Time(msg))

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		return m, frameTickCmd(m.config.TickRate)

	case duckReleaseMsg:
		if msg.gen == m.duckGen && m.duckHeld {
			m.duckHeld = false
			evs := m.eng.Release(m.now())
			return m, m.handleEvents(evs)
		}
		return m, nil

	case boardResultMsg:
		if msg.err != nil && !errors.Is(msg.err, leaderboard.ErrUnreachable) && !errors.Is(msg.err, leaderboard.ErrNoIdentity) {
			m.logger.Warn("leaderboard call failed", "error", msg.err)
		}
		return m, nil
	}

	if m.naming {
		var cmd tea.Cmd
		m.nameEntry, cmd = m.nameEntry.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Fullscreen):
		m.altScreen = !m.altScreen
		if m.altScreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m.handleResize(m.config.ScreenW, m.config.ScreenH)
	}

	phase := m.eng.Snapshot().Phase
	if phase == engine.PhaseGameOver {
		switch {
		case key.Matches(msg, m.keys.Games):
			return m.leave(PageGames)
		case key.Matches(msg, m.keys.About):
			return m.leave(PageAbout)
		}
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	}

	now := m.now()
	var cmds []tea.Cmd
	snap := m.eng.Snapshot()
	catPlaying := snap.Phase == engine.PhasePlaying && snap.Mode == engine.ModeCat

	switch {
	case action == core.ActionDown && catPlaying:
		// Terminals have no key-up; every repeat re-arms the release timer.
		m.duckHeld = true
		m.duckGen++
		cmds = append(cmds, duckReleaseCmd(duckHold, m.duckGen))
	case action == core.ActionJump || action == core.ActionUp:
		if m.duckHeld {
			m.duckHeld = false
			m.duckGen++
		}
	}

	cmds = append(cmds, m.handleEvents(m.eng.Handle(action, now)))
	return m, tea.Batch(cmds...)
}

// handleMouse maps presses to taps and releases to duck release.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.naming {
		return m, nil
	}
	now := m.now()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		px, py := m.canvasPoint(msg.X, msg.Y)
		return m, m.handleEvents(m.eng.Tap(px, py, now))
	case tea.MouseActionRelease:
		m.duckHeld = false
		m.duckGen++
		return m, m.handleEvents(m.eng.Release(now))
	}
	return m, nil
}

// canvasPoint converts a screen cell to the canvas pixel at its center.
func (m Model) canvasPoint(x, y int) (float64, float64) {
	c := render.Layout(m.eng.Dimensions(), m.screen.Width(), m.screen.Height(), 0)
	px := (float64(x-c.OffsetX) + 0.5) * core.CellPixelsX
	py := (float64(y-c.OffsetY) + 0.5) * core.CellPixelsY
	return px, py
}

// handleResize resizes the screen buffer and re-resolves the play field.
func (m Model) handleResize(width, height int) (tea.Model, tea.Cmd) {
	m.config.ScreenW = width
	m.config.ScreenH = height
	m.help.Width = width

	playH := height
	if m.showHelp {
		playH = max(height-1, 0)
	}
	m.screen.Resize(width, playH)
	w, h := core.RuntimeConfig{ScreenW: width, ScreenH: playH}.Viewport()
	m.eng.Resize(w, h)
	return m, nil
}

// handleEngineTick runs one engine frame and re-arms the chain unless the
// session is over.
func (m Model) handleEngineTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		m.engineRunning = false
		return m, nil
	}
	if m.eng.Snapshot().Phase == engine.PhaseGameOver {
		m.engineRunning = false
		return m, nil
	}
	m.engineRunning = true
	rep := m.eng.Frame(now)
	cmd := m.handleEvents(rep.Events)

	if m.eng.Snapshot().Phase == engine.PhaseGameOver {
		m.engineRunning = false
		return m, cmd
	}
	return m, tea.Batch(cmd, engineTickCmd(m.config.TickRate))
}

// ensureEngineTick restarts the engine chain after a game over.
func (m *Model) ensureEngineTick() tea.Cmd {
	if m.engineRunning || m.eng.Snapshot().Phase == engine.PhaseGameOver {
		return nil
	}
	m.engineRunning = true
	m.eng.Resync(m.now())
	return engineTickCmd(m.config.TickRate)
}

// handleEvents reacts to engine events: score persistence, leaderboard
// submission and tick chain management.
func (m *Model) handleEvents(evs []engine.Event) tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range evs {
		switch ev := ev.(type) {
		case engine.GameOver:
			m.newRecord = ev.NewRecord
			cmds = append(cmds, m.gameOver(ev))
		case engine.PhaseChanged:
			if ev.To == engine.PhasePlaying {
				m.newRecord = false
			}
			if ev.To != engine.PhaseGameOver {
				cmds = append(cmds, m.ensureEngineTick())
			}
			// Standings refresh, and the pending queue drains, on every
			// entry into MENU or GAME_OVER once an identity exists.
			if ev.To != engine.PhasePlaying && m.board != nil && m.board.GUID() != "" {
				cmds = append(cmds, fetchCmd(m.ctx, m.board))
			}
		case engine.ModeChanged:
			m.logger.Debug("mode changed", "from", ev.From, "to", ev.To, "loop", ev.Loop)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) gameOver(ev engine.GameOver) tea.Cmd {
	snap := m.eng.Snapshot()
	m.logger.Info("game over", "player", m.player, "score", ev.Score, "mode", snap.Mode, "loop", snap.Loop)

	if m.store != nil && ev.Score > 0 {
		if _, err := m.store.SaveScore(m.player, ev.Score, snap.Mode.String(), snap.Loop); err != nil {
			m.logger.Warn("could not save score", "error", err)
		}
	}
	if m.board == nil || ev.Score <= 0 {
		return nil
	}
	if name := m.board.Username(); name != "" {
		return commitCmd(m.ctx, m.board, name, ev.Score)
	}
	m.naming = true
	m.nameEntry = NewNameEntry(ev.Score)
	return nil
}

// updateNaming handles keys while the name prompt is showing.
func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.naming = false
		m.logger.Info("leaderboard entry skipped", "score", m.nameEntry.Score())
		return m, nil
	case tea.KeyEnter:
		if err := m.nameEntry.Validate(); err != nil {
			return m, nil
		}
		m.naming = false
		name := strings.TrimSpace(m.nameEntry.Value())
		return m, registerCmd(m.ctx, m.board, name, m.nameEntry.Score())
	}
	var cmd tea.Cmd
	m.nameEntry, cmd = m.nameEntry.Update(msg)
	return m, cmd
}

func (m Model) leave(p Page) (tea.Model, tea.Cmd) {
	m.page = p
	m.quitting = true
	if m.navigate != nil {
		m.navigate(p)
	}
	return m, tea.Quit
}

func (m Model) hud() render.HUD {
	hud := render.HUD{
		Now:       m.now(),
		Username:  m.player,
		NewRecord: m.newRecord,
	}
	if m.board != nil {
		if name := m.board.Username(); name != "" {
			hud.Username = name
		}
		hud.Offline = m.board.Offline()
		hud.Pending = len(m.board.Pending())
		hud.Standings = m.board.Standings()
	}
	return hud
}

var helpBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.naming {
		return m.nameEntry.View(m.config.ScreenW, m.config.ScreenH)
	}

	render.Draw(m.screen, m.eng.Snapshot(), m.hud())
	out := RenderScreen(m.screen)
	if m.showHelp {
		out += "\n" + helpBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return out
}

// Run starts the game in the current terminal and returns where the player
// navigated on exit.
func Run(opts Options) (Page, error) {
	opts.AltScreen = true
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if err != nil {
		return PageNone, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Page(), nil
	}
	return PageNone, nil
}
