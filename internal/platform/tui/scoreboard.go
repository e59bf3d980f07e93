package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retromorph/internal/leaderboard"
	"github.com/vovakirdan/retromorph/internal/storage"
)

// Scoreboard layout constants
const (
	tableMinWidth = 50
	maxScores     = 100
)

// ScoreTab selects which standings the scoreboard shows.
type ScoreTab int

const (
	TabGlobal ScoreTab = iota
	TabLocal
)

func (t ScoreTab) String() string {
	if t == TabLocal {
		return "Local"
	}
	return "Global"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch board"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "switch board"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardOptions configures a ScoreboardModel.
type ScoreboardOptions struct {
	Board  *leaderboard.Client
	Store  *storage.Store
	Player string
	Follow bool // Subscribe to the live feed
	Width  int
	Height int
}

// ScoreboardModel shows global standings and local high scores.
type ScoreboardModel struct {
	board  *leaderboard.Client
	store  *storage.Store
	player string

	tab      ScoreTab
	global   []leaderboard.Entry
	local    []storage.ScoreEntry
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	status   string
	loading  bool
	follow   bool
	ctx      context.Context
	cancel   context.CancelFunc
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(opts ScoreboardOptions) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	player := opts.Player
	if player == "" {
		player = storage.LocalPlayer
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := ScoreboardModel{
		board:  opts.Board,
		store:  opts.Store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		follow: opts.Follow && opts.Board != nil,
		ctx:    ctx,
		cancel: cancel,
		width:  max(opts.Width, tableMinWidth),
		height: max(opts.Height, 12),
	}
	if m.board == nil {
		m.tab = TabLocal
	} else {
		m.global = m.board.Standings()
		m.loading = true
	}
	m.loadLocal()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// Init fetches the global board and starts the live feed when asked.
func (m ScoreboardModel) Init() tea.Cmd {
	if m.board == nil {
		return nil
	}
	cmds := []tea.Cmd{fetchCmd(m.ctx, m.board)}
	if m.follow {
		cmds = append(cmds, waitForLive(followLive(m.ctx, m.board)))
	}
	return tea.Batch(cmds...)
}

func (m ScoreboardModel) columns() []table.Column {
	if m.tab == TabLocal {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Mode", Width: 8},
			{Title: "Loop", Width: 5},
			{Title: "Date", Width: max(m.width-41, 12)},
		}
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: leaderboard.MaxNameLen + 2},
		{Title: "Score", Width: 8},
		{Title: "", Width: max(m.width-38, 6)},
	}
}

// createTable creates a new table with columns for the current tab.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(m.height-9),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) loadLocal() {
	if m.store == nil {
		m.local = nil
		return
	}
	scores, err := m.store.TopScores(m.player, maxScores)
	if err != nil {
		m.local = nil
		return
	}
	m.local = scores
}

// updateTableRows fills the table from the current tab's data.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row
	if m.tab == TabLocal {
		rows = make([]table.Row, len(m.local))
		for i, s := range m.local {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				s.Mode,
				fmt.Sprintf("%d", s.Loop+1),
				s.CreatedAt.Format("Jan 02 15:04"),
			}
		}
	} else {
		rows = make([]table.Row, len(m.global))
		for i, e := range m.global {
			mark := ""
			if e.Mine {
				mark = "< you"
			}
			rows[i] = table.Row{
				fmt.Sprintf("#%d", e.Rank),
				e.Name,
				fmt.Sprintf("%d", e.Score),
				mark,
			}
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchTab(t ScoreTab) {
	if m.board == nil {
		t = TabLocal
	}
	m.tab = t
	m.table = m.createTable()
	m.updateTableRows()
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			m.cancel()
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
			m.switchTab(1 - m.tab)
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.loadLocal()
			m.updateTableRows()
			if m.board != nil {
				m.loading = true
				return m, fetchCmd(m.ctx, m.board)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, tableMinWidth)
		m.height = max(msg.Height, 12)
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil

	case boardResultMsg:
		m.loading = false
		m.global = m.board.Standings()
		if m.tab == TabGlobal {
			m.updateTableRows()
		}
		return m, nil

	case liveEntryMsg:
		who := msg.entry.Name
		if msg.entry.Mine {
			who += " (you)"
		}
		m.status = fmt.Sprintf("new score: %s %d, rank #%d", who, msg.entry.Score, msg.entry.Rank)
		return m, tea.Batch(fetchCmd(m.ctx, m.board), waitForLive(msg.ch))

	case liveClosedMsg:
		if msg.err != nil {
			m.status = "live feed closed"
		}
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	scoreTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(scoreTitleStyle.Render(centerText("RETROMORPH HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	tabs := make([]string, 0, 2)
	for _, t := range []ScoreTab{TabGlobal, TabLocal} {
		if t == TabGlobal && m.board == nil {
			continue
		}
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) statusLine() string {
	var parts []string
	if m.tab == TabGlobal && m.board != nil {
		st := m.board.Stats()
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d games  %d players", st.TotalGames, st.TotalPlayers)))
		if m.board.Offline() {
			parts = append(parts, warnStyle.Render(fmt.Sprintf("OFFLINE (%d queued)", len(m.board.Pending()))))
		}
	}
	if m.loading {
		parts = append(parts, mutedStyle.Render("refreshing..."))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return strings.Join(parts, "   ")
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	empty := len(m.global) == 0
	if m.tab == TabLocal {
		empty = len(m.local) == 0
	}
	if empty {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// IsQuitting returns true if the user closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// Tab returns the visible tab.
func (m ScoreboardModel) Tab() ScoreTab {
	return m.tab
}

// RunScoreboard runs the scoreboard screen until the user leaves.
func RunScoreboard(opts ScoreboardOptions) error {
	model := NewScoreboardModel(opts)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// centerText pads text to center it in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
