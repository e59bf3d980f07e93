package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retromorph/internal/leaderboard"
)

// NameEntry prompts for a leaderboard username after a scoring game.
type NameEntry struct {
	input textinput.Model
	score int
	err   error
}

// NewNameEntry creates a focused prompt for the given score.
func NewNameEntry(score int) NameEntry {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = leaderboard.MaxNameLen
	ti.Width = leaderboard.MaxNameLen + 1
	ti.Prompt = "> "
	ti.Focus()
	return NameEntry{input: ti, score: score}
}

// Value returns the typed name.
func (n NameEntry) Value() string {
	return n.input.Value()
}

// Score returns the score waiting to be submitted.
func (n NameEntry) Score() int {
	return n.score
}

// Validate checks the typed name and keeps the error for display.
func (n *NameEntry) Validate() error {
	n.err = leaderboard.ValidateName(n.input.Value())
	return n.err
}

// Update forwards editing keys to the text input.
func (n NameEntry) Update(msg tea.Msg) (NameEntry, tea.Cmd) {
	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		n.err = nil
	}
	return n, cmd
}

var (
	nameBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	nameTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	nameHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	nameErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// View renders the prompt centered in a width x height area.
func (n NameEntry) View(width, height int) string {
	hint := nameHintStyle.Render(fmt.Sprintf("%d-%d characters  enter save  esc skip",
		leaderboard.MinNameLen, leaderboard.MaxNameLen))
	if n.err != nil {
		hint = nameErrStyle.Render(fmt.Sprintf("Name must be %d-%d characters",
			leaderboard.MinNameLen, leaderboard.MaxNameLen))
	}
	box := nameBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		nameTitleStyle.Render(fmt.Sprintf("Score %d  join the leaderboard", n.score)),
		"",
		n.input.View(),
		"",
		hint,
	))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
