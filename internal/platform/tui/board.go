package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/retromorph/internal/leaderboard"
)

// boardOp names the leaderboard call a boardResultMsg reports on.
type boardOp int

const (
	opFetch boardOp = iota
	opCommit
	opRegister
)

// boardResultMsg carries the outcome of a leaderboard command back into
// Update. The client has already recorded offline/pending state.
type boardResultMsg struct {
	op  boardOp
	err error
}

// liveEntryMsg is one entry pushed by the live feed.
type liveEntryMsg struct {
	entry leaderboard.Entry
	ch    <-chan tea.Msg // Feed to keep waiting on
}

// liveClosedMsg reports that the live feed ended.
type liveClosedMsg struct {
	err error
}

func fetchCmd(ctx context.Context, c *leaderboard.Client) tea.Cmd {
	return func() tea.Msg {
		return boardResultMsg{op: opFetch, err: c.FetchGlobal(ctx)}
	}
}

func commitCmd(ctx context.Context, c *leaderboard.Client, name string, score int) tea.Cmd {
	return func() tea.Msg {
		return boardResultMsg{op: opCommit, err: c.CommitScore(ctx, name, score)}
	}
}

func registerCmd(ctx context.Context, c *leaderboard.Client, name string, score int) tea.Cmd {
	return func() tea.Msg {
		return boardResultMsg{op: opRegister, err: c.RegisterUser(ctx, name, score)}
	}
}

// followLive starts the live feed in the background. Entries arrive on the
// returned channel, which is closed when the feed ends.
func followLive(ctx context.Context, c *leaderboard.Client) <-chan tea.Msg {
	ch := make(chan tea.Msg, 16)
	go func() {
		defer close(ch)
		err := c.Follow(ctx, func(e leaderboard.Entry) {
			select {
			case ch <- liveEntryMsg{entry: e}:
			case <-ctx.Done():
			}
		})
		select {
		case ch <- liveClosedMsg{err: err}:
		case <-ctx.Done():
		}
	}()
	return ch
}

// waitForLive returns a command that waits for the next live feed message.
func waitForLive(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		msg, ok := <-ch
		if !ok {
			return liveClosedMsg{}
		}
		if e, ok := msg.(liveEntryMsg); ok {
			e.ch = ch
			return e
		}
		return msg
	}
}
