// Package tui hosts the RetroMorph engine in a terminal using Bubble Tea.
// It owns the animation tick chains, maps keys and mouse events to engine
// input, and serves the game over SSH with Wish.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// engineTickMsg drives Engine.Frame. The chain stops on game over and is
// re-armed when play resumes.
type engineTickMsg time.Time

// frameMsg drives redraws. The chain runs until the program quits.
type frameMsg time.Time

// duckReleaseMsg ends an emulated held duck unless a later key repeat re-armed it.
type duckReleaseMsg struct {
	gen int
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// engineTickCmd schedules the next engine frame.
func engineTickCmd(fps int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return engineTickMsg(t)
	})
}

// frameTickCmd schedules the next redraw.
func frameTickCmd(fps int) tea.Cmd {
	return tea.Tick(frameInterval(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// duckReleaseCmd fires once the held duck has not been refreshed for d.
func duckReleaseCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return duckReleaseMsg{gen: gen}
	})
}
