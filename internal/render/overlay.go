package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/engine"
	"github.com/vovakirdan/retromorph/internal/leaderboard"
)

// drawBranding writes the logo into the reserved rectangle. It fades while
// the player sprite is underneath.
func drawBranding(dst *core.Screen, c Canvas, snap engine.Snapshot) {
	col := core.ColorBrightCyan
	if snap.Occluded {
		col = core.ColorDim
	}
	x, y := c.Cell(snap.Branding.X, snap.Branding.Y)
	dst.DrawText(x+1, y, BrandingTxt, col)
}

func drawHUD(dst *core.Screen, c Canvas, snap engine.Snapshot, hud HUD) {
	right := c.OffsetX + c.Cols - 1
	text := fmt.Sprintf(" %s  Score %d  Best %d ", strings.ToUpper(snap.Mode.String()), snap.Score, snap.HighScore)
	if snap.Loop > 0 {
		text = fmt.Sprintf(" Loop %d%s", snap.Loop+1, text)
	}
	dst.DrawText(right-len(text)+1, c.OffsetY, text, core.ColorWhite)

	badge := ""
	switch {
	case hud.Offline && hud.Pending > 0:
		badge = fmt.Sprintf(" OFFLINE (%d queued) ", hud.Pending)
	case hud.Offline:
		badge = " OFFLINE "
	}
	if badge != "" {
		dst.DrawText(right-len(badge)+1, c.OffsetY+1, badge, core.ColorOrange)
	}
}

func drawMenu(dst *core.Screen, snap engine.Snapshot) {
	lines := []string{
		"R E T R O M O R P H",
		"",
		"Snake > Flappy > Cat, forever",
		"",
		"SPACE / ENTER  play",
		"Q  quit",
	}
	if snap.HighScore > 0 {
		lines = append(lines, "", fmt.Sprintf("Best %d", snap.HighScore))
	}
	drawBoxedLines(dst, lines, core.ColorBrightWhite)
}

func drawGameOver(dst *core.Screen, snap engine.Snapshot, hud HUD) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score %d   Best %d", snap.Score, snap.HighScore),
	}
	if hud.NewRecord {
		lines = append(lines, "NEW RECORD!")
	}
	if hud.Username != "" {
		lines = append(lines, "Player "+hud.Username)
	}
	cols := make([]core.Color, len(lines))
	for i := range cols {
		cols[i] = core.ColorWhite
	}
	cols[0] = core.ColorBrightRed

	if len(hud.Standings) > 0 || hud.Offline {
		lines = append(lines, "", "LEADERBOARD")
		cols = append(cols, core.ColorWhite, core.ColorBrightYellow)
		for _, e := range hud.Standings[:min(len(hud.Standings), OverlayStandings)] {
			col := core.ColorWhite
			if e.Mine {
				col = core.ColorBrightGreen
			}
			lines = append(lines, standingLine(e))
			cols = append(cols, col)
		}
		if hud.Offline {
			lines = append(lines, "OFFLINE")
			cols = append(cols, core.ColorOrange)
		}
	}

	if wait := snap.RestartReadyAt.Sub(hud.Now); !hud.Now.IsZero() && wait > 0 {
		secs := int(wait.Seconds()) + 1
		lines = append(lines, "", fmt.Sprintf("Restart in %ds", secs))
	} else {
		lines = append(lines, "", "R / SPACE  restart")
	}
	lines = append(lines, "ESC menu   G games   A about")
	for len(cols) < len(lines) {
		cols = append(cols, core.ColorWhite)
	}
	drawColoredLines(dst, lines, cols)
}

// standingLine formats one leaderboard row with a fixed-width name column.
func standingLine(e leaderboard.Entry) string {
	mark := " "
	if e.Mine {
		mark = "*"
	}
	return fmt.Sprintf("%s#%-2d %-*s %6d", mark, e.Rank, leaderboard.MaxNameLen, e.Name, e.Score)
}

// drawBoxedLines draws a centered box with each line centered inside.
func drawBoxedLines(dst *core.Screen, lines []string, titleColor core.Color) {
	cols := make([]core.Color, len(lines))
	for i := range cols {
		cols[i] = core.ColorWhite
	}
	if len(cols) > 0 {
		cols[0] = titleColor
	}
	drawColoredLines(dst, lines, cols)
}

// drawColoredLines is drawBoxedLines with a color per line.
func drawColoredLines(dst *core.Screen, lines []string, cols []core.Color) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	boxW, boxH := w+4, len(lines)+2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+1+i, l, cols[i])
	}
}
