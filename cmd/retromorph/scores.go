package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/retromorph/internal/leaderboard"
	"github.com/vovakirdan/retromorph/internal/platform/tui"
	"github.com/vovakirdan/retromorph/internal/storage"
)

var (
	flagFollow bool
	flagPlain  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show global and local standings",
	Long: `Fetch the global leaderboard and show it next to your local high
scores. When the leaderboard cannot be reached the last cached standings
are shown instead.

In a terminal the standings open in an interactive table; --plain (or a
redirected stdout) prints them instead. --follow keeps the table open and
streams new entries as they are uploaded.

Examples:
  retromorph scores
  retromorph scores --follow
  retromorph scores --plain --limit 5`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagFollow, "follow", false, "Stream new entries from the live feed")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print standings instead of opening the table")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Local scores to print")
}

func runScores(_ *cobra.Command, _ []string) {
	engineCfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var board *leaderboard.Client
	opts := leaderboardOptions(engineCfg, nil)
	if opts.BaseURL != "" {
		board = newBoard(store, opts)
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		err := tui.RunScoreboard(tui.ScoreboardOptions{
			Board:  board,
			Store:  store,
			Player: storage.LocalPlayer,
			Follow: flagFollow,
			Width:  width,
			Height: height,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if board != nil {
		if err := board.FetchGlobal(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: leaderboard offline, showing cached standings")
		}
		printGlobal(os.Stdout, board)
		fmt.Println()
	}
	if store != nil {
		printLocal(os.Stdout, store, flagLimit)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mineStyle   = cellStyle.Foreground(lipgloss.Color("229")).Bold(true)
)

func printGlobal(w io.Writer, board *leaderboard.Client) {
	entries := board.Standings()
	stats := board.Stats()

	fmt.Fprintln(w, "Global Leaderboard")
	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores yet.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Rank", "Player", "Score").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(entries) && entries[row].Mine {
				return mineStyle
			}
			return cellStyle
		})
	for _, e := range entries {
		t.Row("#"+strconv.Itoa(e.Rank), e.Name, strconv.Itoa(e.Score))
	}
	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "%d games by %d players\n", stats.TotalGames, stats.TotalPlayers)
	if n := len(board.Pending()); n > 0 {
		fmt.Fprintf(w, "%d of your scores are waiting to upload\n", n)
	}
}

func printLocal(w io.Writer, store *storage.Store, limit int) {
	scores, err := store.TopScores(storage.LocalPlayer, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Fprintln(w, "Local High Scores")
	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w, "Play 'retromorph play' to set the first high score!")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Rank", "Score", "Mode", "Loop", "Date").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for i, s := range scores {
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			s.Mode,
			strconv.Itoa(s.Loop+1),
			s.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	fmt.Fprintln(w, t.Render())

	if st, err := store.Stats(storage.LocalPlayer); err == nil {
		fmt.Fprintf(w, "Best: %d  Games: %d  Average: %.0f\n", st.HighScore, st.Games, st.AvgScore)
	}
}
