package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retromorph/internal/config"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "Describe the melded games",
	Long:  `Shows the score ranges of Snake, Flappy and the Cat runner within one loop.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		printGames(os.Stdout)
	},
}

func printGames(w io.Writer) {
	cfg, err := loadEngineConfig()
	if err != nil {
		cfg = config.DefaultEngineConfig()
	}
	c := cfg.Cycle

	fmt.Fprintln(w, "RetroMorph games:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-7s  %-11s  %s\n", "Mode", "Score", "Goal")
	fmt.Fprintf(w, "  %-7s  %-11s  %s\n", "----", "-----", "----")
	fmt.Fprintf(w, "  %-7s  %-11s  %s\n", "Snake", fmt.Sprintf("%d-%d", 0, c.SnakeEnd-1), "eat food, avoid walls and your tail")
	fmt.Fprintf(w, "  %-7s  %-11s  %s\n", "Flappy", fmt.Sprintf("%d-%d", c.SnakeEnd, c.FlappyEnd-1), "flap through the pipe gaps")
	fmt.Fprintf(w, "  %-7s  %-11s  %s\n", "Cat", fmt.Sprintf("%d-%d", c.FlappyEnd, c.Length-1), "jump cacti, duck under birds")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Every %d points the loop starts over, a little faster.\n", c.Length)
	fmt.Fprintln(w, "Run 'retromorph play' to start.")
}

func printAbout(w io.Writer) {
	fmt.Fprintln(w, "RetroMorph")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "One run, three arcade classics. The play field morphs from Snake")
	fmt.Fprintln(w, "into Flappy into a Cat runner as your score climbs, and the menu")
	fmt.Fprintln(w, "plays itself until you take over.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Play over SSH with 'retromorph serve' and keep a shared")
	fmt.Fprintln(w, "leaderboard with 'retromorph board'.")
}
