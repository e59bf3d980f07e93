package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/retromorph/internal/core"
	"github.com/vovakirdan/retromorph/internal/leaderboard"
	"github.com/vovakirdan/retromorph/internal/platform/tui"
	"github.com/vovakirdan/retromorph/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play RetroMorph",
	Long: `Start RetroMorph in this terminal. The menu runs an autopilot demo
until you press Space or Enter.

Controls:
  Arrows/hjkl  - Steer the snake
  Space/Up     - Flap / jump
  Down         - Duck (cat runner)
  Mouse        - Tap to flap or jump, press low to duck
  R            - Restart after game over (after a short cooldown)
  Ctrl+R       - Restart immediately
  Esc/B        - Back to the demo menu
  F            - Toggle fullscreen
  ?            - Show key help
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower speeds
  normal - Default speeds
  hard   - Faster speeds
  fixed  - No loop-count speed-up

Examples:
  retromorph play
  retromorph play --difficulty hard
  retromorph play --api http://localhost:8787 --key secret
  retromorph play --config ./my-retromorph.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	engineCfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	logger, closeLog := fileLogger("retromorph")
	defer closeLog()

	store := openStore()

	var board *leaderboard.Client
	opts := leaderboardOptions(engineCfg, logger)
	if opts.BaseURL != "" {
		board = newBoard(store, opts)
	}

	page, runErr := tui.Run(tui.Options{
		Engine: engineCfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Board:     board,
		Store:     store,
		Player:    storage.LocalPlayer,
		Logger:    logger,
		Navigator: func(p tui.Page) { logger.Info("navigate", "page", p) },
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	switch page {
	case tui.PageGames:
		printGames(os.Stdout)
	case tui.PageAbout:
		printAbout(os.Stdout)
	}
}
