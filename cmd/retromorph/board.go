package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retromorph/internal/boardserver"
	"github.com/vovakirdan/retromorph/internal/storage"
)

var (
	flagBoardAddr string
	flagBoardDB   string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Run a leaderboard server",
	Long: `Serve the leaderboard API that 'play', 'serve' and 'scores' talk to.

Endpoints:
  GET  /authorize     - issue a player identity
  GET  /get?key=K     - all entries, best first
  POST /entry/upload  - submit a score (multipart form)
  GET  /live?key=K    - websocket feed of new entries

Scores are trusted as submitted.

Examples:
  retromorph board
  retromorph board --addr :9000 --key secret --store ./board.db`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func init() {
	def := boardserver.DefaultConfig()
	boardCmd.Flags().StringVar(&flagBoardAddr, "addr", def.Address, "HTTP listen address (host:port)")
	boardCmd.Flags().StringVar(&flagBoardDB, "store", def.DBPath, "Path to the leaderboard database")
}

func runBoard(_ *cobra.Command, _ []string) {
	cfg := boardserver.DefaultConfig()
	cfg.Address = flagBoardAddr
	cfg.DBPath = flagBoardDB
	if flagKey != "" {
		cfg.PublicKey = flagKey
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	server := boardserver.New(cfg, store, stderrLogger("retromorph-board"))

	fmt.Printf("Starting leaderboard server on %s\n", cfg.Address)
	fmt.Printf("Players connect with: retromorph play --api http://localhost%s --key %s\n", cfg.Address, cfg.PublicKey)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}
