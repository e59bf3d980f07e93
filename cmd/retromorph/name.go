package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retromorph/internal/leaderboard"
	"github.com/vovakirdan/retromorph/internal/storage"
)

var flagClearName bool

var nameCmd = &cobra.Command{
	Use:   "name [username]",
	Short: "Show or set your leaderboard username",
	Long: `Without arguments, prints the stored username. With one, validates
and stores it (3-10 characters) and, when a leaderboard is configured,
registers an identity for it. --clear forgets the stored username so the
next scoring game asks again; the leaderboard identity is kept.

Examples:
  retromorph name
  retromorph name pixel
  retromorph name --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runName,
}

func init() {
	nameCmd.Flags().BoolVar(&flagClearName, "clear", false, "Forget the stored username")
}

// clearUsername removes the local player's stored username.
func clearUsername(store *storage.Store) error {
	return store.KV(localNamespace).Delete(leaderboard.KeyUsername)
}

func runName(_ *cobra.Command, args []string) {
	engineCfg, err := loadEngineConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	} else {
		fmt.Fprintln(os.Stderr, "Warning: the username will not be remembered")
	}
	if flagClearName {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: no database to clear")
			os.Exit(1)
		}
		if err := clearUsername(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("Username cleared")
		return
	}

	opts := leaderboardOptions(engineCfg, stderrLogger("retromorph"))
	board := newBoard(store, opts)

	if len(args) == 0 {
		if name := board.Username(); name != "" {
			fmt.Println(name)
			return
		}
		fmt.Println("No username set. Run 'retromorph name <username>'.")
		return
	}

	if opts.BaseURL == "" {
		if err := board.SetUsername(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Username set to %s\n", board.Username())
		return
	}

	err = board.RegisterUser(context.Background(), args[0], 0)
	switch {
	case errors.Is(err, leaderboard.ErrInvalidName):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	case err != nil:
		fmt.Printf("Username set to %s (leaderboard offline, identity will be requested later)\n", board.Username())
	default:
		fmt.Printf("Username set to %s\n", board.Username())
	}
}
