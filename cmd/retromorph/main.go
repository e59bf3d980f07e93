// retromorph is a terminal arcade where one game morphs into the next:
// Snake becomes Flappy, Flappy becomes a Cat runner, and the loop repeats
// faster every time around.
//
// Usage:
//
//	retromorph                 - Play (same as 'retromorph play')
//	retromorph play            - Play in this terminal
//	retromorph serve           - Start SSH server for remote play
//	retromorph board           - Run a leaderboard server
//	retromorph scores          - Show global and local standings
//	retromorph name <username> - Set the leaderboard username
//	retromorph games           - Describe the melded games
//
// Global flags:
//
//	--fps <rate>          - Set animation frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.retromorph/retromorph.db)
//	--api <url>           - Leaderboard base URL
//	--key <key>           - Leaderboard public key
//	--config <path>       - Engine tuning YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Log destination for interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagAPI        string
	flagKey        string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "retromorph",
	Short: "RetroMorph - one arcade game that keeps turning into another",
	Long: `RetroMorph melds three arcade games into one endless run.
Score points in Snake and the field morphs into Flappy, then into a
Cat runner, then back to a faster Snake.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  board    - Run a leaderboard server
  scores   - View global and local standings
  name     - Set your leaderboard username
  games    - Describe the melded games

Examples:
  retromorph
  retromorph play --difficulty hard
  retromorph serve --ssh :2222
  retromorph board --addr :8787 --key secret
  retromorph scores --api http://localhost:8787 --key secret --follow`,
	Run: runPlay,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Animation frame rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.retromorph/retromorph.db", "Path to the local database")
	pf.StringVar(&flagAPI, "api", "", "Leaderboard base URL (overrides config)")
	pf.StringVar(&flagKey, "key", "", "Leaderboard public key (overrides config)")
	pf.StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "~/.retromorph/retromorph.log", "Log file for interactive commands")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(gamesCmd)
}
