// cardquest is a terminal card-collecting game for early readers.
//
// Usage:
//
//	cardquest list              - List available games
//	cardquest play <game>       - Play a game
//	cardquest menu              - Start menu to pick games interactively
//	cardquest cards             - Browse the card album
//	cardquest points [add <n>]  - Show or grant points
//	cardquest reset [game]      - Forget saved game progress
//	cardquest auto <game>       - Play a game headless with random input
//	cardquest serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.cardquest/cardquest.db)
//	--category <name>   - Word category to collect (default: animals)
//	--config <dir>      - Directory with custom YAML configs
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardquest/internal/profile"

	// Import games to register them
	_ "github.com/vovakirdan/cardquest/internal/games/bubblepop"
	_ "github.com/vovakirdan/cardquest/internal/games/cardreveal"
	_ "github.com/vovakirdan/cardquest/internal/games/plinko"
	_ "github.com/vovakirdan/cardquest/internal/games/wordmatch"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagCategory  string
	flagConfigDir string
	flagLogLevel  string
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cardquest",
	Short: "Card Quest - collect word cards by playing small games",
	Long: `Card Quest is a terminal game for early readers. Every game spends
points to play and rewards a word card from the chosen category.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  cards    - Browse won cards
  points   - Show or grant points
  reset    - Forget saved game progress
  auto     - Play a game headless with random input
  serve    - Start SSH server for remote play

Word Match earns points; the other games spend them on cards.

Examples:
  cardquest list
  cardquest play wordmatch
  cardquest points add 20
  cardquest play plinko
  cardquest menu --category food
  cardquest serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cardquest/cardquest.db", "Path to the profile database")
	rootCmd.PersistentFlags().StringVar(&flagCategory, "category", profile.DefaultCategory, "Word category to collect")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "Directory with custom YAML configs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(pointsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(autoCmd)
	rootCmd.AddCommand(serveCmd)
}
