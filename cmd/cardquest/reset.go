package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardquest/internal/core"
)

var resetCmd = &cobra.Command{
	Use:   "reset [game]",
	Short: "Forget saved game progress",
	Long: `Forget the saved session of one game, or of every game.
The next start picks a new card. Points and won cards are kept.

Examples:
  cardquest reset plinko
  cardquest reset`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	var kinds []core.GameKind
	if len(args) == 1 {
		kind, err := parseGame(args[0])
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, core.NopNotifier{}, false)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.profile.Reset(ctx, kinds...); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	if len(kinds) == 0 {
		fmt.Println("Progress reset for every game.")
	} else {
		fmt.Printf("Progress reset for %s.\n", kinds[0])
	}
	return nil
}
