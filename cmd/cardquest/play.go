package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardquest/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game. Every shot or drop costs a point.

Controls:
  Left/Right  - Aim or move
  Space       - Shoot, drop or reveal
  Mouse       - Aim and click
  R           - New card (after a win)
  B/Esc, Q    - Quit

Examples:
  cardquest play bubblepop
  cardquest play plinko --category food
  cardquest play cardreveal --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	kind, err := parseGame(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	bridge := tui.NewBridge()
	a, err := openApp(ctx, bridge, true)
	if err != nil {
		return err
	}
	defer a.close()

	game, err := a.profile.NewGame(kind)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	a.logger.Info("playing", "game", kind, "category", a.profile.Category())
	if err := tui.Run(ctx, game, bridge, runtimeConfig(), a.logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
