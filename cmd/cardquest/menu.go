package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardquest/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Card Quest with a game picker menu",
	Long: `Start Card Quest in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Leaving a game returns to the menu; its progress is kept.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab/C        - Card album
  Q            - Quit

Examples:
  cardquest menu
  cardquest menu --fps 30
  cardquest menu --db ./cardquest.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	bridge := tui.NewBridge()
	a, err := openApp(ctx, bridge, true)
	if err != nil {
		return err
	}
	defer a.close()

	return tui.RunSession(tui.SessionConfig{
		Context: ctx,
		Profile: a.profile,
		Bridge:  bridge,
		Wins:    a.recentWins,
		Runtime: runtimeConfig(),
		Logger:  a.logger,
	})
}
