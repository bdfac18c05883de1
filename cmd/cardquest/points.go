package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardquest/internal/core"
)

var pointsCmd = &cobra.Command{
	Use:   "points [add <n>]",
	Short: "Show or grant points",
	Long: `Show the point balance, or add points to it.

Points are spent one per shot, drop or reveal. A negative amount takes
points away; the balance never goes below zero.

Examples:
  cardquest points
  cardquest points add 20`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runPoints,
}

func runPoints(cmd *cobra.Command, args []string) error {
	var grant int
	if len(args) > 0 {
		if args[0] != "add" || len(args) != 2 {
			return fmt.Errorf("usage: cardquest points [add <n>]")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", args[1], err)
		}
		grant = n
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, core.NopNotifier{}, false)
	if err != nil {
		return err
	}
	defer a.close()

	if grant == 0 {
		fmt.Printf("Points: %d\n", a.profile.Points.Balance())
		return nil
	}

	balance, err := a.profile.Points.Add(ctx, grant)
	if err != nil {
		return fmt.Errorf("adding points: %w", err)
	}
	fmt.Printf("Points: %d\n", balance)
	return nil
}
