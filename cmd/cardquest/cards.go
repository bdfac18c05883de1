package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/platform/tui"
)

var flagPlain bool

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Browse won cards",
	Long: `Show every card of the category with the ones already won marked.

In a terminal the interactive album opens; use --plain (or pipe the
output) for a text listing.

Examples:
  cardquest cards
  cardquest cards --category food --plain`,
	RunE: runCards,
}

func init() {
	cardsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the album as text")
}

func runCards(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	interactive := !flagPlain && term.IsTerminal(int(os.Stdout.Fd()))

	a, err := openApp(ctx, core.NopNotifier{}, interactive)
	if err != nil {
		return err
	}
	defer a.close()

	recent, err := a.recentWins(ctx, 10)
	if err != nil {
		a.logger.Warn("cannot read recent wins", "error", err)
	}

	if interactive {
		rc := runtimeConfig()
		return tui.RunAlbum(a.profile, recent, rc.ScreenW, rc.ScreenH)
	}

	album, err := a.profile.Album(ctx, "")
	if err != nil {
		return err
	}

	fmt.Printf("Card Album - %s (%d/%d)\n", album.Category, album.Won, len(album.Cards))
	fmt.Println()
	for i, c := range album.Cards {
		status := "locked"
		if c.Won {
			status = "won"
		}
		fmt.Printf("  %3d  %-20s  %s\n", i+1, core.CardName(c.Card), status)
	}

	if len(recent) > 0 {
		fmt.Println()
		fmt.Println("Recent wins:")
		for _, w := range recent {
			fmt.Printf("  %s  %-20s  %s/%s\n", w.WonAt.Format("2006-01-02 15:04"), core.CardName(w.Card), w.Category, w.Game)
		}
	}
	return nil
}
