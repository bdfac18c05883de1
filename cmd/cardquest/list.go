package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardquest/internal/core"
	"github.com/vovakirdan/cardquest/internal/progress"
	"github.com/vovakirdan/cardquest/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game with the card each one is currently working toward,
along with the points balance of the local profile.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	ctx := cmd.Context()
	a, err := openApp(ctx, core.NopNotifier{}, false)
	if err != nil {
		return err
	}
	defer a.close()

	rows := make([][3]string, 0, len(games)+1)
	rows = append(rows, [3]string{"ID", "Title", "Working toward"})
	for _, g := range games {
		rows = append(rows, [3]string{g.ID, g.Title, describeProgress(ctx, a.profile.Progress, g.Kind)})
	}

	var idW, titleW int
	for _, r := range rows {
		idW = max(idW, len(r[0]))
		titleW = max(titleW, len(r[1]))
	}

	fmt.Printf("Games - category %s, %d points\n\n", a.profile.Category(), a.profile.Points.Balance())
	for i, r := range rows {
		fmt.Printf("  %-*s  %-*s  %s\n", idW, r[0], titleW, r[1], r[2])
		if i == 0 {
			fmt.Printf("  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "--------------")
		}
	}

	fmt.Println()
	fmt.Println("Run 'cardquest play <id>' to play a game.")
	return nil
}

// describeProgress summarizes a game's saved card and how close it is.
func describeProgress(ctx context.Context, store *progress.Store, kind core.GameKind) string {
	const fresh = "new card on next play"
	switch kind {
	case core.GameBubblePop:
		p, ok := store.LoadBubblePop(ctx)
		if !ok || p.NeedNewCard || p.CurrentCard == "" {
			return fresh
		}
		return fmt.Sprintf("%s, %d/%d bubbles", core.CardName(p.CurrentCard), p.Cleared, p.TotalVisible)
	case core.GamePlinko:
		p, ok := store.LoadPlinko(ctx)
		if !ok || p.NeedNewCard || p.CurrentCard == "" {
			return fresh
		}
		return fmt.Sprintf("%s, fill %d", core.CardName(p.CurrentCard), p.Fill)
	case core.GameCardReveal:
		p, ok := store.LoadCardReveal(ctx)
		if !ok || p.NeedNewCard || p.CurrentCard == "" {
			return fresh
		}
		return fmt.Sprintf("%s, %d tiles shown", core.CardName(p.CurrentCard), p.RevealedCount())
	}
	return "-"
}
