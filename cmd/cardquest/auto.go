package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cardquest/internal/core"
)

var (
	flagFrames int
	flagGrant  int
)

var autoCmd = &cobra.Command{
	Use:   "auto <game>",
	Short: "Play a game headless with random input",
	Long: `Step a game without a terminal UI, aiming at random and firing now and
then, until the session resolves or the frame budget runs out. Progress
and points are saved like in a normal game.

Examples:
  cardquest auto plinko --grant 50
  cardquest auto bubblepop --frames 10000 --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runAuto,
}

func init() {
	autoCmd.Flags().IntVar(&flagFrames, "frames", 3000, "Maximum frames to simulate")
	autoCmd.Flags().IntVar(&flagGrant, "grant", 0, "Points to add before playing")
}

// autoFireEvery is how many frames pass between shots.
const autoFireEvery = 30

func runAuto(cmd *cobra.Command, args []string) error {
	kind, err := parseGame(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rec := &core.Recorder{}
	a, err := openApp(ctx, rec, false)
	if err != nil {
		return err
	}
	defer a.close()

	if flagGrant != 0 {
		if _, err := a.profile.Points.Add(ctx, flagGrant); err != nil {
			return fmt.Errorf("adding points: %w", err)
		}
	}

	game, err := a.profile.NewGame(kind)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	rc := core.DefaultConfig()
	rc.Seed = flagSeed
	if err := game.Load(ctx, rc); err != nil {
		return fmt.Errorf("loading game: %w", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	state := game.State()
	frame := 0
	for ; frame < flagFrames && !state.Resolved; frame++ {
		in := core.NewInputFrame()
		switch rng.Intn(3) {
		case 0:
			in.Set(core.ActionLeft)
		case 1:
			in.Set(core.ActionRight)
		}
		if frame%autoFireEvery == 0 && !state.Busy {
			in.Set(core.ActionFire)
		}
		state = game.Step(in, 1).State

		if state.Points == 0 && !state.Busy && rec.Count(core.SignalOutOfPoints) > 0 {
			break
		}
	}

	fmt.Printf("%s after %d frames\n", game.Title(), frame)
	fmt.Printf("  Phase:    %s\n", state.Phase)
	fmt.Printf("  Card:     %s\n", core.CardName(state.Card))
	fmt.Printf("  Progress: %s %.0f%%\n", core.ProgressBar(state.Progress, 20), state.Progress*100)
	fmt.Printf("  Points:   %d\n", state.Points)
	if state.WonCard != "" {
		fmt.Printf("  Won:      %s\n", core.CardName(state.WonCard))
	}
	if rec.Count(core.SignalOutOfPoints) > 0 {
		fmt.Println("Out of points. Earn more with 'cardquest play wordmatch'.")
	}
	return nil
}
