package config

import (
	_ "embed"
)

//go:embed defaults/bubblepop.yaml
var defaultBubblePopYAML []byte

//go:embed defaults/plinko.yaml
var defaultPlinkoYAML []byte

//go:embed defaults/cardreveal.yaml
var defaultCardRevealYAML []byte

//go:embed defaults/wordmatch.yaml
var defaultWordMatchYAML []byte

//go:embed defaults/categories.yaml
var defaultCategoriesYAML []byte

// DefaultBubblePopConfig returns the default Bubble-Pop configuration.
func DefaultBubblePopConfig() BubblePopConfig {
	return BubblePopConfig{
		Board: BubblePopBoard{
			Width:   374,
			Height:  497,
			Padding: 6,
		},
		Bubbles: BubblePopBubbles{
			Size: 40,
			Rows: 7,
			Cols: 8,
		},
		Obstacles: BubblePopObstacles{
			Count:         2,
			WidthBubbles:  3,
			CandidateRows: []int{2, 3, 4, 5},
		},
		Shooter: BubblePopShooter{
			Size:         20,
			BottomOffset: 30,
			Speed:        10,
			TurnStep:     0.08,
			MaxAngle:     1.45,
		},
		Ball: BallConfig{Radius: 5},
	}
}

// DefaultPlinkoConfig returns the default Plinko configuration.
func DefaultPlinkoConfig() PlinkoConfig {
	return PlinkoConfig{
		Board: PlinkoBoard{
			Width:  400,
			Height: 600,
		},
		Pegs: PlinkoPegs{
			Rows:      10,
			Divisions: 8,
			Radius:    5,
		},
		Ball: BallConfig{Radius: 10},
		Physics: PlinkoPhysics{
			Gravity:     0.6,
			Jitter:      0.3,
			WallDamping: 0.8,
			PegDamping:  1.0,
			ExitInset:   20,
		},
		LaneValues:    []int{1, 2, 5, 10, 5, 2, 1},
		Threshold:     25,
		MaxDropFrames: 900,
		CursorStep:    10,
	}
}

// DefaultCardRevealConfig returns the default Card-Reveal configuration.
func DefaultCardRevealConfig() CardRevealConfig {
	return CardRevealConfig{Rows: 4, Cols: 4}
}

// DefaultWordMatchConfig returns the default Word-Match configuration.
func DefaultWordMatchConfig() WordMatchConfig {
	return WordMatchConfig{Options: 4, Words: 10}
}

// DefaultCatalogConfig returns a minimal built-in card catalog.
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		Categories: map[string][]string{
			"animals": {"cat.png", "dog.png", "fox.png", "owl.png"},
		},
	}
}
