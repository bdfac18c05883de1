// Package config provides YAML-based tunables for the mini-games and the
// card catalog.
package config

// BubblePopConfig contains all configuration for the Bubble-Pop game.
type BubblePopConfig struct {
	Board     BubblePopBoard     `yaml:"board"`
	Bubbles   BubblePopBubbles   `yaml:"bubbles"`
	Obstacles BubblePopObstacles `yaml:"obstacles"`
	Shooter   BubblePopShooter   `yaml:"shooter"`
	Ball      BallConfig         `yaml:"ball"`
}

// BubblePopBoard defines the fixed board size.
type BubblePopBoard struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Padding float64 `yaml:"padding"` // Wall inset and bubble gap
}

// BubblePopBubbles defines the target grid.
type BubblePopBubbles struct {
	Size float64 `yaml:"size"` // Diameter
	Rows int     `yaml:"rows"`
	Cols int     `yaml:"cols"`
}

// BubblePopObstacles defines the block obstacles.
type BubblePopObstacles struct {
	Count         int   `yaml:"count"`
	WidthBubbles  int   `yaml:"width_bubbles"`  // Block width in grid columns
	CandidateRows []int `yaml:"candidate_rows"` // Rows an obstacle may occupy, each used once
}

// BubblePopShooter defines the shooter at the bottom of the board.
type BubblePopShooter struct {
	Size         float64 `yaml:"size"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from the bottom edge
	Speed        float64 `yaml:"speed"`         // Ball speed per frame
	TurnStep     float64 `yaml:"turn_step"`     // Radians per aim key press
	MaxAngle     float64 `yaml:"max_angle"`     // Aim limit either side of straight up
}

// BallConfig defines a ball.
type BallConfig struct {
	Radius float64 `yaml:"radius"`
}

// PlinkoConfig contains all configuration for the Plinko game.
type PlinkoConfig struct {
	Board         PlinkoBoard   `yaml:"board"`
	Pegs          PlinkoPegs    `yaml:"pegs"`
	Ball          BallConfig    `yaml:"ball"`
	Physics       PlinkoPhysics `yaml:"physics"`
	LaneValues    []int         `yaml:"lane_values"`
	Threshold     int           `yaml:"threshold"`       // Progress needed to win a card
	MaxDropFrames int           `yaml:"max_drop_frames"` // Forces an exit for stuck balls
	CursorStep    float64       `yaml:"cursor_step"`     // Drop cursor movement per key press
}

// PlinkoBoard defines the default board size; hosts may resize it.
type PlinkoBoard struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlinkoPegs defines the peg layout.
type PlinkoPegs struct {
	Rows      int     `yaml:"rows"`
	Divisions int     `yaml:"divisions"` // Board width / peg spacing
	Radius    float64 `yaml:"radius"`
}

// PlinkoPhysics defines stepper tunables for Plinko.
type PlinkoPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	Jitter      float64 `yaml:"jitter"`
	WallDamping float64 `yaml:"wall_damping"`
	PegDamping  float64 `yaml:"peg_damping"`
	ExitInset   float64 `yaml:"exit_inset"`
}

// CardRevealConfig contains all configuration for the Card-Reveal game.
type CardRevealConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// WordMatchConfig contains all configuration for the Word-Match game.
type WordMatchConfig struct {
	Options int `yaml:"options"`         // Cards offered per word, the answer included
	Words   int `yaml:"words_per_round"` // Words asked before the round ends
}

// CatalogConfig maps word categories to their reward cards.
type CatalogConfig struct {
	Categories map[string][]string `yaml:"categories"`
}
