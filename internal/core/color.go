package core

// Color is the foreground color of a screen cell. The platform maps each
// value to a terminal color.
type Color uint8

// Base palette.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorGray
)

// Colors by what they draw, shared by every game so a ball looks the same
// in Bubble-Pop and Plinko.
const (
	ColorBall     = ColorRed          // Moving ball
	ColorTarget   = ColorGreen        // Bubble or block still in play
	ColorObstacle = ColorGray         // Walls, guides and lane dividers
	ColorPeg      = ColorWhite        // Plinko pegs
	ColorCursor   = ColorBlue         // Shooter, drop point or selected block
	ColorScore    = ColorYellow       // Points and lane values
	ColorReward   = ColorBrightGreen  // Won card and winning lane
	ColorTitle    = ColorCyan         // Game titles
	ColorBanner   = ColorBrightYellow // Message box titles
)
