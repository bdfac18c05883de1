package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Simulation ticks per second (default 60)
	Seed     int64   // RNG seed for deterministic gameplay
	BoardW   float64 // Host-provided board width; 0 means the game's default
	BoardH   float64 // Host-provided board height; 0 means the game's default
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase    string  // Session phase name (loading, playing, resolved, ...)
	Points   int     // Current point balance
	Progress float64 // Progress toward the reward card, 0..1
	Card     string  // Card currently being played for
	WonCard  string  // Card won by the last resolution, if any
	Busy     bool    // An entity is in flight and input is partly blocked
	Resolved bool    // The card was won; the session must be reloaded
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
