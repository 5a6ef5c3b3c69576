package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
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

// GameState is the status a game reports to the platform after every tick.
type GameState struct {
	GameOver bool // The run has ended
	Paused   bool // Simulation is frozen until unpaused
	TooSmall bool // The screen cannot fit the board
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
