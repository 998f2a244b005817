package core

// RuntimeConfig is passed to games at initialization.
// Games use it to adapt to the terminal size and to seed their RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the status a game reports to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the current session has ended (won or lost)
	Won      bool // Whether the session ended with every brick cleared
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
