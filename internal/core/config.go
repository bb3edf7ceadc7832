package core

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // screen width in characters
	ScreenH  int   // screen height in characters
	TickRate int   // simulation steps per second
	Seed     int64 // RNG seed; the same seed and inputs replay the same game
}

// DefaultConfig returns an 80x24 screen at 60 steps per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the progress summary the platform shows and persists.
type GameState struct {
	Lines    int // rows cleared
	Pieces   int // pieces locked
	Level    int
	Ticks    int // gravity ticks applied
	GameOver bool
	Paused   bool
}

// StepResult reports what one simulation step did.
type StepResult struct {
	State   GameState
	Locked  int // pieces locked during this step
	Cleared int // rows cleared during this step
}
