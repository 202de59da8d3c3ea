package core

// RuntimeConfig describes the terminal and clock a viewer runs with.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Frames per second (default 30)
	Seed     int64   // RNG seed, 0 means time based
	Speed    float64 // Game-time multiplier (1 = real time)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
		Speed:    1,
	}
}

// FrameMS returns the nominal frame length in milliseconds.
func (c RuntimeConfig) FrameMS() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 30
	}
	return 1000 / float64(c.TickRate)
}
