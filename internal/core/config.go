package core

// A terminal cell is treated as a 10x20 pixel tile when converting the
// terminal size into a virtual viewport.
const (
	CellPixelsX = 10
	CellPixelsY = 20
)

// RuntimeConfig contains configuration passed to the engine at startup.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Animation frames per second (default 60)
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

// Viewport returns the virtual pixel size of the terminal screen.
func (c RuntimeConfig) Viewport() (float64, float64) {
	return float64(c.ScreenW * CellPixelsX), float64(c.ScreenH * CellPixelsY)
}
