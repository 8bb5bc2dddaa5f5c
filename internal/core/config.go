package core

// RuntimeConfig contains host-supplied settings passed to the simulation at
// session start and on every resize.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in characters
	ScreenH  int   // Terminal height in characters
	CanvasW  int   // Simulation canvas width in pixels
	CanvasH  int   // Simulation canvas height in pixels
	TickRate int   // Display refresh rate requested from the host (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		CanvasW:  1280,
		CanvasH:  720,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// WithScreen returns a copy of c sized for a terminal of w x h cells, mapping
// every cell to cellW x cellH canvas pixels.
func (c RuntimeConfig) WithScreen(w, h int, cellW, cellH int) RuntimeConfig {
	c.ScreenW = w
	c.ScreenH = h
	c.CanvasW = w * cellW
	c.CanvasH = h * cellH
	return c
}
