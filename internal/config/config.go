// Package config provides YAML-based configuration loading and difficulty
// presets for the hand-pong simulation.
package config

import "time"

// Config contains every tunable of the simulation.
type Config struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Ball       BallConfig       `yaml:"ball"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Collision  CollisionConfig  `yaml:"collision"`
	AI         AIConfig         `yaml:"ai"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// CanvasConfig defines the simulated canvas and its mapping onto terminal cells.
type CanvasConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	CellWidth  int `yaml:"cell_width"`  // Canvas pixels per terminal column
	CellHeight int `yaml:"cell_height"` // Canvas pixels per terminal row
}

// BallConfig defines ball size, speed bounds and the serve ranges.
type BallConfig struct {
	Radius          float64 `yaml:"radius"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	ServeSpeedMin   float64 `yaml:"serve_speed_min"`   // Base horizontal serve speed
	ServeSpeedRange float64 `yaml:"serve_speed_range"` // Random extra on top of ServeSpeedMin
	ServeVertical   float64 `yaml:"serve_vertical"`    // Vertical serve spread (full width)
	HistoryLength   int     `yaml:"history_length"`
}

// PaddleConfig defines paddle geometry.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Inset  float64 `yaml:"inset"` // Distance from the canvas border
}

// CollisionConfig defines the energy and spin rules applied on contact.
type CollisionConfig struct {
	PaddleSpeedup      float64 `yaml:"paddle_speedup"`
	PaddleSpin         float64 `yaml:"paddle_spin"`          // vy added per unit of hit offset
	PaddleVelocityGain float64 `yaml:"paddle_velocity_gain"` // Share of paddle vy transferred
	PaddleJitterX      float64 `yaml:"paddle_jitter_x"`
	PaddleJitterY      float64 `yaml:"paddle_jitter_y"`

	HandSpeedup       float64 `yaml:"hand_speedup"`
	HandOffset        float64 `yaml:"hand_offset"`        // Ball placement distance from palm center
	HandMarginX       float64 `yaml:"hand_margin_x"`      // Added to paddle width for the hit box
	HandMarginY       float64 `yaml:"hand_margin_y"`      // Added to paddle height for the hit box
	HandTowardLenient float64 `yaml:"hand_toward_lenient"` // |vx| below this always counts as approaching
	HandJitterX       float64 `yaml:"hand_jitter_x"`
	HandJitterY       float64 `yaml:"hand_jitter_y"`

	WallJitter float64 `yaml:"wall_jitter"`
}

// AIConfig defines the computer opponent per difficulty.
type AIConfig struct {
	Easy          AILevel `yaml:"easy"`
	Normal        AILevel `yaml:"normal"`
	Hard          AILevel `yaml:"hard"`
	TrackingBand  float64 `yaml:"tracking_band"`  // Dead zone while tracking the ball
	CenteringBand float64 `yaml:"centering_band"` // Dead zone while returning to center
	CenteringRate float64 `yaml:"centering_rate"` // Fraction of speed used to re-center
}

// AILevel is the per-difficulty AI tuning.
type AILevel struct {
	Speed    float64 `yaml:"speed"`    // Pixels per second
	Reaction float64 `yaml:"reaction"` // Fraction of canvas width
}

// GameplayConfig defines scoring and timing.
type GameplayConfig struct {
	WinScore      int     `yaml:"win_score"`
	TickRate      int     `yaml:"tick_rate"`       // Fixed physics ticks per second
	MaxFrameDelta int     `yaml:"max_frame_delta"` // Milliseconds; larger deltas count as one tick
	HandFollow    float64 `yaml:"hand_follow"`     // Paddle easing toward the hand per tick
}

// DifficultyConfig holds serve speed multipliers per preset.
type DifficultyConfig struct {
	Easy   float64 `yaml:"easy"`
	Normal float64 `yaml:"normal"`
	Hard   float64 `yaml:"hard"`
}

// FixedStep returns the physics timestep.
func (g GameplayConfig) FixedStep() time.Duration {
	rate := g.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// MaxDelta returns the frame delta cap.
func (g GameplayConfig) MaxDelta() time.Duration {
	return time.Duration(g.MaxFrameDelta) * time.Millisecond
}
