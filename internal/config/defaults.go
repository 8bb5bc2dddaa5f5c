package config

import (
	_ "embed"
)

//go:embed defaults/handpong.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:      1280,
			Height:     720,
			CellWidth:  16,
			CellHeight: 32,
		},
		Ball: BallConfig{
			Radius:          15,
			MinSpeed:        300,
			MaxSpeed:        1400,
			ServeSpeedMin:   800,
			ServeSpeedRange: 400,
			ServeVertical:   800,
			HistoryLength:   4,
		},
		Paddle: PaddleConfig{
			Width:  20,
			Height: 140,
			Inset:  50,
		},
		Collision: CollisionConfig{
			PaddleSpeedup:      1.1,
			PaddleSpin:         600,
			PaddleVelocityGain: 0.5,
			PaddleJitterX:      50,
			PaddleJitterY:      100,
			HandSpeedup:        1.15,
			HandOffset:         60,
			HandMarginX:        30,
			HandMarginY:        20,
			HandTowardLenient:  200,
			HandJitterX:        100,
			HandJitterY:        150,
			WallJitter:         50,
		},
		AI: AIConfig{
			Easy:          AILevel{Speed: 400, Reaction: 0.40},
			Normal:        AILevel{Speed: 600, Reaction: 0.20},
			Hard:          AILevel{Speed: 800, Reaction: 0.08},
			TrackingBand:  15,
			CenteringBand: 5,
			CenteringRate: 0.4,
		},
		Gameplay: GameplayConfig{
			WinScore:      5,
			TickRate:      60,
			MaxFrameDelta: 250,
			HandFollow:    0.3,
		},
		Difficulty: DifficultyConfig{
			Easy:   0.55,
			Normal: 0.75,
			Hard:   1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
