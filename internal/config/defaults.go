package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the hardcoded Breakout configuration.
// It mirrors defaults/breakout.yaml and is used when the embed cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Table: TableConfig{
			Width:      800,
			Height:     600,
			LossMargin: 100,
		},
		Grid: GridConfig{
			Columns:     12,
			Rows:        5,
			BrickWidth:  64,
			BrickHeight: 32,
			OffsetX:     15,
			OffsetY:     15,
			Colors:      []string{"red", "blue", "green", "purple", "silver", "yellow"},
		},
		Ball: BallConfig{
			StartOffset: 60,
			VelocityX:   500,
			VelocityY:   500,
			Radius:      6,
			TrailLength: 4,
		},
		Paddle: PaddleConfig{
			Width:         120,
			Height:        16,
			BottomOffset:  30,
			KeyboardSpeed: 40,
		},
		Gameplay: GameplayConfig{
			BrickPoints: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 600,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
