// Package config provides YAML-based game configuration loading, environment
// overrides and difficulty management.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all configuration for the Breakout game.
type BreakoutConfig struct {
	Table      TableConfig      `yaml:"table"`
	Grid       GridConfig       `yaml:"grid"`
	Ball       BallConfig       `yaml:"ball"`
	Paddle     PaddleConfig     `yaml:"paddle"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// TableConfig defines the playfield in table units.
type TableConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	LossMargin int `yaml:"loss_margin"` // Ball may fall this far below the table before the session is lost
}

// GridConfig defines the brick grid.
type GridConfig struct {
	Columns     int      `yaml:"columns"`
	Rows        int      `yaml:"rows"`
	BrickWidth  int      `yaml:"brick_width"`
	BrickHeight int      `yaml:"brick_height"`
	OffsetX     int      `yaml:"offset_x"`
	OffsetY     int      `yaml:"offset_y"`
	Colors      []string `yaml:"colors"` // Informational; the 12 variants are fixed
}

// BallConfig defines the ball spawn.
type BallConfig struct {
	StartOffset int `yaml:"start_offset"` // Distance above the table bottom
	VelocityX   int `yaml:"velocity_x"`   // Units per second
	VelocityY   int `yaml:"velocity_y"`   // Units per second, positive is down
	Radius      int `yaml:"radius"`
	TrailLength int `yaml:"trail_length"` // Particle trail length in frames
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width         int `yaml:"width"`
	Height        int `yaml:"height"`
	BottomOffset  int `yaml:"bottom_offset"`  // Distance of the paddle center above the table bottom
	KeyboardSpeed int `yaml:"keyboard_speed"` // Units per tick when steering with keys
}

// GameplayConfig defines scoring.
type GameplayConfig struct {
	BrickPoints int `yaml:"brick_points"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to ball speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty means none.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// Presets lists the selectable presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate checks that the config describes a playable table.
func (c BreakoutConfig) Validate() error {
	var errs []error
	if c.Table.Width <= 0 || c.Table.Height <= 0 {
		errs = append(errs, fmt.Errorf("table size must be positive, got %dx%d", c.Table.Width, c.Table.Height))
	}
	if c.Table.LossMargin < 0 {
		errs = append(errs, errors.New("loss_margin must not be negative"))
	}
	if c.Grid.Columns <= 0 || c.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid must have at least one brick, got %dx%d", c.Grid.Columns, c.Grid.Rows))
	}
	if c.Grid.BrickWidth <= 0 || c.Grid.BrickHeight <= 0 {
		errs = append(errs, errors.New("brick size must be positive"))
	}
	if c.Grid.OffsetX < 0 || c.Grid.OffsetY < 0 {
		errs = append(errs, fmt.Errorf("grid offset must not be negative, got %d,%d", c.Grid.OffsetX, c.Grid.OffsetY))
	}
	if right := c.Grid.OffsetX + c.Grid.Columns*c.Grid.BrickWidth; right > c.Table.Width {
		errs = append(errs, fmt.Errorf("grid right edge %d is past table width %d", right, c.Table.Width))
	}
	if bottom := c.Grid.OffsetY + c.Grid.Rows*c.Grid.BrickHeight; bottom > c.Table.Height {
		errs = append(errs, fmt.Errorf("grid bottom edge %d is past table height %d", bottom, c.Table.Height))
	}
	if c.Paddle.Width <= 0 {
		errs = append(errs, errors.New("paddle width must be positive"))
	}
	if c.Ball.VelocityX == 0 && c.Ball.VelocityY == 0 {
		errs = append(errs, errors.New("ball velocity must not be zero"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid breakout config: %w", errors.Join(errs...))
	}
	return nil
}
