package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.breakout/configs/breakout.yaml ->
// ./configs/breakout.yaml -> embedded default.
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	// Unset keys keep their default values.
	cfg := DefaultBreakoutConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if userCfgPath := userConfigPath("breakout.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	if loaded, ok := tryLoad(filepath.Join("configs", "breakout.yaml")); ok {
		return loaded, nil
	}

	embedded := DefaultBreakoutConfig()
	if err := yaml.Unmarshal(defaultBreakoutYAML, &embedded); err != nil {
		return DefaultBreakoutConfig(), nil
	}
	return embedded, nil
}

// tryLoad reads an optional config file. Missing, unparsable or invalid files
// are skipped.
func tryLoad(path string) (BreakoutConfig, bool) {
	cfg := DefaultBreakoutConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breakout", "configs", filename)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Paddle.Width = 160
		cfg.Ball.VelocityX = 400
		cfg.Ball.VelocityY = 400
	case DifficultyHard:
		cfg.Paddle.Width = 90
		cfg.Ball.VelocityX = 620
		cfg.Ball.VelocityY = 620
	}
}
