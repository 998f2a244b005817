package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process-level settings read from BREAKOUT_* variables.
// They seed CLI flag defaults; explicit flags still win.
type Env struct {
	DBPath      string        `env:"BREAKOUT_DB"           envDefault:"~/.breakout/scores.db"`
	FPS         int           `env:"BREAKOUT_FPS"          envDefault:"60"`
	Seed        int64         `env:"BREAKOUT_SEED"         envDefault:"0"`
	Config      string        `env:"BREAKOUT_CONFIG"`
	Difficulty  string        `env:"BREAKOUT_DIFFICULTY"`
	LogLevel    string        `env:"BREAKOUT_LOG_LEVEL"    envDefault:"info"`
	SSHAddr     string        `env:"BREAKOUT_SSH_ADDR"     envDefault:":23234"`
	HostKeyPath string        `env:"BREAKOUT_HOST_KEY"`
	IdleTimeout time.Duration `env:"BREAKOUT_IDLE_TIMEOUT" envDefault:"30m"`
}

// DefaultEnv returns the values used when no variables are set.
func DefaultEnv() Env {
	return Env{
		DBPath:      "~/.breakout/scores.db",
		FPS:         60,
		LogLevel:    "info",
		SSHAddr:     ":23234",
		IdleTimeout: 30 * time.Minute,
	}
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return DefaultEnv(), fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	return cfg, nil
}

// ParseEnvFrom loads Env from an explicit variable map. Used by tests.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return DefaultEnv(), fmt.Errorf("config: parse env: %w", err)
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	return cfg, nil
}
