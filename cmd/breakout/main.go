// breakout is a terminal Breakout game with an SSH server for remote play.
//
// Usage:
//
//	breakout play            - Play in this terminal
//	breakout serve           - Start SSH server for remote play
//	breakout scores          - Show high scores and recent sessions
//	breakout list            - List registered game modes
//
// Global flags (defaults come from BREAKOUT_* environment variables):
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible brick layouts
//	--db <path>           - Set database path (default: ~/.breakout/scores.db)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	envCfg = loadEnv()
	logger *log.Logger
)

// loadEnv reads BREAKOUT_* variables before any flag is registered.
func loadEnv() config.Env {
	cfg, err := config.ParseEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - clear the wall in your terminal",
	Long: `Breakout is the brick-breaking classic for the terminal.

Steer the paddle with the mouse or the arrow keys, keep the ball in play
and clear all 60 bricks. Finished games are recorded to a local database.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View high scores and recent sessions
  list     - Show registered game modes

Examples:
  breakout play
  breakout play --difficulty hard
  breakout serve --ssh :2222
  breakout scores --limit 20`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger = newLogger("breakout")
	},
}

// newLogger builds a stderr logger at the configured level.
func newLogger(prefix string) *log.Logger {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		l.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	l.SetLevel(level)
	return l
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", envCfg.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", envCfg.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envCfg.DBPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", envCfg.LogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// gameID is the mode every command works with.
const gameID = breakout.ID
