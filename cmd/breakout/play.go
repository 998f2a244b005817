package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoTitle    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Breakout",
	Long: `Start Breakout in this terminal.

Controls:
  Mouse        - Move the paddle, click "Play again" when the game ends
  Left/Right   - Move the paddle (also A/D)
  Enter/Space  - Start, or play again after a win or loss
  P            - Pause
  B/Esc        - Back to the title (while paused or after the game)
  Tab          - Scores (on the title screen)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Wide paddle, slow ball
  normal - Default paddle and ball
  hard   - Narrow paddle, fast ball that speeds up sooner
  fixed  - Ball speed never changes

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --no-title --seed 42
  breakout play --config ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", envCfg.Config, "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", envCfg.Difficulty, "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagNoTitle, "no-title", false, "Skip the title screen")
}

func runPlay(_ *cobra.Command, _ []string) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// Fail early on a broken config rather than inside the alt screen
	if _, err := config.LoadBreakout(flagConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "err", err)
		store = nil
	}

	runErr := tui.Run(store, cfg, tui.SessionOptions{
		GameID:    gameID,
		Player:    playerName(),
		SkipTitle: flagNoTitle,
		Logger:    logger,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// playerName is the local account name stored with session results.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
