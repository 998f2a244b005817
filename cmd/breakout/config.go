package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
)

var flagCheck string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config or check a custom one",
	Long: `Print the built-in Breakout config as YAML, ready to be copied to
~/.breakout/configs/breakout.yaml and edited.

With --check, load and validate a config file instead.

Examples:
  breakout config > ~/.breakout/configs/breakout.yaml
  breakout config --check ./my-breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCheck, "check", "", "Validate this config file and exit")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagCheck == "" {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := config.LoadBreakout(flagCheck)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: ok (%dx%d grid on a %dx%d table)\n",
		flagCheck, cfg.Grid.Columns, cfg.Grid.Rows, cfg.Table.Width, cfg.Table.Height)
}
