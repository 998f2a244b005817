package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent sessions",
	Long: `Display the best scores, the latest finished sessions and the
won/lost totals.

Examples:
  breakout scores
  breakout scores --limit 20
  breakout scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows per table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all high scores")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("High scores cleared.")
		return
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Breakout")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'breakout play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	results, err := store.RecentSessionResults(gameID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent Sessions")
	fmt.Println()
	fmt.Printf("  %-16s  %-12s  %-7s  %s\n", "Date", "Player", "Outcome", "Bricks")
	fmt.Printf("  %-16s  %-12s  %-7s  %s\n", "----", "------", "-------", "------")
	for _, r := range results {
		fmt.Printf("  %-16s  %-12s  %-7s  %d/%d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Player, r.Outcome, r.BricksCleared, r.BricksTotal)
	}

	counts, err := store.OutcomeCounts(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Won: %d  Lost: %d\n", counts["won"], counts["lost"])
	}
}
