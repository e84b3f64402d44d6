package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

var (
	flagScoreLimit int
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and best level results",
	Long: `Display the top campaign scores and the best result for every level.

Examples:
  candy scores
  candy scores --limit 20
  candy scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Number of top scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every stored score and level result")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearAll(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Println("All scores cleared.")
		return
	}

	scores, err := store.TopScores(candy.GameID, flagScoreLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Candy Crush")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'candy play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if best, err := store.HighScore(candy.GameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}

	results, err := store.BestLevelResults()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving level results: %v\n", err)
		return
	}
	if len(results) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Best per level")
	fmt.Println()
	fmt.Printf("  %-5s  %-8s  %-6s  %-8s  %s\n", "Level", "Score", "Moves", "Result", "Attempt")
	fmt.Printf("  %-5s  %-8s  %-6s  %-8s  %s\n", "-----", "-----", "-----", "------", "-------")
	for _, r := range results {
		status := "failed"
		if r.Cleared {
			status = "cleared"
		}
		fmt.Printf("  %-5d  %-8d  %-6d  %-8s  %d\n", r.Level, r.Score, r.MovesUsed, status, r.Attempt)
	}
}
