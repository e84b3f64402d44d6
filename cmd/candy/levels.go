package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of the campaign",
	Long: `List every level with its score goal, move budget, board size and
number of candy types.

Examples:
  candy levels
  candy levels --levels ./my-levels.yaml`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a level catalog YAML file or directory")
}

func runLevels(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	catalog := candy.ActiveCatalog()

	fmt.Println("Candy Crush levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-18s  %-10s  %6s  %5s  %5s  %5s\n", "#", "Name", "Difficulty", "Goal", "Moves", "Board", "Types")
	for i, lvl := range catalog.All() {
		fmt.Printf("  %-3d  %-18s  %-10s  %6d  %5d  %5s  %5d\n",
			i+1, lvl.Name, lvl.Difficulty, lvl.ScoreGoal, lvl.MoveBudget,
			fmt.Sprintf("%dx%d", lvl.Rows, lvl.Cols), lvl.NumTypes)
	}
	fmt.Println()
	fmt.Println("Start a level with: candy play --level <n>")

	if game, err := registry.Create(candy.GameID); err == nil {
		if c, ok := game.(registry.Controller); ok {
			fmt.Println()
			fmt.Println("Controls:")
			fmt.Println("  " + c.Controls())
		}
	}
}
