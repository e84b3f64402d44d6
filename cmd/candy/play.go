package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/platform/tui"
	"github.com/vovakirdan/tui-candy/internal/registry"
)

var flagLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start the Candy Crush campaign.

Controls:
  Arrows/WASD  - Move cursor
  Space/Enter  - Select candy, swap with the selected neighbour
  Mouse click  - Select or swap the clicked candy
  H            - Show a hint
  T            - Toggle auto-play
  X            - Shuffle the board
  P            - Pause
  R            - Retry / restart
  Esc          - Back (give up a failed level)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Lower score goals, more moves
  normal - Level values as defined
  hard   - Higher score goals, fewer moves

Examples:
  candy play
  candy play --level 5
  candy play --difficulty hard
  candy play --levels ./my-levels.yaml
  candy play --config ./my-candy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start from (1-based)")
	addGameFlags(playCmd)
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := applyGameFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	count := candy.ActiveCatalog().Count()
	if flagLevel < 1 || flagLevel > count {
		fmt.Fprintf(os.Stderr, "Error: level %d out of range (1-%d)\n", flagLevel, count)
		os.Exit(1)
	}
	candy.SetStartLevel(flagLevel)

	game, err := registry.Create(candy.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	log.Debug("starting game", "level", flagLevel, "difficulty", flagDifficulty)

	_, runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
