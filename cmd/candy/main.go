// candy is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	candy play               - Play the campaign
//	candy menu               - Start menu with level picker and high scores
//	candy levels             - List the levels of the campaign
//	candy scores             - Show high scores and best level results
//	candy serve              - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.candy/scores.db)
//	--log-level <level> - debug, info, warn or error (default: warn)
//
// Defaults for --db, --log-level, --ssh and --config may also come from the
// CANDY_DB, CANDY_LOG_LEVEL, CANDY_SSH_ADDR and CANDY_CONFIG environment
// variables or a .env file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-candy/internal/config"
	"github.com/vovakirdan/tui-candy/internal/core"
	"github.com/vovakirdan/tui-candy/internal/games/candy"
	"github.com/vovakirdan/tui-candy/internal/games/candy/levels"
	"github.com/vovakirdan/tui-candy/internal/storage"
)

const (
	defaultDBPath   = "~/.candy/scores.db"
	defaultLogLevel = "warn"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Game flags shared by play and menu
	flagConfig     string
	flagDifficulty string
	flagLevels     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candy",
	Short: "Candy Crush - match three candies in your terminal",
	Long: `Candy Crush is a match-3 puzzle game for the terminal.

Swap two neighbouring candies to line up three or more of the same kind.
Reach each level's score goal before the moves run out.

Available commands:
  play     - Play the campaign directly
  menu     - Interactive menu with level picker and high scores
  levels   - Show the level catalog
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  candy play
  candy play --level 4 --difficulty easy
  candy menu
  candy serve --ssh :2222
  candy scores`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to scores database (env "+config.EnvDB+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaultLogLevel, "Log level: debug, info, warn, error (env "+config.EnvLogLevel+")")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// addGameFlags registers the flags that shape a game run.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML (env "+config.EnvConfig+")")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagLevels, "levels", "", "Path to a level catalog YAML file or directory")
}

// setup loads .env, fills unset flags from the environment and configures
// logging. It runs before every command.
func setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		log.Warn("could not read .env", "error", err)
	}

	envDefault(cmd, "db", &flagDBPath, config.EnvDB)
	envDefault(cmd, "log-level", &flagLogLevel, config.EnvLogLevel)
	envDefault(cmd, "config", &flagConfig, config.EnvConfig)
	envDefault(cmd, "ssh", &flagSSHAddr, config.EnvSSHAddr)

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	log.SetLevel(level)
	log.SetPrefix("candy")
	return nil
}

// envDefault replaces a flag value with the environment variable when the
// flag exists on cmd and was not given explicitly.
func envDefault(cmd *cobra.Command, name string, dst *string, env string) {
	f := cmd.Flags().Lookup(name)
	if f == nil || f.Changed {
		return
	}
	*dst = config.EnvOr(env, *dst)
}

// applyGameFlags passes --config, --difficulty and --levels to the game.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
	}
	candy.SetConfigPath(flagConfig)
	candy.SetDifficultyPreset(flagDifficulty)

	if flagConfig != "" {
		if _, err := config.LoadCandy(flagConfig); err != nil {
			return err
		}
	}

	if flagLevels != "" {
		catalog, err := levels.NewLoader(flagLevels).Load()
		if err != nil {
			return err
		}
		candy.SetCatalog(catalog)
		log.Debug("loaded level catalog", "path", flagLevels, "levels", catalog.Count())
	}
	return nil
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}
