// blockdrop is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	blockdrop list              - List available modes
//	blockdrop play [mode]       - Play a mode (default: blockdrop)
//	blockdrop menu              - Pick modes and browse replays interactively
//	blockdrop serve             - Start SSH server for remote play
//	blockdrop levels            - Show the speed table of the active config
//	blockdrop replay list       - List stored replays
//	blockdrop replay show <id>  - Show one replay
//	blockdrop replay run <id>   - Re-simulate a replay and verify its outcome
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/blockdrop.db)
//	--config <path>       - Custom blockdrop YAML config
//	--difficulty <preset> - easy, normal, hard or fixed
//	--debug               - Verbose logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/games/blockdrop"
	"github.com/vovakirdan/blockdrop/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "blockdrop",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockdrop",
	Short: "Blockdrop - a falling-block puzzle in your terminal",
	Long: `Blockdrop drops polyominoes onto a grid. Full rows collapse; in the
standard mode, runs of full rows holding enough magic blocks also pull every
floating block down.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode picker and replay board
  serve    - Start SSH server for remote play
  levels   - Show the speed table
  replay   - List, show and verify recorded games

Examples:
  blockdrop play
  blockdrop play blockdrop_classic --difficulty hard
  blockdrop menu
  blockdrop serve --ssh :2222
  blockdrop replay run 3f2a9c1e-...`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/blockdrop.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom blockdrop config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(replayCmd)
}

// setup validates global flags and wires them into the game and TUI packages.
func setup(_ *cobra.Command, _ []string) error {
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParseDifficultyPreset(flagDifficulty); err != nil {
		return err
	}

	blockdrop.SetLogger(logger)
	blockdrop.SetConfigPath(flagConfig)
	blockdrop.SetDifficultyPreset(flagDifficulty)
	tui.SetLogger(logger)
	return nil
}
