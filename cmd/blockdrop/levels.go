package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/config"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the speed table of the active config",
	Long: `Prints how fast pieces fall at each score tier, after applying
--config and --difficulty. The starting tier is marked with '>'.

Examples:
  blockdrop levels
  blockdrop levels --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadBlockdrop(flagConfig)
	if err != nil {
		return err
	}
	preset, err := config.ParseDifficultyPreset(flagDifficulty)
	if err != nil {
		return err
	}
	config.ApplyBlockdropPreset(&cfg, preset)

	level := cfg.PlayLevel()
	fmt.Printf("Board %dx%d, policy %s", cfg.Board.Width, cfg.Board.Height, cfg.Rules.Policy)
	if level.Fixed {
		fmt.Print(", fixed speed")
	}
	fmt.Println()
	fmt.Println()

	fmt.Printf("    %-5s  %-10s  %-10s  %s\n", "Tier", "Score", "Fall", "Fast drop")
	fmt.Printf("    %-5s  %-10s  %-10s  %s\n", "----", "-----", "----", "---------")
	for i := range level.Speeds {
		from := 0
		if i > 0 {
			from = level.Thresholds[i-1]
		}
		marker := " "
		if i == level.StartTier {
			marker = ">"
		}
		fmt.Printf("  %s %-5d  %-10s  %-10s  %s\n", marker, i+1,
			fmt.Sprintf("%d+", from), level.Speeds[i], level.FastDrop[i])
	}
	return nil
}
