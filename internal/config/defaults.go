package config

import (
	_ "embed"
)

//go:embed defaults/blockdrop.yaml
var defaultBlockdropYAML []byte

// DefaultBlockdropConfig returns the built-in configuration: a 12x24 board,
// the six reference shapes, the gravity rule and the basic speed table.
func DefaultBlockdropConfig() BlockdropConfig {
	return BlockdropConfig{
		Board: BoardConfig{
			Width:  12,
			Height: 24,
		},
		Generator: GeneratorConfig{
			Shapes:     []string{"L", "J", "I", "O", "T", "SZ"},
			MagicOdds:  10,
			Randomizer: RandomizerUniform,
		},
		Rules: RulesConfig{
			Policy:         PolicyGravity,
			MagicThreshold: 3,
		},
		Levels: LevelsConfig{
			Thresholds: []int{5, 12, 20, 32},
			FallMS:     []int{800, 600, 400, 200, 100},
			FastDropMS: []int{80, 60, 40, 20, 5},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type: "score",
			},
		},
	}
}
