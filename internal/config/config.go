// Package config provides YAML-based configuration loading and difficulty
// presets for blockdrop.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/blockdrop/internal/blocks"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MinBoardWidth is the narrowest board every spawn point fits on.
const MinBoardWidth = 9

// MinBoardHeight leaves room for a piece to fall at least once.
const MinBoardHeight = 4

// BlockdropConfig contains all configuration for a blockdrop game.
type BlockdropConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Rules      RulesConfig      `yaml:"rules"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GeneratorConfig defines which pieces are dealt and how.
type GeneratorConfig struct {
	Shapes     []string `yaml:"shapes"`
	MagicOdds  int      `yaml:"magic_odds"`
	Randomizer string   `yaml:"randomizer"` // "uniform" or "bag"
}

// RulesConfig selects the collapse policy.
type RulesConfig struct {
	Policy         string `yaml:"policy"` // "gravity" or "lines"
	MagicThreshold int    `yaml:"magic_threshold"`
}

// LevelsConfig is the score to speed table, in milliseconds.
type LevelsConfig struct {
	Thresholds []int `yaml:"thresholds"`
	FallMS     []int `yaml:"fall_ms"`
	FastDropMS []int `yaml:"fast_drop_ms"`
}

// DifficultyConfig defines the starting speed and whether it progresses.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = slowest tier, 1.0 = fastest
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how the speed tier advances.
type ProgressionConfig struct {
	Type string `yaml:"type"` // "score" or "none"
}

// Randomizer and policy names.
const (
	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"

	PolicyGravity = "gravity"
	PolicyLines   = "lines"
)

// Validate reports the first problem found in the configuration.
func (c BlockdropConfig) Validate() error {
	if c.Board.Width < MinBoardWidth {
		return fmt.Errorf("%w: board.width %d is below %d", ErrInvalidConfig, c.Board.Width, MinBoardWidth)
	}
	if c.Board.Height < MinBoardHeight {
		return fmt.Errorf("%w: board.height %d is below %d", ErrInvalidConfig, c.Board.Height, MinBoardHeight)
	}

	if _, err := c.Shapes(); err != nil {
		return fmt.Errorf("%w: generator.shapes: %v", ErrInvalidConfig, err)
	}
	if c.Generator.MagicOdds < 0 {
		return fmt.Errorf("%w: generator.magic_odds must not be negative", ErrInvalidConfig)
	}
	switch c.Generator.Randomizer {
	case "", RandomizerUniform, RandomizerBag:
	default:
		return fmt.Errorf("%w: generator.randomizer %q", ErrInvalidConfig, c.Generator.Randomizer)
	}

	switch c.Rules.Policy {
	case PolicyGravity, PolicyLines:
	default:
		return fmt.Errorf("%w: rules.policy %q", ErrInvalidConfig, c.Rules.Policy)
	}
	if c.Rules.MagicThreshold < 0 {
		return fmt.Errorf("%w: rules.magic_threshold must not be negative", ErrInvalidConfig)
	}

	if err := c.PlayLevel().Validate(); err != nil {
		return fmt.Errorf("%w: levels: %v", ErrInvalidConfig, err)
	}

	if l := c.Difficulty.InitialLevel; l < 0 || l > 1 {
		return fmt.Errorf("%w: difficulty.initial_level %.2f outside [0, 1]", ErrInvalidConfig, l)
	}
	switch c.Difficulty.Progression.Type {
	case "", "score", "none":
	default:
		return fmt.Errorf("%w: difficulty.progression.type %q", ErrInvalidConfig, c.Difficulty.Progression.Type)
	}
	return nil
}

// Shapes resolves the configured shape names. An empty list selects the
// six reference shapes.
func (c BlockdropConfig) Shapes() ([]blocks.Shape, error) {
	if len(c.Generator.Shapes) == 0 {
		return append([]blocks.Shape(nil), blocks.ReferenceShapes...), nil
	}
	out := make([]blocks.Shape, 0, len(c.Generator.Shapes))
	for _, name := range c.Generator.Shapes {
		s, err := blocks.ParseShape(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// PlayLevel builds the timing policy, including the difficulty start tier.
func (c BlockdropConfig) PlayLevel() blocks.PlayLevel {
	level := blocks.PlayLevel{
		Thresholds: append([]int(nil), c.Levels.Thresholds...),
		Speeds:     millis(c.Levels.FallMS),
		FastDrop:   millis(c.Levels.FastDropMS),
	}
	dm := NewDifficultyManager(c.Difficulty)
	level.StartTier = dm.StartTier(len(level.Speeds))
	level.Fixed = !dm.IsEnabled()
	return level
}

func millis(ms []int) []time.Duration {
	out := make([]time.Duration, len(ms))
	for i, v := range ms {
		out[i] = time.Duration(v) * time.Millisecond
	}
	return out
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. The empty string is allowed
// and means "use the config as loaded".
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.25
	case DifficultyHard:
		return 0.75
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
