package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBlockdrop loads blockdrop configuration. Files are decoded over the
// built-in defaults, so they only need the keys they change.
// Search order: customPath -> ~/.arcade/configs/blockdrop.yaml -> ./configs/blockdrop.yaml -> embedded default
func LoadBlockdrop(customPath string) (BlockdropConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BlockdropConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decode(data)
		if err != nil {
			return BlockdropConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("blockdrop.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decode(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/blockdrop.yaml"); err == nil {
		if cfg, err := decode(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := decode(defaultBlockdropYAML)
	if err != nil {
		return DefaultBlockdropConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decode unmarshals data over the defaults and validates the result.
func decode(data []byte) (BlockdropConfig, error) {
	cfg := DefaultBlockdropConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBlockdropPreset modifies the config based on a difficulty preset.
func ApplyBlockdropPreset(cfg *BlockdropConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Easy games see more magic pieces.
	switch preset {
	case DifficultyEasy:
		cfg.Generator.MagicOdds = 5
	case DifficultyHard:
		cfg.Generator.MagicOdds = 20
	}
}
