package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/games/blockdrop"
	"github.com/vovakirdan/blockdrop/internal/platform/tui"
	"github.com/vovakirdan/blockdrop/internal/registry"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: blockdrop).

Controls:
  Left/Right, A/D  - Shift piece
  Up, W            - Rotate piece
  Space, C         - Move the magic block to the next cell
  Down, S          - Fast drop until the piece locks
  P                - Pause
  R                - Restart (after game over)
  Esc/B            - Leave (while paused or after game over)
  Q/Ctrl+C         - Quit

Every finished game is stored as a replay; see 'blockdrop replay'.

Difficulty options:
  easy   - Start at the slowest speed, progresses with score
  normal - Start a quarter of the way up the speed table
  hard   - Start three quarters of the way up the speed table
  fixed  - No progression, stays at the config's initial level

Examples:
  blockdrop play
  blockdrop play blockdrop_classic
  blockdrop play --difficulty hard
  blockdrop play --seed 42 --config ./my-blockdrop.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// terminalConfig builds the runtime config from the flags and terminal size.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the replay database. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database, replays will not be saved", "err", err)
		return nil
	}
	return store
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := string(blockdrop.ModeStandard)
	if len(args) > 0 {
		gameID = args[0]
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'blockdrop list' to see available modes)", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
