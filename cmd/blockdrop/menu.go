package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/platform/tui"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start blockdrop in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab to browse replays.
After a game ends, Esc returns to the menu.

Examples:
  blockdrop menu
  blockdrop menu --fps 30
  blockdrop menu --db ./blockdrop.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsReplays {
			goBack, err := tui.RunReplayBoard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("cannot create game", "id", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed per game unless one was pinned on the command line.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		back, err := tui.Run(game, store, cfg)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}
