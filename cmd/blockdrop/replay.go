package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdrop/internal/replay"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

var flagReplayLimit int

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "List, show and verify recorded games",
	Long: `Every game that reaches game over is stored with its seed, config and
inputs. A stored game can be re-simulated to check that it reproduces the
recorded outcome.

Examples:
  blockdrop replay list
  blockdrop replay show 3f2a9c1e-...
  blockdrop replay run 3f2a9c1e-...`,
}

var replayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent replays",
	Args:  cobra.NoArgs,
	RunE:  runReplayList,
}

var replayShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a replay's settings and inputs",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayShow,
}

var replayRunCmd = &cobra.Command{
	Use:   "run <id>",
	Short: "Re-simulate a replay and verify its outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplayRun,
}

func init() {
	replayListCmd.Flags().IntVar(&flagReplayLimit, "limit", 20, "Maximum number of replays to list")

	replayCmd.AddCommand(replayListCmd)
	replayCmd.AddCommand(replayShowCmd)
	replayCmd.AddCommand(replayRunCmd)
}

// replayStore opens the replay database; replay commands cannot run without it.
func replayStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("opening replay database: %w", err)
	}
	return store, nil
}

func runReplayList(_ *cobra.Command, _ []string) error {
	store, err := replayStore()
	if err != nil {
		return err
	}
	defer store.Close()

	replays, err := store.RecentReplays(flagReplayLimit)
	if err != nil {
		return err
	}
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-18s  %-7s  %-10s  %-8s  %s\n", "ID", "Mode", "Score", "Status", "Ticks", "Date")
	fmt.Printf("  %-36s  %-18s  %-7s  %-10s  %-8s  %s\n", "--", "----", "-----", "------", "-----", "----")
	for _, r := range replays {
		fmt.Printf("  %-36s  %-18s  %-7d  %-10s  %-8d  %s\n",
			r.ID, r.GameID, r.Score, r.Status, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runReplayShow(_ *cobra.Command, args []string) error {
	store, err := replayStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := replay.Load(store, args[0])
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no replay %q (see 'blockdrop replay list')", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Printf("Replay    %s\n", r.ID)
	fmt.Printf("Mode      %s\n", r.GameID)
	fmt.Printf("Recorded  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Seed      %d\n", r.Seed)
	fmt.Printf("Tick rate %d\n", r.TickRate)
	fmt.Printf("Board     %dx%d, policy %s, shapes %s\n", r.Config.Board.Width, r.Config.Board.Height,
		r.Config.Rules.Policy, strings.Join(r.Config.Generator.Shapes, " "))
	fmt.Printf("Outcome   score %d, %s after %d ticks\n", r.Score, r.Status, r.Ticks)
	fmt.Printf("Inputs    %d frames\n", len(r.Frames))

	for _, f := range r.Frames {
		names := make([]string, len(f.Actions))
		for i, a := range f.Actions {
			names[i] = a.String()
		}
		fmt.Printf("  %8d  %s\n", f.Tick, strings.Join(names, " "))
	}
	return nil
}

func runReplayRun(_ *cobra.Command, args []string) error {
	store, err := replayStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := replay.Load(store, args[0])
	if err != nil {
		return err
	}

	logger.Debug("re-simulating", "id", r.ID, "ticks", r.Ticks, "frames", len(r.Frames))
	snap, err := replay.Verify(r)
	if errors.Is(err, replay.ErrMismatch) {
		fmt.Printf("MISMATCH  recorded score %d (%s), re-simulated %d (%s)\n",
			r.Score, r.Status, snap.Score, snap.Status)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Printf("OK  score %d, level %d, %d pieces, %s after %d ticks\n",
		snap.Score, snap.Level, snap.Pieces, snap.Status, snap.Tick)
	for _, row := range snap.Rows {
		fmt.Printf("  |%s|\n", row)
	}
	return nil
}
