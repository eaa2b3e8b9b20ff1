// Package replay records the inputs of a game session and re-simulates them.
//
// A session is fully determined by its mode, resolved config, seed, tick rate
// and the actions applied on each tick, so a replay stores only those plus the
// outcome it reached for verification.
package replay

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/games/blockdrop"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

// ErrMismatch is returned by Verify when re-simulation does not reproduce the
// recorded outcome.
var ErrMismatch = errors.New("replay: outcome mismatch")

// Frame is the set of actions applied on one tick. Ticks are 1-based and
// count Step calls.
type Frame struct {
	Tick    uint64
	Actions []core.Action
}

// Replay is a recorded session.
type Replay struct {
	ID        string
	GameID    string
	Seed      int64
	TickRate  int
	Config    config.BlockdropConfig
	Frames    []Frame
	Score     int
	Status    string
	Ticks     uint64
	CreatedAt time.Time
}

// Recorder captures the inputs fed to a game.
type Recorder struct {
	r    Replay
	tick uint64
}

// NewRecorder starts a recording for a game about to run with cfg and runtime.
func NewRecorder(gameID string, cfg config.BlockdropConfig, runtime core.RuntimeConfig) *Recorder {
	return &Recorder{r: Replay{
		GameID:   gameID,
		Seed:     runtime.Seed,
		TickRate: runtime.TickRate,
		Config:   cfg,
	}}
}

// Record notes the input passed to one Step call.
func (rec *Recorder) Record(in core.InputFrame) {
	rec.tick++
	if in.Empty() {
		return
	}
	rec.r.Frames = append(rec.r.Frames, Frame{Tick: rec.tick, Actions: in.List()})
}

// Ticks returns the number of recorded Step calls.
func (rec *Recorder) Ticks() uint64 {
	return rec.tick
}

// Finish returns the replay with the final state attached.
func (rec *Recorder) Finish(state core.GameState) Replay {
	out := rec.r
	out.Frames = append([]Frame(nil), rec.r.Frames...)
	out.Score = state.Score
	out.Status = state.Status
	out.Ticks = rec.tick
	return out
}

// Run re-simulates r headlessly and returns the final snapshot.
func Run(r Replay) (blockdrop.Snapshot, error) {
	mode, ok := blockdrop.ParseMode(r.GameID)
	if !ok {
		return blockdrop.Snapshot{}, fmt.Errorf("replay: unknown game %q", r.GameID)
	}
	if err := r.Config.Validate(); err != nil {
		return blockdrop.Snapshot{}, fmt.Errorf("replay: %w", err)
	}

	g := blockdrop.NewWithConfig(mode, r.Config)
	g.Reset(core.RuntimeConfig{
		ScreenW:  core.DefaultConfig().ScreenW,
		ScreenH:  core.DefaultConfig().ScreenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	})

	frames := r.Frames
	input := core.NewInputFrame()
	for tick := uint64(1); tick <= r.Ticks; tick++ {
		input.Clear()
		if len(frames) > 0 && frames[0].Tick == tick {
			for _, a := range frames[0].Actions {
				input.Set(a)
			}
			frames = frames[1:]
		}
		g.Step(input)
	}
	return g.Snapshot(), nil
}

// Verify re-simulates r and checks the recorded score and status.
func Verify(r Replay) (blockdrop.Snapshot, error) {
	snap, err := Run(r)
	if err != nil {
		return snap, err
	}
	if snap.Score != r.Score || snap.Status != r.Status {
		return snap, fmt.Errorf("%w: recorded %d/%s, got %d/%s",
			ErrMismatch, r.Score, r.Status, snap.Score, snap.Status)
	}
	return snap, nil
}

// ToRecord converts r into its storage form.
func (r Replay) ToRecord() (storage.ReplayRecord, error) {
	cfg, err := yaml.Marshal(r.Config)
	if err != nil {
		return storage.ReplayRecord{}, fmt.Errorf("replay: cannot encode config: %w", err)
	}

	rec := storage.ReplayRecord{
		ID:       r.ID,
		GameID:   r.GameID,
		Seed:     r.Seed,
		TickRate: r.TickRate,
		Config:   string(cfg),
		Score:    r.Score,
		Status:   r.Status,
		Ticks:    r.Ticks,
		Inputs:   make([]storage.InputRecord, 0, len(r.Frames)),
	}
	for _, f := range r.Frames {
		names := make([]string, len(f.Actions))
		for i, a := range f.Actions {
			names[i] = a.String()
		}
		rec.Inputs = append(rec.Inputs, storage.InputRecord{Tick: f.Tick, Actions: strings.Join(names, ",")})
	}
	return rec, nil
}

// FromRecord converts a stored replay back.
func FromRecord(rec storage.ReplayRecord) (Replay, error) {
	r := Replay{
		ID:        rec.ID,
		GameID:    rec.GameID,
		Seed:      rec.Seed,
		TickRate:  rec.TickRate,
		Config:    config.DefaultBlockdropConfig(),
		Score:     rec.Score,
		Status:    rec.Status,
		Ticks:     rec.Ticks,
		CreatedAt: rec.CreatedAt,
	}
	if err := yaml.Unmarshal([]byte(rec.Config), &r.Config); err != nil {
		return Replay{}, fmt.Errorf("replay %s: cannot decode config: %w", rec.ID, err)
	}

	for _, in := range rec.Inputs {
		f := Frame{Tick: in.Tick}
		for _, name := range strings.Split(in.Actions, ",") {
			a := core.ParseAction(name)
			if a == core.ActionNone {
				return Replay{}, fmt.Errorf("replay %s: unknown action %q at tick %d", rec.ID, name, in.Tick)
			}
			f.Actions = append(f.Actions, a)
		}
		r.Frames = append(r.Frames, f)
	}
	return r, nil
}

// Save stores r and returns its ID.
func Save(store *storage.Store, r Replay) (string, error) {
	rec, err := r.ToRecord()
	if err != nil {
		return "", err
	}
	return store.SaveReplay(rec)
}

// Load reads a replay by ID.
func Load(store *storage.Store, id string) (Replay, error) {
	rec, err := store.Replay(id)
	if err != nil {
		return Replay{}, err
	}
	return FromRecord(*rec)
}
