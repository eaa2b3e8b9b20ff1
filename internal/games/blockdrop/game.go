// Package blockdrop adapts the falling-block engine to the arcade platform:
// it schedules engine steps from fixed simulation ticks using the play-level
// speed table, maps actions onto the engine's player intents, and draws the
// board into a core.Screen.
package blockdrop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockdrop/internal/blocks"
	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/registry"
)

// Mode selects the rule set.
type Mode string

const (
	// ModeStandard deals the six reference shapes and scores with gravity.
	ModeStandard Mode = "blockdrop"
	// ModeClassic deals all seven shapes and clears plain lines.
	ModeClassic Mode = "blockdrop_classic"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives lock, collapse and game over events.
var logger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficultyPreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLogger routes game events to l. A nil logger silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(string(ModeStandard), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeClassic), func() registry.Game {
		return NewClassic()
	})
}

// Game is a registry.Game driving one blocks.Engine.
type Game struct {
	mode   Mode
	pinned *config.BlockdropConfig

	cfg     config.BlockdropConfig
	level   blocks.PlayLevel
	engine  *blocks.Engine
	runtime core.RuntimeConfig
	tickDur time.Duration

	tick     uint64
	elapsed  time.Duration // since the last engine step
	steps    int
	pieces   int
	fastDrop bool
	paused   bool
}

// New creates a standard game that loads its configuration on Reset.
func New() *Game {
	return &Game{mode: ModeStandard}
}

// NewClassic creates a classic game that loads its configuration on Reset.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// NewWithConfig creates a game that always uses cfg as given, ignoring
// config files, presets and mode overrides. Replays use this.
func NewWithConfig(mode Mode, cfg config.BlockdropConfig) *Game {
	return &Game{mode: mode, pinned: &cfg}
}

// ParseMode maps a game ID onto its mode.
func ParseMode(id string) (Mode, bool) {
	switch Mode(id) {
	case ModeStandard, ModeClassic:
		return Mode(id), true
	}
	return "", false
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Blockdrop (Classic)"
	}
	return "Blockdrop"
}

// Mode returns the rule set.
func (g *Game) Mode() Mode {
	return g.mode
}

// Config returns the configuration the current game runs with.
func (g *Game) Config() config.BlockdropConfig {
	return g.cfg
}

// Reset starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime
	g.tickDur = time.Second / time.Duration(runtime.TickRate)

	g.cfg = g.resolveConfig()
	g.level = g.cfg.PlayLevel()

	rng := rand.New(rand.NewSource(runtime.Seed))
	g.engine = blocks.NewEngine(newGenerator(g.cfg, rng), newPolicy(g.cfg),
		blocks.WithSize(g.cfg.Board.Width, g.cfg.Board.Height))

	g.tick = 0
	g.elapsed = 0
	g.steps = 0
	g.pieces = 1
	g.fastDrop = false
	g.paused = false

	logger.Debug("game started", "mode", g.mode, "seed", runtime.Seed,
		"board", g.cfg.Board, "policy", g.cfg.Rules.Policy)
}

// resolveConfig loads the configuration from disk unless one is pinned.
func (g *Game) resolveConfig() config.BlockdropConfig {
	if g.pinned != nil {
		return *g.pinned
	}

	cfg, err := config.LoadBlockdrop(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultBlockdropConfig()
	}
	config.ApplyBlockdropPreset(&cfg, difficultyPreset)

	if g.mode == ModeClassic {
		cfg.Generator.Shapes = nil
		for _, s := range blocks.AllShapes {
			cfg.Generator.Shapes = append(cfg.Generator.Shapes, s.String())
		}
		cfg.Rules.Policy = config.PolicyLines
	}
	return cfg
}

func newGenerator(cfg config.BlockdropConfig, rng *rand.Rand) blocks.Generator {
	shapes, err := cfg.Shapes()
	if err != nil {
		shapes = blocks.ReferenceShapes
	}
	opts := []blocks.GeneratorOption{
		blocks.WithShapes(shapes...),
		blocks.WithMagicOdds(cfg.Generator.MagicOdds),
	}
	if cfg.Generator.Randomizer == config.RandomizerBag {
		return blocks.NewBagGenerator(rng, opts...)
	}
	return blocks.NewUniformGenerator(rng, opts...)
}

func newPolicy(cfg config.BlockdropConfig) blocks.Policy {
	if cfg.Rules.Policy == config.PolicyLines {
		return blocks.NewLinePolicy()
	}
	return blocks.NewGravityPolicy(cfg.Rules.MagicThreshold)
}

// Step advances the game by one tick. Player intents apply immediately;
// the engine itself only steps when the current fall interval has elapsed.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.engine.GameOver() {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.applyInput(in)

	// The remainder carries into the next interval. It is capped at one
	// interval so switching to fast drop yields at most one extra step.
	g.elapsed += g.tickDur
	iv := g.interval()
	if g.elapsed < iv {
		return core.StepResult{State: g.State()}
	}
	g.elapsed = core.Clamp(g.elapsed-iv, 0, iv)
	g.advance()

	return core.StepResult{State: g.State(), Advanced: true}
}

func (g *Game) applyInput(in core.InputFrame) {
	if !g.engine.Status().InPlay() {
		return
	}
	if in.Has(core.ActionLeft) {
		g.engine.ShiftLeft()
	}
	if in.Has(core.ActionRight) {
		g.engine.ShiftRight()
	}
	if in.Has(core.ActionRotate) {
		g.engine.Transform()
	}
	if in.Has(core.ActionCycle) {
		g.engine.Cycle()
	}
	if in.Has(core.ActionDrop) {
		g.fastDrop = true
	}
}

// interval returns how long to wait before the next engine step.
func (g *Game) interval() time.Duration {
	score := g.engine.Score()
	if g.fastDrop {
		return g.level.FastDropInterval(score)
	}
	return g.level.Interval(score)
}

// advance runs one engine step and reports the interesting transitions.
func (g *Game) advance() {
	prev := g.engine.Status()
	status := g.engine.Step()
	g.steps++

	switch {
	case status == blocks.StatusCollapsing && prev != blocks.StatusCollapsing:
		logger.Debug("piece locked", "collapse", true, "score", g.engine.Score())
	case status == blocks.StatusCollapsing:
		logger.Debug("collapse pass", "score", g.engine.Score())
	case status == blocks.StatusNewPolyomino:
		if prev == blocks.StatusStopped {
			logger.Debug("piece locked", "collapse", false, "score", g.engine.Score())
		}
		g.pieces++
		g.fastDrop = false
	case status == blocks.StatusGameOver:
		logger.Debug("game over", "score", g.engine.Score(), "pieces", g.pieces, "ticks", g.tick)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Level:    g.level.Tier(g.engine.Score()) + 1,
		Status:   g.engine.Status().String(),
		GameOver: g.engine.GameOver(),
		Paused:   g.paused,
	}
}
