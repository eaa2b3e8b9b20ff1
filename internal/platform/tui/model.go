package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockdrop/internal/config"
	"github.com/vovakirdan/blockdrop/internal/core"
	"github.com/vovakirdan/blockdrop/internal/registry"
	"github.com/vovakirdan/blockdrop/internal/replay"
	"github.com/vovakirdan/blockdrop/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger sets the logger used by the TUI layer.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// recordable is implemented by games whose sessions can be replayed.
type recordable interface {
	Config() config.BlockdropConfig
}

// sizer is implemented by games that need a minimum screen size.
type sizer interface {
	MinSize() (w, h int)
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	keys        *KeyMapper
	help        help.Model
	inputFrame  core.InputFrame
	gameState   core.GameState
	recorder    *replay.Recorder
	replayID    string
	replaySaved bool // Whether the replay has been stored for the current game over
	embedded    bool // Hosted by a SessionModel; back returns to its menu
	quitting    bool
	backToMenu  bool
}

// NewModel creates a new Bubble Tea model for the given game and starts it.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.start()
	return m
}

// playHeight leaves the bottom line for the help bar.
func playHeight(h int) int {
	return core.Max(h-1, 1)
}

// start resets the game and begins a new recording.
func (m *Model) start() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.replayID = ""
	m.replaySaved = false
	m.recorder = nil
	if g, ok := m.game.(recordable); ok {
		m.recorder = replay.NewRecorder(m.game.ID(), g.Config(), m.config)
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.IsBack(msg) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Restart only means something once the game has ended.
	if m.inputFrame.Has(core.ActionRestart) && !m.gameState.GameOver {
		delete(m.inputFrame.Actions, core.ActionRestart)
	}

	return m, nil
}

// handleResize adapts the screen buffer. The game keeps running; a screen
// that gets too small pauses it on the next tick.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// tooSmall reports whether the game cannot be drawn on the current screen.
func (m Model) tooSmall() bool {
	s, ok := m.game.(sizer)
	if !ok {
		return false
	}
	w, h := s.MinSize()
	return m.screen.Width() < w || m.screen.Height() < h
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.start()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	if !m.gameState.GameOver && !m.gameState.Paused && m.tooSmall() {
		m.inputFrame.Set(core.ActionPause)
	}

	if m.recorder != nil && !m.gameState.GameOver {
		m.recorder.Record(m.inputFrame)
	}
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.replaySaved {
		m.saveReplay()
		m.replaySaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveReplay stores the finished session. Failures are logged; the game
// continues regardless.
func (m *Model) saveReplay() {
	if m.store == nil || m.recorder == nil {
		return
	}
	id, err := replay.Save(m.store, m.recorder.Finish(m.gameState))
	if err != nil {
		logger.Warn("could not save replay", "game", m.game.ID(), "err", err)
		return
	}
	m.replayID = id
	logger.Info("replay saved", "id", id, "game", m.game.ID(), "score", m.gameState.Score)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys.Keys())
	if m.replayID != "" {
		footer = fmt.Sprintf("replay %s saved  •  r: restart  •  esc: menu", shortID(m.replayID))
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(footer)
}

// GameState returns the state observed on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// ReplayID returns the ID of the replay saved for the last game over, if any.
func (m Model) ReplayID() string {
	return m.replayID
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// shortID trims a replay ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the Bubble Tea program with the given model.
// It returns true when the player left through the back key rather than quit.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (back bool, err error) {
	model := NewModel(game, store, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}
