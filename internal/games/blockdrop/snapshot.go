package blockdrop

import (
	"strings"

	"github.com/vovakirdan/blockdrop/internal/blocks"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Score    int
	Level    int // Speed tier, 1-indexed for display
	Status   string
	Steps    int // Engine steps taken
	Pieces   int // Pieces dealt, including the one in play
	Shape    string
	Cells    []blocks.Point // Piece in play, nil while collapsing or over
	Rows     []string       // One string per grid row, see rowString
	Paused   bool
	GameOver bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := g.State()
	snap := Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Score:    state.Score,
		Level:    state.Level,
		Status:   state.Status,
		Steps:    g.steps,
		Pieces:   g.pieces,
		Paused:   g.paused,
		GameOver: state.GameOver,
	}
	if g.engine == nil {
		return snap
	}

	if cur, err := g.engine.Current(); err == nil {
		snap.Shape = cur.Shape().String()
		for _, c := range cur.Cells() {
			snap.Cells = append(snap.Cells, c.Point)
		}
	}

	snap.Rows = make([]string, g.engine.Height())
	for row := range snap.Rows {
		snap.Rows[row] = g.rowString(row)
	}
	return snap
}

// rowString encodes a grid row: '.' for empty, a lowercase letter per color,
// uppercase when the icon is magic.
func (g *Game) rowString(row int) string {
	var sb strings.Builder
	for col := 0; col < g.engine.Width(); col++ {
		icon, ok := g.engine.IconAt(row, col)
		if !ok {
			sb.WriteByte('.')
			continue
		}
		base := byte('a')
		if icon.Magic() {
			base = 'A'
		}
		sb.WriteByte(base + byte(icon.Color()))
	}
	return sb.String()
}
