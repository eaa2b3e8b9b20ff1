package blocks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdrop/internal/core"
)

// seqGen hands out clones of a fixed piece list and repeats the last one.
type seqGen struct {
	pieces []*Polyomino
	i      int
}

func newSeqGen(pieces ...*Polyomino) *seqGen {
	return &seqGen{pieces: pieces}
}

func (g *seqGen) Next() *Polyomino {
	p := g.pieces[g.i]
	if g.i < len(g.pieces)-1 {
		g.i++
	}
	return p.Clone()
}

func spawned(s Shape) *Polyomino {
	return New(s, s.Spawn(), false)
}

func stepUntil(t *testing.T, e *Engine, want Status) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if e.Step() == want {
			return
		}
	}
	t.Fatalf("status %s never reached, stuck at %s", want, e.Status())
}

func TestNewEngine(t *testing.T) {
	e := NewEngine(newSeqGen(spawned(ShapeO)), NewLinePolicy())

	assert.Equal(t, StatusNewPolyomino, e.Status())
	assert.Equal(t, DefaultWidth, e.Width())
	assert.Equal(t, DefaultHeight, e.Height())
	assert.Equal(t, 0, e.Score())
	assert.False(t, e.GameOver())

	cur, err := e.Current()
	require.NoError(t, err)
	assert.True(t, spawned(ShapeO).Equal(cur))

	e = NewEngine(newSeqGen(spawned(ShapeO)), NewLinePolicy(), WithSize(8, 10))
	assert.Equal(t, 8, e.Width())
	assert.Equal(t, 10, e.Height())
}

func TestFirstStepFalls(t *testing.T) {
	e := NewEngine(newSeqGen(spawned(ShapeL)), NewLinePolicy())

	assert.Equal(t, StatusFalling, e.Step())

	cur, err := e.Current()
	require.NoError(t, err)
	want := spawned(ShapeL)
	want.ShiftDown()
	assert.True(t, want.Equal(cur))
}

func TestLandWithoutCollapseStops(t *testing.T) {
	e := NewEngine(newSeqGen(spawned(ShapeO)), NewLinePolicy())
	stepUntil(t, e, StatusStopped)

	cur, err := e.Current()
	require.NoError(t, err)
	assert.Equal(t, Point{X: 5, Y: 22}, cur.Anchor())

	// Not yet committed.
	for _, c := range cur.Cells() {
		_, ok := e.IconAt(c.Y, c.X)
		assert.False(t, ok, "cell %s", c.Point)
	}

	// One more step commits and spawns the next piece.
	assert.Equal(t, StatusNewPolyomino, e.Step())
	for _, c := range cur.Cells() {
		icon, ok := e.IconAt(c.Y, c.X)
		assert.True(t, ok)
		assert.Equal(t, core.ColorYellow, icon.Color())
	}
}

func TestStoppedPieceCanSlideAndFall(t *testing.T) {
	e := NewEngine(newSeqGen(New(ShapeO, Point{X: 0, Y: -1}, false)), NewLinePolicy())
	// A ledge under the left columns.
	e.grid.Set(10, 0, NewIcon(core.ColorRed, false))
	e.grid.Set(10, 1, NewIcon(core.ColorRed, false))

	stepUntil(t, e, StatusStopped)
	require.True(t, e.ShiftRight())
	require.True(t, e.ShiftRight())

	assert.Equal(t, StatusFalling, e.Step())
	cur, err := e.Current()
	require.NoError(t, err)
	assert.Equal(t, Point{X: 2, Y: 9}, cur.Anchor())
}

func TestFullRowCollapse(t *testing.T) {
	for _, policy := range []Policy{NewLinePolicy(), NewGravityPolicy(3)} {
		e := NewEngine(newSeqGen(spawned(ShapeO)), policy)
		for col := 0; col < DefaultWidth; col++ {
			if col != 5 && col != 6 {
				e.grid.Set(23, col, NewIcon(core.ColorRed, false))
			}
		}

		stepUntil(t, e, StatusCollapsing)
		assert.Equal(t, 1, e.Score())

		pending, err := e.CellsToCollapse()
		require.NoError(t, err)
		assert.ElementsMatch(t, rowPoints(DefaultWidth, 23), pending)

		_, err = e.Current()
		assert.True(t, errors.Is(err, ErrInvalidState))

		assert.Equal(t, StatusNewPolyomino, e.Step())
		assert.Equal(t, 1, e.Score())

		// The top half of the O dropped into the cleared row.
		for col := 0; col < DefaultWidth; col++ {
			_, ok := e.IconAt(23, col)
			assert.Equal(t, col == 5 || col == 6, ok, "col %d", col)
			_, ok = e.IconAt(22, col)
			assert.False(t, ok)
		}
		_, err = e.CellsToCollapse()
		assert.True(t, errors.Is(err, ErrInvalidState))
	}
}

func TestCascadingCollapse(t *testing.T) {
	// 4x6 board; the magic domino completes row 4 with two magic icons,
	// gravity pulls the column 3 overhang into row 5, which then fills.
	e := NewEngine(newSeqGen(New(ShapeDomino, Point{X: 0, Y: -1}, true)), NewGravityPolicy(3), WithSize(4, 6))
	e.grid.Set(5, 0, NewIcon(core.ColorRed, false))
	e.grid.Set(5, 1, NewIcon(core.ColorRed, false))
	e.grid.Set(5, 2, NewIcon(core.ColorRed, false))
	e.grid.Set(4, 2, NewIcon(core.ColorBlue, true))
	e.grid.Set(4, 3, NewIcon(core.ColorBlue, true))
	e.grid.Set(3, 3, NewIcon(core.ColorGreen, false))

	stepUntil(t, e, StatusCollapsing)
	assert.Equal(t, 1, e.Score())
	pending, err := e.CellsToCollapse()
	require.NoError(t, err)
	assert.ElementsMatch(t, append(rowPoints(4, 4), Point{X: 3, Y: 5}), pending)

	assert.Equal(t, StatusCollapsing, e.Step())
	assert.Equal(t, 2, e.Score())
	pending, err = e.CellsToCollapse()
	require.NoError(t, err)
	assert.ElementsMatch(t, rowPoints(4, 5), pending)

	assert.Equal(t, StatusNewPolyomino, e.Step())
	for row := 0; row < e.Height(); row++ {
		for col := 0; col < e.Width(); col++ {
			_, ok := e.IconAt(row, col)
			assert.False(t, ok)
		}
	}
}

func TestSpawnCollisionEndsGame(t *testing.T) {
	e := NewEngine(newSeqGen(New(ShapeO, Point{X: 0, Y: -1}, false), spawned(ShapeO)), NewLinePolicy())
	e.grid.Set(0, 5, NewIcon(core.ColorRed, false))
	e.grid.Set(0, 6, NewIcon(core.ColorRed, false))

	stepUntil(t, e, StatusStopped)
	assert.Equal(t, StatusGameOver, e.Step())
	assert.True(t, e.GameOver())

	// Terminal and idempotent.
	assert.Equal(t, StatusGameOver, e.Step())
	_, err := e.Current()
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestCollides(t *testing.T) {
	e := NewEngine(newSeqGen(spawned(ShapeO)), NewLinePolicy())
	w, h := e.Width(), e.Height()

	tests := []struct {
		name   string
		anchor Point
		want   bool
	}{
		{"inside", Point{X: 0, Y: 0}, false},
		{"bottom right", Point{X: w - 2, Y: h - 2}, false},
		{"above top", Point{X: 3, Y: -5}, false},
		{"left wall", Point{X: -1, Y: 5}, true},
		{"right wall", Point{X: w - 1, Y: 5}, true},
		{"floor", Point{X: 3, Y: h - 1}, true},
		{"left wall above top", Point{X: -1, Y: -5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Collides(New(ShapeO, tt.anchor, false)))
		})
	}

	e.grid.Set(4, 4, NewIcon(core.ColorRed, false))
	assert.True(t, e.Collides(New(ShapeO, Point{X: 3, Y: 3}, false)))
	assert.False(t, e.Collides(New(ShapeO, Point{X: 5, Y: 3}, false)))
}

func TestRejectedMovesLeaveStateUnchanged(t *testing.T) {
	e := NewEngine(newSeqGen(New(ShapeT, Point{X: 1, Y: 5}, true)), NewLinePolicy())
	e.grid.Set(6, 1, NewIcon(core.ColorRed, false))
	before, err := e.Current()
	require.NoError(t, err)

	assert.False(t, e.ShiftLeft())
	assert.False(t, e.Transform())

	after, err := e.Current()
	require.NoError(t, err)
	assert.True(t, before.Equal(after))
	assert.Equal(t, before.Orientation(), after.Orientation())
	assert.Equal(t, StatusNewPolyomino, e.Status())

	assert.True(t, e.ShiftRight())
	after, _ = e.Current()
	assert.Equal(t, Point{X: 2, Y: 5}, after.Anchor())
}

func TestEngineCycle(t *testing.T) {
	e := NewEngine(newSeqGen(New(ShapeL, Point{X: 5, Y: 5}, true)), NewLinePolicy())

	assert.True(t, e.Cycle())
	cur, err := e.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, cur.MagicIndex())

	e = NewEngine(newSeqGen(New(ShapeL, Point{X: 5, Y: 5}, false)), NewLinePolicy())
	assert.False(t, e.Cycle())
}

func TestCurrentIsACopy(t *testing.T) {
	e := NewEngine(newSeqGen(spawned(ShapeO)), NewLinePolicy())
	cur, err := e.Current()
	require.NoError(t, err)

	cur.ShiftLeft()
	again, _ := e.Current()
	assert.Equal(t, spawned(ShapeO).Anchor(), again.Anchor())
}

func TestIconAtOutOfRange(t *testing.T) {
	e := NewEngine(newSeqGen(spawned(ShapeO)), NewLinePolicy())
	_, ok := e.IconAt(-1, 0)
	assert.False(t, ok)
	_, ok = e.IconAt(0, DefaultWidth)
	assert.False(t, ok)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "new_polyomino", StatusNewPolyomino.String())
	assert.Equal(t, "game_over", StatusGameOver.String())
	assert.Equal(t, "unknown", Status(42).String())
	assert.True(t, StatusStopped.InPlay())
	assert.False(t, StatusCollapsing.InPlay())
}
