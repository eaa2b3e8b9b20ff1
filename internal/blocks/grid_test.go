package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdrop/internal/core"
)

func TestGridBounds(t *testing.T) {
	g := NewGrid(4, 3)
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())

	assert.True(t, g.InBounds(0, 0))
	assert.True(t, g.InBounds(2, 3))
	assert.False(t, g.InBounds(-1, 0))
	assert.False(t, g.InBounds(3, 0))
	assert.False(t, g.InBounds(0, 4))

	g.Set(-1, 0, NewIcon(core.ColorRed, false))
	g.Set(1, 1, NewIcon(core.ColorRed, false))
	assert.Nil(t, g.At(-1, 0))
	assert.True(t, g.Occupied(1, 1))
	assert.False(t, g.Occupied(1, 2))
}

func TestCollapseColumnRun(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	col3 := make([]*Icon, DefaultHeight)
	for row := 0; row < DefaultHeight; row++ {
		col3[row] = NewIcon(core.Color(row%8+1), false)
		g.Set(row, 3, col3[row])
	}
	other := NewIcon(core.ColorBlue, false)
	g.Set(22, 7, other)

	var marked []Point
	for row := 20; row < DefaultHeight; row++ {
		marked = append(marked, Point{X: 3, Y: row})
	}
	g.Collapse(marked)

	for row := 0; row < 20; row++ {
		assert.Samef(t, col3[row], g.At(row+4, 3), "row %d should move to %d", row, row+4)
	}
	for row := 0; row < 4; row++ {
		assert.Nil(t, g.At(row, 3))
	}
	assert.Same(t, other, g.At(22, 7))
	for row := 0; row < DefaultHeight; row++ {
		for col := 0; col < DefaultWidth; col++ {
			if col == 3 || (col == 7 && row == 22) {
				continue
			}
			assert.Nil(t, g.At(row, col))
		}
	}
}

func TestCollapseDisjointRuns(t *testing.T) {
	g := NewGrid(4, 6)
	a := NewIcon(core.ColorRed, false)
	b := NewIcon(core.ColorGreen, false)
	c := NewIcon(core.ColorBlue, false)
	g.Set(2, 0, c)
	g.Set(3, 0, b)
	g.Set(4, 0, NewIcon(core.ColorWhite, false))
	g.Set(5, 0, NewIcon(core.ColorWhite, false))
	g.Set(1, 0, NewIcon(core.ColorWhite, false))
	g.Set(0, 0, a)

	// Rows 1, 4 and 5 go; duplicates and off-grid points are ignored.
	g.Collapse([]Point{{0, 5}, {0, 4}, {0, 1}, {0, 5}, {0, -1}, {9, 2}})

	assert.Same(t, b, g.At(5, 0))
	assert.Same(t, c, g.At(4, 0))
	assert.Same(t, a, g.At(3, 0))
	for row := 0; row < 3; row++ {
		assert.Nil(t, g.At(row, 0))
	}
}

func TestCollapseEmptyMarkedCells(t *testing.T) {
	g := NewGrid(2, 5)
	top := NewIcon(core.ColorRed, false)
	g.Set(1, 0, top)
	g.Set(4, 0, NewIcon(core.ColorRed, false))

	// Marking empty slots compacts the column.
	g.Collapse([]Point{{0, 2}, {0, 3}})

	assert.Same(t, top, g.At(3, 0))
	assert.True(t, g.Occupied(4, 0))
	assert.False(t, g.Occupied(1, 0))
}

func TestGridClone(t *testing.T) {
	g := NewGrid(3, 3)
	g.Set(1, 1, NewIcon(core.ColorRed, true))

	c := g.Clone()
	require.True(t, c.Occupied(1, 1))
	c.At(1, 1).SetMagic(false)
	c.Set(0, 0, NewIcon(core.ColorRed, false))

	assert.True(t, g.At(1, 1).Magic())
	assert.False(t, g.Occupied(0, 0))
}
