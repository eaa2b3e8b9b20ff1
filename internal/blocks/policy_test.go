package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/blockdrop/internal/core"
)

func fillRow(g *Grid, row, magic int) {
	for col := 0; col < g.Width(); col++ {
		g.Set(row, col, NewIcon(core.ColorRed, col < magic))
	}
}

func rowPoints(width int, rows ...int) []Point {
	var out []Point
	for _, row := range rows {
		for col := 0; col < width; col++ {
			out = append(out, Point{X: col, Y: row})
		}
	}
	return out
}

func TestPoliciesSingleRow(t *testing.T) {
	policies := map[string]Policy{
		"lines":   NewLinePolicy(),
		"gravity": NewGravityPolicy(0),
	}

	for name, p := range policies {
		t.Run(name, func(t *testing.T) {
			g := NewGrid(DefaultWidth, DefaultHeight)
			fillRow(g, 23, 0)
			g.Set(22, 4, NewIcon(core.ColorBlue, false))

			got := p.CellsToCollapse(g)
			assert.ElementsMatch(t, rowPoints(DefaultWidth, 23), got)
			assert.Equal(t, 1, p.Score())
		})
	}
}

func TestPoliciesEmptyGrid(t *testing.T) {
	for _, p := range []Policy{NewLinePolicy(), NewGravityPolicy(3)} {
		g := NewGrid(DefaultWidth, DefaultHeight)
		g.Set(23, 0, NewIcon(core.ColorRed, true))
		assert.Empty(t, p.CellsToCollapse(g))
		assert.Equal(t, 0, p.Score())
	}
}

func TestRowScoring(t *testing.T) {
	tests := []struct {
		name        string
		rows        []int
		wantLines   int
		wantGravity int
	}{
		{"single", []int{23}, 1, 1},
		{"adjacent pair", []int{23, 22}, 2, 3},
		{"adjacent triple", []int{23, 22, 21}, 3, 6},
		{"separated pair", []int{23, 21}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(DefaultWidth, DefaultHeight)
			for _, row := range tt.rows {
				fillRow(g, row, 0)
			}

			lines := NewLinePolicy()
			assert.ElementsMatch(t, rowPoints(DefaultWidth, tt.rows...), lines.CellsToCollapse(g))
			assert.Equal(t, tt.wantLines, lines.Score())

			gravity := NewGravityPolicy(3)
			assert.ElementsMatch(t, rowPoints(DefaultWidth, tt.rows...), gravity.CellsToCollapse(g))
			assert.Equal(t, tt.wantGravity, gravity.Score())
		})
	}
}

func TestGravityTrigger(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	fillRow(g, 23, 3)
	hanging := NewIcon(core.ColorBlue, false)
	g.Set(20, 0, hanging)

	p := NewGravityPolicy(3)
	got := p.CellsToCollapse(g)

	want := append(rowPoints(DefaultWidth, 23), Point{0, 21}, Point{0, 22})
	assert.ElementsMatch(t, want, got)
	assert.Equal(t, 1, p.Score())

	g.Collapse(got)
	assert.Same(t, hanging, g.At(23, 0))
	for row := 0; row < DefaultHeight; row++ {
		for col := 0; col < DefaultWidth; col++ {
			if row == 23 && col == 0 {
				continue
			}
			assert.Falsef(t, g.Occupied(row, col), "(%d,%d)", row, col)
		}
	}
}

func TestGravityBelowThreshold(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	fillRow(g, 23, 2)
	g.Set(20, 0, NewIcon(core.ColorBlue, false))

	p := NewGravityPolicy(3)
	assert.ElementsMatch(t, rowPoints(DefaultWidth, 23), p.CellsToCollapse(g))
}

func TestGravityMagicAcrossRows(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	fillRow(g, 23, 2)
	fillRow(g, 22, 1)
	g.Set(19, 5, NewIcon(core.ColorBlue, false))

	p := NewGravityPolicy(3)
	got := p.CellsToCollapse(g)

	want := append(rowPoints(DefaultWidth, 23, 22), Point{5, 20}, Point{5, 21})
	assert.ElementsMatch(t, want, got)
	assert.Equal(t, 3, p.Score())
}

func TestGravityThresholdDefault(t *testing.T) {
	tests := []struct {
		name        string
		threshold   int
		magic       int
		wantGravity bool
	}{
		{"zero selects default, met", 0, DefaultMagicThreshold, true},
		{"zero selects default, short", 0, DefaultMagicThreshold - 1, false},
		{"negative selects default", -1, DefaultMagicThreshold, true},
		{"custom threshold", 1, 1, true},
		{"custom threshold above default", 5, DefaultMagicThreshold, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(DefaultWidth, DefaultHeight)
			fillRow(g, 23, tt.magic)
			g.Set(20, 0, NewIcon(core.ColorBlue, false))

			want := rowPoints(DefaultWidth, 23)
			if tt.wantGravity {
				want = append(want, Point{0, 21}, Point{0, 22})
			}
			assert.ElementsMatch(t, want, NewGravityPolicy(tt.threshold).CellsToCollapse(g))
		})
	}
}
