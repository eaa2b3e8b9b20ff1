package blocks

// Default board dimensions.
const (
	DefaultWidth  = 12
	DefaultHeight = 24
)

// Grid is the board: a fixed-size array of optional icons indexed by
// (row, col). A slot is unoccupied iff it holds nil.
type Grid struct {
	width  int
	height int
	rows   [][]*Icon
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height, rows: make([][]*Icon, height)}
	for r := range g.rows {
		g.rows[r] = make([]*Icon, width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether (row, col) addresses a stored slot.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the icon at (row, col), or nil when empty or out of range.
func (g *Grid) At(row, col int) *Icon {
	if !g.InBounds(row, col) {
		return nil
	}
	return g.rows[row][col]
}

// Occupied reports whether (row, col) holds an icon.
func (g *Grid) Occupied(row, col int) bool {
	return g.At(row, col) != nil
}

// Set stores icon at (row, col). Out-of-range writes are ignored.
func (g *Grid) Set(row, col int, icon *Icon) {
	if g.InBounds(row, col) {
		g.rows[row][col] = icon
	}
}

// Collapse removes the icons at the given points and lets everything above
// each removed run fall by the run's height, column by column. Points may
// repeat; points outside the grid are ignored.
func (g *Grid) Collapse(points []Point) {
	marked := make([][]bool, g.height)
	for r := range marked {
		marked[r] = make([]bool, g.width)
	}
	for _, p := range points {
		if g.InBounds(p.Y, p.X) {
			marked[p.Y][p.X] = true
		}
	}

	for col := 0; col < g.width; col++ {
		g.collapseColumn(col, marked)
	}
}

// collapseColumn scans one column bottom-up. Each pass finds the lowest
// marked run, drops everything above it by the run height, and clears the
// vacated slots at the top. Passes repeat until no marked slot remains.
func (g *Grid) collapseColumn(col int, marked [][]bool) {
	start := g.height - 1
	for {
		for start >= 0 && !marked[start][col] {
			start--
		}
		if start < 0 {
			return
		}

		top := start
		for top >= 0 && marked[top][col] {
			g.rows[top][col] = nil
			marked[top][col] = false
			top--
		}
		if top < 0 {
			return
		}

		shift := start - top
		for k := top; k >= 0; k-- {
			g.rows[k+shift][col] = g.rows[k][col]
			marked[k+shift][col] = marked[k][col]
		}
		for k := shift - 1; k >= 0; k-- {
			g.rows[k][col] = nil
			marked[k][col] = false
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for r, row := range g.rows {
		for col, icon := range row {
			if icon != nil {
				c.rows[r][col] = icon.Clone()
			}
		}
	}
	return c
}
