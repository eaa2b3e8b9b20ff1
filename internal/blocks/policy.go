package blocks

// DefaultMagicThreshold is the number of magic icons within consecutive full
// rows that turns on gravity collapse.
const DefaultMagicThreshold = 3

// Policy decides which grid cells collapse and keeps the score.
//
// CellsToCollapse is called by the engine after a piece lands and after each
// collapse pass. Implementations update their score as a side effect, so a
// policy instance must not be shared between engines.
type Policy interface {
	CellsToCollapse(g *Grid) []Point
	Score() int
}

// LinePolicy removes every full row and scores one point per row.
type LinePolicy struct {
	score int
}

// NewLinePolicy returns a line-clearing policy with a zero score.
func NewLinePolicy() *LinePolicy {
	return &LinePolicy{}
}

// CellsToCollapse returns the cells of every full row.
func (p *LinePolicy) CellsToCollapse(g *Grid) []Point {
	var out []Point
	for row := g.Height() - 1; row >= 0; row-- {
		if !rowFull(g, row) {
			continue
		}
		p.score++
		for col := 0; col < g.Width(); col++ {
			out = append(out, Point{X: col, Y: row})
		}
	}
	return out
}

// Score returns the number of rows cleared so far.
func (p *LinePolicy) Score() int {
	return p.score
}

// GravityPolicy scores runs of consecutive full rows and, when enough magic
// icons sit in such a run, also collapses every empty cell lying below an
// occupied one so the board settles.
//
// Rows are scanned bottom-up. The occupied count carries across consecutive
// full rows and resets at the first row with a gap, so each full row adds
// run/width to the score: one full row scores 1, two adjacent rows score 1+2.
type GravityPolicy struct {
	threshold int
	score     int
}

// NewGravityPolicy returns a gravity policy. threshold <= 0 selects
// DefaultMagicThreshold.
func NewGravityPolicy(threshold int) *GravityPolicy {
	if threshold <= 0 {
		threshold = DefaultMagicThreshold
	}
	return &GravityPolicy{threshold: threshold}
}

// CellsToCollapse returns the full-row cells plus, when triggered, the
// gravity cells. The result may contain duplicates.
func (p *GravityPolicy) CellsToCollapse(g *Grid) []Point {
	var out []Point
	run, magic := 0, 0
	gravity := false

	for row := g.Height() - 1; row >= 0; row-- {
		if !rowFull(g, row) {
			run, magic = 0, 0
			continue
		}
		for col := 0; col < g.Width(); col++ {
			run++
			if g.At(row, col).Magic() {
				magic++
			}
			out = append(out, Point{X: col, Y: row})
		}
		if magic >= p.threshold {
			gravity = true
		}
		p.score += run / g.Width()
	}

	if gravity {
		out = append(out, gravityCells(g)...)
	}
	return out
}

// Score returns the accumulated score.
func (p *GravityPolicy) Score() int {
	return p.score
}

// gravityCells lists every empty cell that has an occupied cell somewhere
// above it in the same column.
func gravityCells(g *Grid) []Point {
	var out []Point
	for col := 0; col < g.Width(); col++ {
		seen := false
		for row := 0; row < g.Height(); row++ {
			if g.Occupied(row, col) {
				seen = true
				continue
			}
			if seen {
				out = append(out, Point{X: col, Y: row})
			}
		}
	}
	return out
}

func rowFull(g *Grid, row int) bool {
	for col := 0; col < g.Width(); col++ {
		if !g.Occupied(row, col) {
			return false
		}
	}
	return true
}
