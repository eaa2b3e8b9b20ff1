package blocks

// Polyomino is a rigid piece made of an ordered, fixed-size list of cells.
// Cell order is fixed at construction and never changes. The piece performs
// no bounds checking; coordinates may be negative or outside the board.
type Polyomino struct {
	shape       Shape
	anchor      Point
	orientation Orientation
	cells       []Cell
}

// New creates a piece of the given shape with its anchor cell at anchor.
// When magic is true the anchor cell's icon is flagged magic.
func New(shape Shape, anchor Point, magic bool) *Polyomino {
	def := shape.def()
	p := &Polyomino{
		shape:       shape,
		anchor:      anchor,
		orientation: Origin,
		cells:       make([]Cell, len(def.offsets)),
	}
	for i, off := range def.offsets {
		p.cells[i] = NewCell(NewIcon(def.color, magic && i == 0), anchor.Add(off))
	}
	return p
}

// Shape returns the piece's variant.
func (p *Polyomino) Shape() Shape {
	return p.shape
}

// Orientation returns the current rotational state.
func (p *Polyomino) Orientation() Orientation {
	return p.orientation
}

// Anchor returns the tracked anchor position. It moves with shifts only.
func (p *Polyomino) Anchor() Point {
	return p.anchor
}

// Len returns the number of cells.
func (p *Polyomino) Len() int {
	return len(p.cells)
}

// Cells returns an independent snapshot of the piece's cells.
func (p *Polyomino) Cells() []Cell {
	out := make([]Cell, len(p.cells))
	for i, c := range p.cells {
		out[i] = c.Clone()
	}
	return out
}

// ShiftDown moves the piece one row down.
func (p *Polyomino) ShiftDown() {
	p.translate(Point{Y: 1})
}

// ShiftLeft moves the piece one column left.
func (p *Polyomino) ShiftLeft() {
	p.translate(Point{X: -1})
}

// ShiftRight moves the piece one column right.
func (p *Polyomino) ShiftRight() {
	p.translate(Point{X: 1})
}

func (p *Polyomino) translate(by Point) {
	p.anchor = p.anchor.Add(by)
	for i := range p.cells {
		p.cells[i].Point = p.cells[i].Point.Add(by)
	}
}

// Transform rotates the piece to its next orientation using the shape's delta
// table. Four transforms restore the original cell positions and colors.
func (p *Polyomino) Transform() {
	t := p.shape.def().turns[p.orientation]
	for i, delta := range t.deltas {
		p.cells[i].Point = p.cells[i].Point.Add(delta)
	}
	if t.recolor != 0 {
		p.recolor(t)
	}
	p.orientation = p.orientation.Next()
}

// recolor replaces every icon with one of the new color. The piece's magic
// flag, if any cell carries it, ends up on the anchor cell.
func (p *Polyomino) recolor(t turn) {
	magic := p.MagicIndex() >= 0
	for i := range p.cells {
		p.cells[i].Icon = NewIcon(t.recolor, magic && i == 0)
	}
}

// MagicIndex returns the index of the first magic cell, or -1.
func (p *Polyomino) MagicIndex() int {
	for i, c := range p.cells {
		if c.Icon.Magic() {
			return i
		}
	}
	return -1
}

// Cycle moves the magic flag to the next cell in construction order,
// wrapping from the last cell to the first. It reports false and changes
// nothing when no cell is magic.
func (p *Polyomino) Cycle() bool {
	i := p.MagicIndex()
	if i < 0 {
		return false
	}
	next := (i + 1) % p.Len()
	p.cells[i].Icon.SetMagic(false)
	p.cells[next].Icon.SetMagic(true)
	return true
}

// Clone returns an independent piece with the same shape, position,
// orientation and icon states.
func (p *Polyomino) Clone() *Polyomino {
	c := &Polyomino{
		shape:       p.shape,
		anchor:      p.anchor,
		orientation: p.orientation,
		cells:       p.Cells(),
	}
	return c
}

// Equal reports whether both pieces have the same shape and their cells
// match pairwise on position, color and magic flag.
func (p *Polyomino) Equal(other *Polyomino) bool {
	if other == nil || p.shape != other.shape || len(p.cells) != len(other.cells) {
		return false
	}
	for i := range p.cells {
		if !p.cells[i].Equal(other.cells[i]) {
			return false
		}
	}
	return true
}
