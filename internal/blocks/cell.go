package blocks

import "fmt"

// Point is a grid coordinate. X is the column, Y is the row; rows grow downward
// and may be negative while a piece is still above the board.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell pairs an icon with a grid position. The position is owned by the
// cell; the icon pointer may be shared until Clone is called.
type Cell struct {
	Point
	Icon *Icon
}

// NewCell creates a cell at p holding icon.
func NewCell(icon *Icon, p Point) Cell {
	return Cell{Point: p, Icon: icon}
}

// Clone returns a deep copy whose icon shares no state with c.
func (c Cell) Clone() Cell {
	out := Cell{Point: c.Point}
	if c.Icon != nil {
		out.Icon = c.Icon.Clone()
	}
	return out
}

// Equal compares position and icon.
func (c Cell) Equal(other Cell) bool {
	return c.Point == other.Point && c.Icon.Equal(other.Icon)
}
