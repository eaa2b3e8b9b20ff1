package blocks

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockdrop/internal/core"
)

// Shape identifies a polyomino variant.
type Shape int

const (
	ShapeL Shape = iota
	ShapeJ
	ShapeI
	ShapeO
	ShapeT
	ShapeSZ
	ShapeDomino
)

// ReferenceShapes is the six-shape set used by the default generator.
var ReferenceShapes = []Shape{ShapeL, ShapeJ, ShapeI, ShapeO, ShapeT, ShapeSZ}

// AllShapes additionally includes the domino.
var AllShapes = []Shape{ShapeL, ShapeJ, ShapeI, ShapeO, ShapeT, ShapeSZ, ShapeDomino}

// Orientation is one of the four rotational states of a piece.
type Orientation int

const (
	Origin Orientation = iota
	Rot90
	Rot180
	Rot270

	orientationCount = 4
)

// Next returns the orientation reached by one transform.
func (o Orientation) Next() Orientation {
	return (o + 1) % orientationCount
}

func (o Orientation) String() string {
	switch o {
	case Origin:
		return "origin"
	case Rot90:
		return "rot90"
	case Rot180:
		return "rot180"
	case Rot270:
		return "rot270"
	default:
		return "unknown"
	}
}

// turn describes the transition out of one orientation: a per-cell delta and
// an optional recolor applied to every cell.
type turn struct {
	deltas  []Point
	recolor core.Color // ColorDefault: keep colors
}

// shapeDef is the pure-data definition of a variant. offsets[0] is the anchor
// and is always (0,0); turns[o] leaves orientation o.
type shapeDef struct {
	name    string
	color   core.Color
	spawn   Point
	offsets []Point
	turns   [orientationCount]turn
}

func d(pts ...int) []Point {
	out := make([]Point, 0, len(pts)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		out = append(out, Point{X: pts[i], Y: pts[i+1]})
	}
	return out
}

// Offsets and deltas rotate each cell a quarter turn about the anchor,
// except SZ which also shifts and recolors between its S and Z forms.
var shapeDefs = map[Shape]shapeDef{
	ShapeL: {
		name:    "L",
		color:   core.ColorOrange,
		spawn:   Point{X: 7, Y: -1},
		offsets: d(0, 0, -2, 1, -1, 1, 0, 1),
		turns: [orientationCount]turn{
			{deltas: d(0, 0, 3, 1, 2, 0, 1, -1)},
			{deltas: d(0, 0, 1, -3, 0, -2, -1, -1)},
			{deltas: d(0, 0, -3, -1, -2, 0, -1, 1)},
			{deltas: d(0, 0, -1, 3, 0, 2, 1, 1)},
		},
	},
	ShapeJ: {
		name:    "J",
		color:   core.ColorBlue,
		spawn:   Point{X: 6, Y: -1},
		offsets: d(0, 0, 0, 1, 1, 1, 2, 1),
		turns: [orientationCount]turn{
			{deltas: d(0, 0, 1, -1, 0, -2, -1, -3)},
			{deltas: d(0, 0, -1, -1, -2, 0, -3, 1)},
			{deltas: d(0, 0, -1, 1, 0, 2, 1, 3)},
			{deltas: d(0, 0, 1, 1, 2, 0, 3, -1)},
		},
	},
	ShapeI: {
		name:    "I",
		color:   core.ColorCyan,
		spawn:   Point{X: 6, Y: -2},
		offsets: d(0, 0, 0, -1, 0, 1),
		turns: [orientationCount]turn{
			{deltas: d(0, 0, -1, 1, 1, -1)},
			{deltas: d(0, 0, 1, 1, -1, -1)},
			{deltas: d(0, 0, 1, -1, -1, 1)},
			{deltas: d(0, 0, -1, -1, 1, 1)},
		},
	},
	ShapeO: {
		name:    "O",
		color:   core.ColorYellow,
		spawn:   Point{X: 5, Y: -1},
		offsets: d(0, 0, 1, 0, 0, 1, 1, 1),
		turns: [orientationCount]turn{
			{deltas: d(0, 0, -1, -1, 1, -1, 0, -2)},
			{deltas: d(0, 0, -1, 1, -1, -1, -2, 0)},
			{deltas: d(0, 0, 1, 1, -1, 1, 0, 2)},
			{deltas: d(0, 0, 1, -1, 1, 1, 2, 0)},
		},
	},
	ShapeT: {
		name:    "T",
		color:   core.ColorMagenta,
		spawn:   Point{X: 6, Y: 1},
		offsets: d(0, 0, -1, 0, 1, 0, 0, -1),
		turns: [orientationCount]turn{
			{deltas: d(0, 0, 1, 1, -1, -1, -1, 1)},
			{deltas: d(0, 0, 1, -1, -1, 1, 1, 1)},
			{deltas: d(0, 0, -1, -1, 1, 1, 1, -1)},
			{deltas: d(0, 0, -1, 1, 1, -1, -1, -1)},
		},
	},
	ShapeSZ: {
		name:    "SZ",
		color:   core.ColorGreen,
		spawn:   Point{X: 5, Y: -2},
		offsets: d(0, 0, 0, 1, 1, 1, 1, 2),
		turns: [orientationCount]turn{
			{deltas: d(0, 0, -1, -1, -2, 0, -3, -1)},
			{deltas: d(1, 0, 2, 1, 1, 0, 2, 1), recolor: core.ColorRed},
			{deltas: d(-1, -1, 0, -2, 1, -1, 2, -2)},
			{deltas: d(0, 1, -1, 2, 0, 1, -1, 2), recolor: core.ColorGreen},
		},
	},
	ShapeDomino: {
		name:    "Domino",
		color:   core.ColorWhite,
		spawn:   Point{X: 5, Y: -1},
		offsets: d(0, 0, 1, 0),
		turns: [orientationCount]turn{
			{deltas: d(0, 0, -1, -1)},
			{deltas: d(0, 0, -1, 1)},
			{deltas: d(0, 0, 1, 1)},
			{deltas: d(0, 0, 1, -1)},
		},
	},
}

func (s Shape) def() shapeDef {
	def, ok := shapeDefs[s]
	if !ok {
		panic(fmt.Sprintf("blocks: unknown shape %d", int(s)))
	}
	return def
}

// String returns the shape's short name.
func (s Shape) String() string {
	if def, ok := shapeDefs[s]; ok {
		return def.name
	}
	return "unknown"
}

// Color returns the color a freshly spawned piece of this shape has.
func (s Shape) Color() core.Color {
	return s.def().color
}

// Spawn returns the anchor position pieces of this shape start at.
func (s Shape) Spawn() Point {
	return s.def().spawn
}

// Size returns the number of cells in the shape.
func (s Shape) Size() int {
	return len(s.def().offsets)
}

// ParseShape looks a shape up by name, case-insensitively.
func ParseShape(name string) (Shape, error) {
	for _, s := range AllShapes {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("blocks: unknown shape %q", name)
}
