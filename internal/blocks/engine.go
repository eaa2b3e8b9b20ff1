package blocks

import "fmt"

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSize sets the board dimensions. Non-positive values keep the default.
func WithSize(width, height int) EngineOption {
	return func(e *Engine) {
		if width > 0 {
			e.width = width
		}
		if height > 0 {
			e.height = height
		}
	}
}

// Engine runs one game: it owns the grid, the current piece, the status and
// the pending collapse list. It is not safe for concurrent use; a single
// goroutine must drive Step and the player-intent methods.
type Engine struct {
	width, height int

	grid     *Grid
	gen      Generator
	policy   Policy
	current  *Polyomino
	status   Status
	collapse []Point
}

// NewEngine creates an engine with an empty grid and the first generated
// piece at its spawn point. The initial status is StatusNewPolyomino.
func NewEngine(gen Generator, policy Policy, opts ...EngineOption) *Engine {
	e := &Engine{
		width:  DefaultWidth,
		height: DefaultHeight,
		gen:    gen,
		policy: policy,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.grid = NewGrid(e.width, e.height)
	e.current = gen.Next()
	e.status = StatusNewPolyomino
	return e
}

// Width returns the number of board columns.
func (e *Engine) Width() int {
	return e.width
}

// Height returns the number of board rows.
func (e *Engine) Height() int {
	return e.height
}

// Status returns the current state.
func (e *Engine) Status() Status {
	return e.status
}

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool {
	return e.status == StatusGameOver
}

// Score returns the policy's current score.
func (e *Engine) Score() int {
	return e.policy.Score()
}

// IconAt returns a copy of the icon at (row, col). ok is false when the slot
// is empty or out of range.
func (e *Engine) IconAt(row, col int) (Icon, bool) {
	icon := e.grid.At(row, col)
	if icon == nil {
		return Icon{}, false
	}
	return *icon, true
}

// Current returns a copy of the piece in play.
func (e *Engine) Current() (*Polyomino, error) {
	if !e.status.InPlay() {
		return nil, fmt.Errorf("current piece while %s: %w", e.status, ErrInvalidState)
	}
	return e.current.Clone(), nil
}

// CellsToCollapse returns a copy of the cells pending removal. It fails
// unless the engine is collapsing.
func (e *Engine) CellsToCollapse() ([]Point, error) {
	if len(e.collapse) == 0 {
		return nil, fmt.Errorf("cells to collapse while %s: %w", e.status, ErrInvalidState)
	}
	return append([]Point(nil), e.collapse...), nil
}

// Collides reports whether p overlaps an occupied slot or leaves the board
// through a side or the floor. Cells above row 0 only need a valid column.
func (e *Engine) Collides(p *Polyomino) bool {
	for _, c := range p.cells {
		if c.X < 0 || c.X > e.width-1 || c.Y > e.height-1 {
			return true
		}
		if c.Y >= 0 && e.grid.Occupied(c.Y, c.X) {
			return true
		}
	}
	return false
}

// ShiftLeft moves the current piece one column left if it fits.
func (e *Engine) ShiftLeft() bool {
	return e.try((*Polyomino).ShiftLeft)
}

// ShiftRight moves the current piece one column right if it fits.
func (e *Engine) ShiftRight() bool {
	return e.try((*Polyomino).ShiftRight)
}

// Transform rotates the current piece if the result fits.
func (e *Engine) Transform() bool {
	return e.try((*Polyomino).Transform)
}

// Cycle moves the magic flag of the current piece to its next cell.
func (e *Engine) Cycle() bool {
	return e.current.Cycle()
}

// try applies op to a clone first and only touches the live piece when the
// clone is collision free.
func (e *Engine) try(op func(*Polyomino)) bool {
	moved := e.current.Clone()
	op(moved)
	if e.Collides(moved) {
		return false
	}
	op(e.current)
	return true
}

func (e *Engine) canShiftDown() bool {
	moved := e.current.Clone()
	moved.ShiftDown()
	return !e.Collides(moved)
}

// Step advances the state machine by one tick and returns the new status.
func (e *Engine) Step() Status {
	switch e.status {
	case StatusGameOver:
	case StatusNewPolyomino, StatusFalling:
		e.status = StatusFalling
		if e.canShiftDown() {
			e.current.ShiftDown()
			break
		}
		written := e.place(e.current)
		e.collapse = e.policy.CellsToCollapse(e.grid)
		if len(e.collapse) > 0 {
			e.status = StatusCollapsing
			break
		}
		for _, p := range written {
			e.grid.Set(p.Y, p.X, nil)
		}
		e.status = StatusStopped
	case StatusStopped:
		if e.canShiftDown() {
			e.current.ShiftDown()
			e.status = StatusFalling
			break
		}
		e.place(e.current)
		e.spawn()
	case StatusCollapsing:
		e.grid.Collapse(e.collapse)
		e.collapse = e.policy.CellsToCollapse(e.grid)
		if len(e.collapse) == 0 {
			e.spawn()
		}
	}
	return e.status
}

// place writes the in-bounds cells of p into the grid and returns the slots
// it wrote.
func (e *Engine) place(p *Polyomino) []Point {
	written := make([]Point, 0, len(p.cells))
	for _, c := range p.cells {
		if !e.grid.InBounds(c.Y, c.X) {
			continue
		}
		e.grid.Set(c.Y, c.X, c.Icon.Clone())
		written = append(written, c.Point)
	}
	return written
}

func (e *Engine) spawn() {
	e.current = e.gen.Next()
	if e.Collides(e.current) {
		e.status = StatusGameOver
		return
	}
	e.status = StatusNewPolyomino
}
