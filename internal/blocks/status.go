package blocks

// Status is the engine's state-machine state.
type Status int

const (
	// StatusNewPolyomino means a fresh piece is waiting at its spawn point.
	StatusNewPolyomino Status = iota
	// StatusFalling means the current piece moved down on the last step.
	StatusFalling
	// StatusStopped means the piece cannot fall but has not been committed.
	StatusStopped
	// StatusCollapsing means the grid holds cells pending removal.
	StatusCollapsing
	// StatusGameOver is terminal.
	StatusGameOver
)

var statusNames = [...]string{
	StatusNewPolyomino: "new_polyomino",
	StatusFalling:      "falling",
	StatusStopped:      "stopped",
	StatusCollapsing:   "collapsing",
	StatusGameOver:     "game_over",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// InPlay reports whether the current piece is meaningful in this state.
func (s Status) InPlay() bool {
	return s != StatusCollapsing && s != StatusGameOver
}
