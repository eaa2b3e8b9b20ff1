// Package blocks implements the falling-block puzzle engine: the icon and
// cell model, the polyomino shapes and their transforms, piece generators,
// collapse policies, and the step-driven game state machine.
//
// Nothing in this package knows about terminals, timers or storage. The
// platform drives an Engine by calling Step and the player-intent methods
// from a single goroutine and reads its state back for rendering.
package blocks

import "github.com/vovakirdan/blockdrop/internal/core"

// Icon is the colored block occupying one grid slot. The color is fixed at
// construction; the magic flag may change while the icon belongs to a piece.
type Icon struct {
	color core.Color
	magic bool
}

// NewIcon creates an icon with the given color and magic flag.
func NewIcon(color core.Color, magic bool) *Icon {
	return &Icon{color: color, magic: magic}
}

// Color returns the icon's color.
func (i *Icon) Color() core.Color {
	return i.color
}

// Magic reports whether the icon is flagged magic.
func (i *Icon) Magic() bool {
	return i.magic
}

// SetMagic sets the magic flag.
func (i *Icon) SetMagic(magic bool) {
	i.magic = magic
}

// Matches reports whether other is non-nil and has the same color.
func (i *Icon) Matches(other *Icon) bool {
	return other != nil && other.color == i.color
}

// Clone returns an independent copy.
func (i *Icon) Clone() *Icon {
	c := *i
	return &c
}

// Equal compares color and magic flag.
func (i *Icon) Equal(other *Icon) bool {
	if i == nil || other == nil {
		return i == other
	}
	return i.color == other.color && i.magic == other.magic
}
