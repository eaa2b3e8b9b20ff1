package blocks

import "errors"

// ErrInvalidState is returned by accessors whose precondition on the engine
// status does not hold. It signals a caller bug, not a game outcome.
var ErrInvalidState = errors.New("blocks: invalid engine state")
