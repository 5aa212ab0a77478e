package game

import "errors"

// Sentinel errors for rule engine failures. Check them with errors.Is.
var (
	// ErrInvalidAction indicates an action id outside the table or an action
	// that is illegal on the current board.
	ErrInvalidAction = errors.New("invalid action")

	// ErrMalformedSnapshot indicates board or count data that breaks the
	// board invariants.
	ErrMalformedSnapshot = errors.New("malformed snapshot")

	// ErrInconsistentState indicates broken bookkeeping, such as a reveal
	// with no hidden piece left to draw.
	ErrInconsistentState = errors.New("inconsistent state")
)
