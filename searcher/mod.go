package searcher

import (
	"errors"

	"golang.org/x/exp/rand"
)

// ErrNoLegalActions is returned when a search starts from a finished or
// stalemated position.
var ErrNoLegalActions = errors.New("no legal actions")

// State is what a game must offer to be searched. States are immutable:
// Apply returns a new state and leaves the receiver untouched, so the same
// state can be read by many goroutines. The rng belongs to the calling
// goroutine and resolves any chance outcome of the action.
type State[S any, A any] interface {
	Terminal() bool
	// Result scores a terminal state from the searching side's point of view
	Result() float64
	Actions() []A
	Apply(action A, rng *rand.Rand) (S, error)
	// LastAction is the action that produced this state
	LastAction() A
}
