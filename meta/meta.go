// meta/meta.go
package meta

// GO_ROUTINES defines the number of search goroutines per agent.
const GO_ROUTINES = 4

// SIMULATIONS defines the number of MCTS iterations per move.
const SIMULATIONS = 10000

// MAX_TURNS caps a refereed game. The no-progress rule ends most games
// long before this.
const MAX_TURNS = 1000

const (
	PROTOCOL_VERSION = "1.1.0"
	AI_NAME          = "MyAI"
	AI_VERSION       = "1.0.0"
)
