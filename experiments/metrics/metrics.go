package metrics

import (
	"time"

	"darkchess/searcher"
)

// AgentConfig describes the search settings of one agent in an experiment.
type AgentConfig struct {
	ID          int
	Goroutines  int
	Simulations int
	Exploration float64 // zero keeps the default
}

// Options turns the config into search options.
func (c AgentConfig) Options(seed uint64, seeded bool) []searcher.Option {
	options := []searcher.Option{
		searcher.WithGoroutines(c.Goroutines),
		searcher.WithSimulations(c.Simulations),
		searcher.WithMetrics(),
	}
	if c.Exploration > 0 {
		options = append(options, searcher.WithExploration(c.Exploration))
	}
	if seeded {
		options = append(options, searcher.WithSeed(seed))
	}
	return options
}

type MoveMetric struct {
	Step  int
	Agent int // 1 or 2
	Color string
	Move  string
	searcher.SearchMetrics
}

type GameMetric struct {
	FirstColor  string // color the first agent ended up playing
	Winner      int    // 1 or 2, 0 for a draw
	WinnerColor string
	Reason      string
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	TotalMoves  int
}

// Game end reasons.
const (
	ReasonWin      = "win"
	ReasonResign   = "resign"
	ReasonDraw     = "draw"
	ReasonMaxTurns = "max_turns"
)
