package engine

import "darkchess/experiments/metrics"

type Engine interface {
	// Run plays a game till it is decided, drawn or a max number of turns is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
