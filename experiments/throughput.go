package experiments

import (
	"darkchess/experiments/metrics"
)

// RunThroughputExperiment plays every config against itself for the same
// playing strength and similar game length, so the move records compare
// search duration per goroutine count.
func RunThroughputExperiment(settings Settings, simulations int, goroutines []int) error {
	configs := make([]metrics.AgentConfig, 0, len(goroutines))
	matchUps := [][]metrics.AgentConfig{}
	for i, g := range goroutines {
		config := metrics.AgentConfig{ID: i + 1, Goroutines: g, Simulations: simulations}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return runExperiment("throughput", settings, configs, matchUps)
}
