package experiments

import (
	"fmt"

	"darkchess/engine"
	"darkchess/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Settings are shared by every game of an experiment.
type Settings struct {
	Games    int // per matchup
	OutDir   string
	MaxTurns int
	Seed     uint64
	Seeded   bool // derive layouts and search seeds from Seed
}

// RunSelfPlay pits an agent against a copy of itself.
func RunSelfPlay(settings Settings, config metrics.AgentConfig) error {
	matchUps := [][]metrics.AgentConfig{{config, config}}
	return runExperiment("selfplay", settings, []metrics.AgentConfig{config}, matchUps)
}

// RunParallelizationToStrength pairs each parallel agent against a
// sequential baseline with the same simulation budget.
func RunParallelizationToStrength(settings Settings, simulations int, goroutines []int) error {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Simulations: simulations}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, g := range goroutines {
		config := metrics.AgentConfig{ID: i + 1, Goroutines: g, Simulations: simulations}
		configs = append(configs, config)
		// Alternate the opening agent between matchups
		if i%2 == 0 {
			matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
		} else {
			matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
		}
	}
	return runExperiment("parallelization_to_strength", settings, configs, matchUps)
}

func runExperiment(name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) error {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < settings.Games; i++ {
			count++
			gameMetric, moveMetrics, err := runGame(settings, uint64(count), config1, config2)
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d: %s, winner %s",
				mi+1, len(matchUps), i+1, settings.Games, gameMetric.Reason, gameMetric.WinnerColor)
		}
	}

	log.Info().Msgf("completed %s experiment", name)
	return writeResults(name, settings, configs, gameRecords, moveRecords)
}

func writeResults(name string, settings Settings, configs []metrics.AgentConfig,
	gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(settings.OutDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return nil
}

// runGame plays one refereed game between two agents. With a seeded
// experiment each game gets its own layout and search seeds.
func runGame(settings Settings, game uint64, config1, config2 metrics.AgentConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	seed := settings.Seed + game*3
	agent1 := engine.NewAgent(config1.Options(seed+1, settings.Seeded)...)
	agent2 := engine.NewAgent(config2.Options(seed+2, settings.Seeded)...)

	options := []engine.LocalOption{engine.WithMaxTurns(settings.MaxTurns)}
	if settings.Seeded {
		options = append(options, engine.WithLayoutSeed(seed))
	}
	return engine.LocalEngine(agent1, agent2, options...).Run()
}
