package main

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"darkchess/experiments"
	"darkchess/experiments/metrics"
	"darkchess/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	experiment := flag.String("experiment", "selfplay", "Experiment to run: selfplay, strength or throughput")
	games := flag.Int("games", 10, "Number of games per matchup")
	goroutines := flag.String("goroutines", strconv.Itoa(meta.GO_ROUTINES), "Comma separated goroutine counts per agent")
	simulations := flag.Int("simulations", meta.SIMULATIONS, "Number of MCTS iterations per move")
	maxTurns := flag.Int("max-turns", meta.MAX_TURNS, "Turn limit per game")
	seed := flag.Uint64("seed", 0, "Seed for layouts and searches, 0 for random")
	out := flag.String("out", "results", "Directory for experiment results")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	logLevel, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(logLevel)

	counts, err := parseCounts(*goroutines)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid goroutine counts")
	}

	settings := experiments.Settings{
		Games:    *games,
		OutDir:   *out,
		MaxTurns: *maxTurns,
		Seed:     *seed,
		Seeded:   *seed != 0,
	}

	switch *experiment {
	case "selfplay":
		config := metrics.AgentConfig{ID: 1, Goroutines: counts[0], Simulations: *simulations}
		err = experiments.RunSelfPlay(settings, config)
	case "strength":
		err = experiments.RunParallelizationToStrength(settings, *simulations, counts)
	case "throughput":
		err = experiments.RunThroughputExperiment(settings, *simulations, counts)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
	}
}

func parseCounts(list string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, nil
}
