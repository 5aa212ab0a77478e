package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"darkchess/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func countRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows)
}

func TestRunSelfPlay(t *testing.T) {
	settings := Settings{Games: 2, OutDir: t.TempDir(), MaxTurns: 12, Seed: 42, Seeded: true}
	config := metrics.AgentConfig{ID: 1, Goroutines: 2, Simulations: 10}

	require.NoError(t, RunSelfPlay(settings, config))

	dirs, err := filepath.Glob(filepath.Join(settings.OutDir, "selfplay", "*"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)

	require.Equal(t, 2, countRows(t, filepath.Join(dirs[0], "agent_configs.csv")))
	require.Equal(t, 3, countRows(t, filepath.Join(dirs[0], "game_records.csv")))

	moves := countRows(t, filepath.Join(dirs[0], "move_records.csv")) - 1
	require.Greater(t, moves, 0)
	require.LessOrEqual(t, moves, 2*settings.MaxTurns)
}

func TestRunThroughputExperiment(t *testing.T) {
	settings := Settings{Games: 1, OutDir: t.TempDir(), MaxTurns: 4, Seed: 1, Seeded: true}

	require.NoError(t, RunThroughputExperiment(settings, 8, []int{1, 2}))

	dirs, err := filepath.Glob(filepath.Join(settings.OutDir, "throughput", "*"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	require.Equal(t, 3, countRows(t, filepath.Join(dirs[0], "agent_configs.csv")))
	require.Equal(t, 3, countRows(t, filepath.Join(dirs[0], "game_records.csv")), "one game per matchup")
}

func TestRunParallelizationToStrength(t *testing.T) {
	settings := Settings{Games: 1, OutDir: t.TempDir(), MaxTurns: 4, Seed: 9, Seeded: true}

	require.NoError(t, RunParallelizationToStrength(settings, 8, []int{2, 3}))

	dirs, err := filepath.Glob(filepath.Join(settings.OutDir, "parallelization_to_strength", "*"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	require.Equal(t, 4, countRows(t, filepath.Join(dirs[0], "agent_configs.csv")), "baseline plus one config per count")

	f, err := os.Open(filepath.Join(dirs[0], "game_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// The sequential baseline opens the first matchup and replies in the second
	require.Equal(t, []string{"0", "1"}, rows[1][1:3])
	require.Equal(t, []string{"2", "0"}, rows[2][1:3])
}
