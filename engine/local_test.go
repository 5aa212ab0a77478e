package engine

import (
	"testing"

	"darkchess/experiments/metrics"
	"darkchess/game"
	"darkchess/searcher"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestAgent(seed uint64) *Agent {
	return NewAgent(searcher.WithGoroutines(1), searcher.WithSimulations(20), searcher.WithSeed(seed), searcher.WithMetrics())
}

func TestLocalEngineDealsFullSet(t *testing.T) {
	local := LocalEngine(newTestAgent(1), newTestAgent(2), WithLayoutSeed(3))

	var counts [game.ColoredPieces]int
	for _, piece := range local.Layout {
		require.True(t, piece.IsColored())
		counts[piece]++
	}
	require.Equal(t, game.StandardSet, counts)

	same := LocalEngine(newTestAgent(1), newTestAgent(2), WithLayoutSeed(3))
	require.Equal(t, local.Layout, same.Layout, "a layout seed fixes the deal")
}

func TestLocalEngineRun(t *testing.T) {
	const maxTurns = 40
	agent1, agent2 := newTestAgent(1), newTestAgent(2)
	local := LocalEngine(agent1, agent2, WithLayoutSeed(5), WithMaxTurns(maxTurns))

	gameMetric, moveMetrics, err := local.Run()
	require.NoError(t, err)

	require.NotEmpty(t, moveMetrics)
	require.LessOrEqual(t, len(moveMetrics), maxTurns)
	require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
	require.Equal(t, 1, moveMetrics[0].Agent, "the first agent opens")
	for i, mm := range moveMetrics {
		require.Equal(t, i+1, mm.Step)
		require.Equal(t, int64(20), mm.Episodes)
		require.Equal(t, local.Colors[mm.Agent-1].String(), mm.Color, "move %d", mm.Step)
	}
	require.NotEqual(t, game.Unknown.String(), moveMetrics[0].Color, "the opening reveal is recorded with its color")

	require.NotEqual(t, game.Unknown, local.Colors[0], "the opening reveal assigns colors")
	require.Equal(t, local.Colors[0].Other(), local.Colors[1])
	require.Equal(t, local.Colors[0].String(), gameMetric.FirstColor)
	require.Equal(t, local.Colors[0], agent1.State().Own())
	require.Equal(t, local.Colors[1], agent2.State().Own())

	// Both agents saw every move and reveal the referee accepted
	board := local.State.Board()
	require.Empty(t, cmp.Diff(board, agent1.State().Board()))
	require.Empty(t, cmp.Diff(board, agent2.State().Board()))
	for p := game.Piece(0); p < game.Unrevealed; p++ {
		require.Equal(t, local.State.Hidden(p), agent1.State().Hidden(p), "hidden %s", p)
	}

	switch gameMetric.Reason {
	case metrics.ReasonWin, metrics.ReasonResign:
		require.Contains(t, []int{1, 2}, gameMetric.Winner)
		require.Equal(t, local.Colors[gameMetric.Winner-1].String(), gameMetric.WinnerColor)
	case metrics.ReasonDraw, metrics.ReasonMaxTurns:
		require.Equal(t, 0, gameMetric.Winner)
	default:
		t.Fatalf("unexpected reason %q", gameMetric.Reason)
	}
}
