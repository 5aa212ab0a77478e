package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"darkchess/experiments/metrics"
	"darkchess/game"
	"darkchess/meta"
	"darkchess/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type LocalOption func(l *Local)

// WithLayoutSeed fixes the shuffle of the hidden layout.
func WithLayoutSeed(seed uint64) LocalOption {
	return func(l *Local) {
		l.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMaxTurns(turns int) LocalOption {
	return func(l *Local) {
		if turns > 0 {
			l.maxTurns = turns
		}
	}
}

// Local referees a game between two in-process agents. It alone knows the
// face-down layout, checks every move against its own copy of the public
// state and reports each move and reveal to both agents.
type Local struct {
	State    *game.State
	Layout   [game.BoardSize]game.Piece
	Agents   [2]*Agent
	Colors   [2]game.Color // Unknown until the first reveal
	maxTurns int
	rng      *rand.Rand
}

var _ Engine = (*Local)(nil)

// LocalEngine deals a shuffled layout for a game between agent1, who moves
// first, and agent2.
func LocalEngine(agent1, agent2 *Agent, options ...LocalOption) *Local {
	l := &Local{
		State:    game.NewState(),
		Agents:   [2]*Agent{agent1, agent2},
		Colors:   [2]game.Color{game.Unknown, game.Unknown},
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewSource(frand.Uint64n(math.MaxUint64)))
	}

	pieces := make([]game.Piece, 0, game.BoardSize)
	for p, n := range game.StandardSet {
		for i := 0; i < n; i++ {
			pieces = append(pieces, game.Piece(p))
		}
	}
	l.rng.Shuffle(len(pieces), func(i, j int) {
		pieces[i], pieces[j] = pieces[j], pieces[i]
	})
	copy(l.Layout[:], pieces)

	for _, agent := range l.Agents {
		agent.InitBoard()
	}
	return l
}

// Run executes the game loop until the game ends or the turn limit is hit.
func (l *Local) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	turn := 1
	resigned := game.Unknown
	for ; !l.State.Terminal() && turn <= l.maxTurns; turn++ {
		index := l.toMove()
		color := l.Colors[index]

		move, searchMetric, err := l.Agents[index].FindMove(color)
		if errors.Is(err, searcher.ErrNoLegalActions) {
			resigned = l.State.Mover()
			log.Info().Msgf("agent %d resigns on turn %d", index+1, turn)
			break
		}
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("agent %d on turn %d: %w", index+1, turn, err)
		}
		if err := l.play(index, move); err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("agent %d on turn %d: %w", index+1, turn, err)
		}
		// Colors are known once play has seen the opening reveal
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:          turn,
			Agent:         index + 1,
			Color:         l.Colors[index].String(),
			Move:          move.String(),
			SearchMetrics: searchMetric,
		})
		log.Debug().Msgf("turn %d: agent %d played %s", turn, index+1, move)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.FirstColor = l.Colors[0].String()

	winner := l.State.Winner()
	switch {
	case resigned != game.Unknown:
		winner = resigned.Other()
		gameMetric.Reason = metrics.ReasonResign
	case winner != game.Unknown:
		gameMetric.Reason = metrics.ReasonWin
	case l.State.Terminal():
		gameMetric.Reason = metrics.ReasonDraw
	default:
		gameMetric.Reason = metrics.ReasonMaxTurns
	}
	gameMetric.WinnerColor = winner.String()
	for i, c := range l.Colors {
		if winner != game.Unknown && c == winner {
			gameMetric.Winner = i + 1
		}
	}

	log.Info().Msgf("game over after %d moves: %s (winner %s)", gameMetric.TotalMoves, gameMetric.Reason, gameMetric.WinnerColor)
	return gameMetric, moveMetrics, nil
}

// toMove is the index of the agent whose turn it is. The first agent opens.
func (l *Local) toMove() int {
	mover := l.State.Mover()
	if mover == game.Unknown || mover == l.Colors[0] {
		return 0
	}
	return 1
}

// play checks a move on the referee's state and reports it to both agents.
func (l *Local) play(index int, move game.Move) error {
	from, to := move.From(), move.To()
	if from != to {
		next, err := l.State.Move(from, to)
		if err != nil {
			return err
		}
		l.State = next
		for _, agent := range l.Agents {
			if err := agent.Move(from, to); err != nil {
				return err
			}
		}
		return nil
	}

	piece := l.Layout[from]
	next, err := l.State.Reveal(from, piece)
	if err != nil {
		return err
	}
	l.State = next
	for _, agent := range l.Agents {
		if err := agent.Flip(from, piece); err != nil {
			return err
		}
	}

	if l.Colors[index] == game.Unknown {
		l.Colors[index] = piece.Color()
		l.Colors[1-index] = piece.Color().Other()
		for i, agent := range l.Agents {
			agent.SetColor(l.Colors[i])
		}
		log.Info().Msgf("agent 1 plays %s, agent 2 plays %s", l.Colors[0], l.Colors[1])
	}
	return nil
}
