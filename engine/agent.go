package engine

import (
	"errors"
	"fmt"

	"darkchess/game"
	"darkchess/meta"
	"darkchess/searcher"

	"github.com/rs/zerolog/log"
)

// Agent keeps one game state in step with the arbiter and searches it for
// moves.
type Agent struct {
	state *game.State
	mcts  *searcher.MCTS[*game.State, game.Action]
}

// NewAgent returns an agent at the opening position. The options configure
// its search.
func NewAgent(options ...searcher.Option) *Agent {
	return &Agent{
		state: game.NewState(),
		mcts:  searcher.NewMCTS[*game.State, game.Action](options...),
	}
}

func (a *Agent) ProtocolVersion() string { return meta.PROTOCOL_VERSION }
func (a *Agent) Name() string            { return meta.AI_NAME }
func (a *Agent) Version() string         { return meta.AI_VERSION }

// State is the agent's current view of the game.
func (a *Agent) State() *game.State {
	return a.state
}

// InitBoard resets to the opening position.
func (a *Agent) InitBoard() {
	a.state = game.NewState()
}

// InitBoardFrom resets to a position listed by the arbiter.
func (a *Agent) InitBoardFrom(fields []string) error {
	snap, err := game.ParseBoard(fields)
	if err != nil {
		return err
	}
	return a.Load(snap)
}

// Load resets to a snapshot.
func (a *Agent) Load(snap game.Snapshot) error {
	state, err := game.FromSnapshot(snap)
	if err != nil {
		return err
	}
	a.state = state
	return nil
}

func (a *Agent) SetColor(color game.Color) {
	a.state = a.state.WithColors(color)
}

// Move applies a move or capture played on the real board.
func (a *Agent) Move(from, to int) error {
	next, err := a.state.Move(from, to)
	if err != nil {
		return fmt.Errorf("move %s: %w", game.MakeMove(from, to), err)
	}
	a.state = next
	return nil
}

// Flip applies a reveal played on the real board.
func (a *Agent) Flip(sq int, piece game.Piece) error {
	next, err := a.state.Reveal(sq, piece)
	if err != nil {
		return fmt.Errorf("flip %s(%s): %w", game.SquareName(sq), piece, err)
	}
	a.state = next
	return nil
}

// GenerateMove searches for color's next move. A side without a legal
// action resigns with MoveNull.
func (a *Agent) GenerateMove(color game.Color) (game.Move, error) {
	move, _, err := a.FindMove(color)
	if errors.Is(err, searcher.ErrNoLegalActions) {
		log.Info().Msgf("%s has no legal action, resigning", color)
		return game.MoveNull, nil
	}
	return move, err
}

// FindMove searches for color's next move and reports the search metrics.
// An Unknown color searches for whoever is to move.
func (a *Agent) FindMove(color game.Color) (game.Move, searcher.SearchMetrics, error) {
	state := a.state
	if color != game.Unknown {
		if state.Own() != color {
			state = state.WithColors(color)
		}
		if state.Mover() != color {
			log.Warn().Msgf("asked to move %s while %s is to move", color, state.Mover())
			state = state.WithMover(color)
		}
	}

	action, metric, err := a.mcts.Search(state)
	if err != nil {
		return game.MoveNull, metric, err
	}
	t := action.Transition()
	return game.MakeMove(t.From, t.To), metric, nil
}
