package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
)

const (
	NoProgressLimit = 180 // moves without capture or reveal before a draw
	LongCatchCycle  = 4   // actions in one repeated cycle
	LongCatchLimit  = 3   // repetitions of the cycle that draw the game
)

// State is an immutable dark chess position. Every transition returns a new
// State; the receiver is never modified, so a State can be shared between
// goroutines.
type State struct {
	board   [BoardSize]Piece
	hidden  [ColoredPieces]int // face-down copies left per colored piece
	squares [PieceCount]int    // squares holding each piece state, sums to BoardSize

	mover    Color
	own      Color
	opponent Color
	winner   Color

	stale   int // moves since the last capture or reveal
	last    Action
	history *history
}

// NewState returns the opening position: every square face down.
func NewState() *State {
	s := &State{
		hidden:   StandardSet,
		mover:    Unknown,
		own:      Unknown,
		opponent: Unknown,
		winner:   Unknown,
		last:     NoAction,
	}
	for sq := range s.board {
		s.board[sq] = Unrevealed
	}
	s.squares[Unrevealed] = BoardSize
	return s
}

// Apply plays an action, drawing the identity of a revealed piece from the
// remaining hidden pool with rng.
func (s *State) Apply(action Action, rng *rand.Rand) (*State, error) {
	if !s.IsLegal(action) {
		return nil, fmt.Errorf("%w: id %d for %s", ErrInvalidAction, action.ID, action.Player)
	}

	t := ActionTable[action.ID]
	if !t.IsReveal() {
		return s.move(action), nil
	}

	piece, err := s.drawHidden(rng)
	if err != nil {
		return nil, err
	}
	next := s.flip(action, piece)
	if action.Player == Unknown {
		// The very first reveal of a playout decides which side we are
		next.own = piece.Color()
		next.opponent = piece.Color().Other()
	}
	return next.settle(action), nil
}

// Move applies a move or capture reported from outside, for the side to move.
func (s *State) Move(from, to int) (*State, error) {
	id, ok := LookupAction(from, to)
	if !ok || from == to {
		return nil, fmt.Errorf("%w: no move from %d to %d", ErrInvalidAction, from, to)
	}
	action := Action{Player: s.mover, ID: id}
	if !s.IsLegal(action) {
		return nil, fmt.Errorf("%w: %s-%s is illegal for %s",
			ErrInvalidAction, SquareName(from), SquareName(to), s.mover)
	}
	return s.move(action), nil
}

// Reveal applies a reveal reported from outside with its known piece.
// Unlike Apply it leaves the own and opponent colors alone.
func (s *State) Reveal(sq int, piece Piece) (*State, error) {
	if !onBoard(sq) || s.board[sq] != Unrevealed {
		return nil, fmt.Errorf("%w: square %d is not face down", ErrInvalidAction, sq)
	}
	if !piece.IsColored() {
		return nil, fmt.Errorf("%w: cannot reveal %q", ErrInvalidAction, piece)
	}
	if s.hidden[piece] <= 0 {
		return nil, fmt.Errorf("%w: no hidden %q left", ErrInconsistentState, piece)
	}
	id, _ := LookupAction(sq, sq)
	action := Action{Player: s.mover, ID: id}
	return s.flip(action, piece).settle(action), nil
}

func (s *State) flip(action Action, piece Piece) *State {
	sq := ActionTable[action.ID].From
	next := *s
	next.board[sq] = piece
	next.hidden[piece]--
	next.squares[Unrevealed]--
	next.squares[piece]++
	next.stale = 0
	if s.mover == Unknown {
		next.mover = piece.Color().Other()
	} else {
		next.mover = s.mover.Other()
	}
	return &next
}

func (s *State) move(action Action) *State {
	t := ActionTable[action.ID]
	src, dst := s.board[t.From], s.board[t.To]

	next := *s
	next.board[t.To] = src
	next.board[t.From] = Empty
	if dst != Empty {
		next.squares[dst]--
		next.squares[Empty]++
		next.stale = 0
	} else {
		next.stale++
	}
	next.mover = s.mover.Other()
	return next.settle(action)
}

// settle records the action and decides the game when the new side to move
// is left without a legal action.
func (s *State) settle(action Action) *State {
	s.last = action
	s.history = s.history.push(action)
	if !s.hasActions() {
		s.winner = s.mover.Other()
	}
	return s
}

// drawHidden picks a face-down piece weighted by the copies left of each kind.
func (s *State) drawHidden(rng *rand.Rand) (Piece, error) {
	total := s.squares[Unrevealed]
	if total <= 0 {
		return Empty, fmt.Errorf("%w: reveal with no face-down square", ErrInconsistentState)
	}

	n := rng.Intn(total)
	for p := 0; p < ColoredPieces; p++ {
		n -= s.hidden[p]
		if n < 0 {
			return Piece(p), nil
		}
	}
	return Empty, fmt.Errorf("%w: hidden pool smaller than %d face-down squares", ErrInconsistentState, total)
}

// Terminal reports a decided game, a no-progress draw or a long-catch draw.
func (s *State) Terminal() bool {
	if s.winner != Unknown {
		return true
	}
	if s.stale >= NoProgressLimit {
		return true
	}
	return s.longCatch()
}

// longCatch detects the last cycle of actions repeating LongCatchLimit times
// back to back at the end of the history.
func (s *State) longCatch() bool {
	window := LongCatchLimit * LongCatchCycle
	if s.stale < window {
		return false
	}
	recent := s.history.recent(window)
	if len(recent) < window {
		return false
	}
	for i := LongCatchCycle; i < window; i++ {
		if recent[i].ID != recent[i-LongCatchCycle].ID {
			return false
		}
	}
	return true
}

// Result scores a finished game from our side: 1 win, -1 loss, 0 otherwise.
func (s *State) Result() float64 {
	if !s.Terminal() {
		return 0
	}
	switch {
	case s.winner == Unknown:
		return 0
	case s.winner == s.own:
		return 1
	case s.winner == s.opponent:
		return -1
	default:
		return 0
	}
}

// WithColors returns a copy that plays own against its opposite color.
func (s *State) WithColors(own Color) *State {
	next := *s
	next.own = own
	next.opponent = own.Other()
	return &next
}

// WithMover returns a copy with the given side to move.
func (s *State) WithMover(mover Color) *State {
	next := *s
	next.mover = mover
	return &next
}

func (s *State) Board() [BoardSize]Piece { return s.board }
func (s *State) At(sq int) Piece         { return s.board[sq] }
func (s *State) Mover() Color            { return s.mover }
func (s *State) Own() Color              { return s.own }
func (s *State) Opponent() Color         { return s.opponent }
func (s *State) Winner() Color           { return s.winner }
func (s *State) StaleMoves() int         { return s.stale }
func (s *State) LastAction() Action      { return s.last }

// Hidden is the number of face-down copies left of a colored piece.
func (s *State) Hidden(p Piece) int {
	if !p.IsColored() {
		return 0
	}
	return s.hidden[p]
}

// OnBoard is the number of squares currently holding p.
func (s *State) OnBoard(p Piece) int {
	return s.squares[p]
}

// Alive counts the copies of a colored piece still in the game, face up or down.
func (s *State) Alive(p Piece) int {
	return s.OnBoard(p) + s.Hidden(p)
}

// History returns the played actions in chronological order.
func (s *State) History() []Action {
	return s.history.slice()
}

// String draws the board with rank 8 on top, as the arbiter console does.
func (s *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s]", s.mover)
	for p := 0; p < ColoredPieces; p++ {
		fmt.Fprintf(&sb, " %d", s.hidden[p])
	}
	sb.WriteByte('\n')
	for rank := RankCount - 1; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d", rank+1)
		for file := 0; file < FileCount; file++ {
			fmt.Fprintf(&sb, " %s", s.board[file*RankCount+rank])
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d\n")
	return sb.String()
}
