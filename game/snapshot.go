package game

import "fmt"

// Snapshot is a position handed over from outside the engine.
type Snapshot struct {
	Board      [BoardSize]Piece
	Hidden     [ColoredPieces]int
	Mover      Color
	Own        Color
	StaleMoves int
}

// FromSnapshot validates a snapshot and builds the matching State. The
// history starts empty.
func FromSnapshot(snap Snapshot) (*State, error) {
	s := &State{
		board:    snap.Board,
		hidden:   snap.Hidden,
		mover:    snap.Mover,
		own:      snap.Own,
		opponent: snap.Own.Other(),
		winner:   Unknown,
		stale:    snap.StaleMoves,
		last:     NoAction,
	}

	for sq, piece := range snap.Board {
		if piece < 0 || piece >= PieceCount {
			return nil, fmt.Errorf("%w: square %s holds piece %d", ErrMalformedSnapshot, SquareName(sq), piece)
		}
		s.squares[piece]++
	}

	hidden := 0
	for p, n := range snap.Hidden {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative hidden count for %q", ErrMalformedSnapshot, Piece(p))
		}
		if s.squares[p]+n > StandardSet[p] {
			return nil, fmt.Errorf("%w: %d copies of %q, a set has %d",
				ErrMalformedSnapshot, s.squares[p]+n, Piece(p), StandardSet[p])
		}
		hidden += n
	}
	if hidden != s.squares[Unrevealed] {
		return nil, fmt.Errorf("%w: %d hidden pieces for %d face-down squares",
			ErrMalformedSnapshot, hidden, s.squares[Unrevealed])
	}

	if snap.StaleMoves < 0 {
		return nil, fmt.Errorf("%w: negative stale move count", ErrMalformedSnapshot)
	}
	if !validColor(snap.Mover) || !validColor(snap.Own) {
		return nil, fmt.Errorf("%w: bad color", ErrMalformedSnapshot)
	}
	return s, nil
}

func validColor(c Color) bool {
	return c == Red || c == Black || c == Unknown
}
