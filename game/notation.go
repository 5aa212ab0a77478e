package game

import (
	"fmt"
	"strings"
)

// Move packs a source square in bits 10..6 and a destination in bits 5..1.
type Move int

// MoveNull is the resign move.
const MoveNull Move = 1024

func MakeMove(from, to int) Move {
	return Move(from<<5 | to)
}

func (m Move) From() int { return int(m) >> 5 }
func (m Move) To() int   { return int(m) & 0x1F }

func (m Move) String() string {
	if m == MoveNull {
		return "a0 a0"
	}
	return SquareName(m.From()) + " " + SquareName(m.To())
}

// SquareName renders a square as file letter plus rank digit, e.g. "b3".
func SquareName(sq int) string {
	if !onBoard(sq) {
		return "??"
	}
	return string([]byte{byte('a' + sq/RankCount), byte('1' + sq%RankCount)})
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(name string) (int, error) {
	if len(name) != 2 {
		return -1, fmt.Errorf("bad square %q", name)
	}
	file, rank := int(name[0]-'a'), int(name[1]-'1')
	if file < 0 || file >= FileCount || rank < 0 || rank >= RankCount {
		return -1, fmt.Errorf("bad square %q", name)
	}
	return file*RankCount + rank, nil
}

// ParseMove reads "b3 b4" style moves. The resign move parses to MoveNull.
func ParseMove(text string) (Move, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return MoveNull, fmt.Errorf("bad move %q", text)
	}
	if fields[0] == "a0" && fields[1] == "a0" {
		return MoveNull, nil
	}
	from, err := ParseSquare(fields[0])
	if err != nil {
		return MoveNull, err
	}
	to, err := ParseSquare(fields[1])
	if err != nil {
		return MoveNull, err
	}
	return MakeMove(from, to), nil
}

// ParsePiece reads one symbol of "KkGgMmRrNnCcPpX-".
func ParsePiece(symbol byte) (Piece, error) {
	i := strings.IndexByte(pieceSymbols, symbol)
	if i < 0 {
		return PieceCount, fmt.Errorf("%w: unknown piece symbol %q", ErrMalformedSnapshot, symbol)
	}
	return Piece(i), nil
}

// ParseBoard reads an arbiter board listing: 32 piece symbols from rank 8
// down to rank 1, files a to d within a rank, then 14 hidden counts in
// "KkGgMmRrNnCcPp" order.
func ParseBoard(fields []string) (Snapshot, error) {
	var snap Snapshot
	if len(fields) < BoardSize+ColoredPieces {
		return snap, fmt.Errorf("%w: want %d fields, got %d",
			ErrMalformedSnapshot, BoardSize+ColoredPieces, len(fields))
	}

	i := 0
	for rank := RankCount - 1; rank >= 0; rank-- {
		for file := 0; file < FileCount; file++ {
			if fields[i] == "" {
				return snap, fmt.Errorf("%w: empty board field %d", ErrMalformedSnapshot, i)
			}
			piece, err := ParsePiece(fields[i][0])
			if err != nil {
				return snap, err
			}
			snap.Board[file*RankCount+rank] = piece
			i++
		}
	}

	for p := 0; p < ColoredPieces; p++ {
		var n int
		if _, err := fmt.Sscanf(fields[i], "%d", &n); err != nil {
			return snap, fmt.Errorf("%w: hidden count %q: %v", ErrMalformedSnapshot, fields[i], err)
		}
		snap.Hidden[p] = n
		i++
	}

	snap.Mover = Unknown
	snap.Own = Unknown
	return snap, nil
}
