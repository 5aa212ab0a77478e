package game

// Color identifies a side. Both sides are Unknown until the first reveal.
type Color int

const (
	Red Color = iota
	Black
	Unknown
)

// Other returns the opposing color. Unknown has no opponent.
func (c Color) Other() Color {
	switch c {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return Unknown
	}
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "unknown"
	}
}

// Piece is the content of a single square. Even values are red, odd values
// black, ordered by rank from King down to Pawn.
type Piece int

const (
	RedKing Piece = iota
	BlackKing
	RedGuard
	BlackGuard
	RedMinister
	BlackMinister
	RedRook
	BlackRook
	RedKnight
	BlackKnight
	RedCannon
	BlackCannon
	RedPawn
	BlackPawn
	Unrevealed
	Empty

	PieceCount
)

// ColoredPieces is the number of face-up piece kinds (7 ranks x 2 colors).
const ColoredPieces = int(Unrevealed)

// pieceSymbols follows the Piece order.
const pieceSymbols = "KkGgMmRrNnCcPpX-"

// StandardSet holds how many copies of each colored piece a full set has.
var StandardSet = [ColoredPieces]int{1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 5, 5}

// IsColored reports whether p is a face-up piece.
func (p Piece) IsColored() bool {
	return p >= RedKing && p < Unrevealed
}

// Color returns Unknown for Unrevealed and Empty squares.
func (p Piece) Color() Color {
	if !p.IsColored() {
		return Unknown
	}
	return Color(p % 2)
}

// Rank strips the color, returning the red piece of the same rank.
func (p Piece) Rank() Piece {
	return p &^ 1
}

func (p Piece) String() string {
	if p < 0 || p >= PieceCount {
		return "?"
	}
	return string(pieceSymbols[p])
}

// canCapture is the dominance relation for adjacent captures. Cannons never
// capture through it; their captures go through the screen rule instead.
func canCapture(attacker, victim Piece) bool {
	if !attacker.IsColored() || !victim.IsColored() {
		return false
	}
	if attacker.Color() == victim.Color() {
		return false
	}

	victim = victim.Rank()
	switch attacker.Rank() {
	case RedKing:
		return victim != RedPawn
	case RedGuard:
		return victim != RedKing
	case RedMinister:
		return victim != RedKing && victim != RedGuard
	case RedRook:
		return victim != RedKing && victim != RedGuard && victim != RedMinister
	case RedKnight:
		return victim == RedKnight || victim == RedCannon || victim == RedPawn
	case RedPawn:
		return victim == RedKing || victim == RedPawn
	default:
		return false
	}
}
