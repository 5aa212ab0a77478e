package game

const (
	BoardSize = 32
	RankCount = 8 // squares per file
	FileCount = 4

	ActionSize = 352
)

// Transition is the (source, destination) pair behind an action id. A reveal
// has From == To.
type Transition struct {
	From int
	To   int
}

func (t Transition) IsReveal() bool {
	return t.From == t.To
}

// Action is an action id played by a given side.
type Action struct {
	Player Color
	ID     int
}

// NoAction is the last action of a state nobody has moved into yet.
var NoAction = Action{Player: Unknown, ID: -1}

func (a Action) Transition() Transition {
	return ActionTable[a.ID]
}

// ActionTable lists every reveal, every move along a file and every move
// along a rank. Long moves only matter for cannon captures.
var ActionTable [ActionSize]Transition

var actionIndex [BoardSize][BoardSize]int

func init() {
	id := 0
	for from := 0; from < BoardSize; from++ {
		file, rank := from/RankCount, from%RankCount
		for r := 0; r < RankCount; r++ {
			ActionTable[id] = Transition{From: from, To: file*RankCount + r}
			id++
		}
		for f := 0; f < FileCount; f++ {
			if f == file {
				continue
			}
			ActionTable[id] = Transition{From: from, To: f*RankCount + rank}
			id++
		}
	}

	for from := range actionIndex {
		for to := range actionIndex[from] {
			actionIndex[from][to] = -1
		}
	}
	for id, t := range ActionTable {
		actionIndex[t.From][t.To] = id
	}
}

// LookupAction returns the action id moving from one square to another.
func LookupAction(from, to int) (int, bool) {
	if !onBoard(from) || !onBoard(to) {
		return -1, false
	}
	id := actionIndex[from][to]
	return id, id >= 0
}

func onBoard(sq int) bool {
	return sq >= 0 && sq < BoardSize
}

// adjacent reports whether two squares are one orthogonal step apart.
func adjacent(from, to int) bool {
	fromFile, fromRank := from/RankCount, from%RankCount
	toFile, toRank := to/RankCount, to%RankCount
	if fromFile == toFile {
		return abs(fromRank-toRank) == 1
	}
	if fromRank == toRank {
		return abs(fromFile-toFile) == 1
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
