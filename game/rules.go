package game

// IsLegal checks an action against the current board for the side named in
// the action.
func (s *State) IsLegal(action Action) bool {
	if action.ID < 0 || action.ID >= ActionSize {
		return false
	}
	t := ActionTable[action.ID]
	src, dst := s.board[t.From], s.board[t.To]

	if t.IsReveal() {
		return src == Unrevealed
	}

	// Until the first reveal both colors are unknown and only reveals are allowed
	if action.Player == Unknown {
		return false
	}
	if src == Unrevealed || dst == Unrevealed || src == Empty {
		return false
	}
	if src.Color() != action.Player {
		return false
	}

	if dst == Empty {
		return adjacent(t.From, t.To)
	}

	if dst.Color() != action.Player.Other() {
		return false
	}
	if src.Rank() == RedCannon {
		return s.cannonCanCapture(t.From, t.To)
	}
	return adjacent(t.From, t.To) && canCapture(src, dst)
}

// cannonCanCapture applies the screen rule: exactly one occupied square
// strictly between the cannon and its non-adjacent target on a shared line.
func (s *State) cannonCanCapture(from, to int) bool {
	if s.board[to] == Empty || adjacent(from, to) {
		return false
	}
	if from > to {
		from, to = to, from
	}

	step := 0
	switch {
	case from/RankCount == to/RankCount:
		step = 1
	case from%RankCount == to%RankCount:
		step = RankCount
	default:
		return false
	}

	screens := 0
	for sq := from + step; sq < to; sq += step {
		if s.board[sq] != Empty {
			screens++
		}
	}
	return screens == 1
}

// Actions enumerates the legal actions of the side to move, ordered by id.
func (s *State) Actions() []Action {
	var actions []Action
	for id := 0; id < ActionSize; id++ {
		action := Action{Player: s.mover, ID: id}
		if s.IsLegal(action) {
			actions = append(actions, action)
		}
	}
	return actions
}

// hasActions is Actions without the allocation.
func (s *State) hasActions() bool {
	for id := 0; id < ActionSize; id++ {
		if s.IsLegal(Action{Player: s.mover, ID: id}) {
			return true
		}
	}
	return false
}
