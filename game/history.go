package game

// history is an append-only list of played actions. Nodes are never mutated
// after creation, so states share their common prefix.
type history struct {
	action Action
	prev   *history
	length int
}

func (h *history) push(action Action) *history {
	return &history{action: action, prev: h, length: h.len() + 1}
}

func (h *history) len() int {
	if h == nil {
		return 0
	}
	return h.length
}

// recent returns up to n actions, most recent first.
func (h *history) recent(n int) []Action {
	actions := make([]Action, 0, min(n, h.len()))
	for node := h; node != nil && len(actions) < n; node = node.prev {
		actions = append(actions, node.action)
	}
	return actions
}

// slice returns the whole history in chronological order.
func (h *history) slice() []Action {
	actions := make([]Action, h.len())
	i := len(actions) - 1
	for node := h; node != nil; node = node.prev {
		actions[i] = node.action
		i--
	}
	return actions
}
