package searcher

import (
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"
)

// node owns its children. The parent pointer is only followed upwards during
// backup and to read the parent's visit count.
type node[S State[S, A], A any] struct {
	sync.Mutex // guards untried and children
	parent     *node[S, A]
	state      S
	untried    []A
	children   []*node[S, A]

	visits  atomic.Int64
	rewards atomic.Uint64 // float64 bits
}

func newNode[S State[S, A], A any](parent *node[S, A], state S) *node[S, A] {
	n := &node[S, A]{parent: parent, state: state}
	if !state.Terminal() {
		n.untried = state.Actions()
	}
	return n
}

func (n *node[S, A]) isLeaf() bool {
	n.Lock()
	defer n.Unlock()

	return len(n.children) == 0
}

// selectChild returns the child with the highest score, or nil while the
// node still has untried actions or no children at all. Ties go to the
// earliest child.
func (n *node[S, A]) selectChild(c float64) *node[S, A] {
	n.Lock()
	defer n.Unlock()

	if len(n.untried) > 0 || len(n.children) == 0 {
		return nil
	}

	var best *node[S, A]
	maxScore := math.Inf(-1)
	for _, child := range n.children {
		score := child.score(c)
		if score == math.Inf(1) {
			return child
		}
		if best == nil || score > maxScore {
			maxScore = score
			best = child
		}
	}
	return best
}

// score is the UCT value seen from the parent. The root scores its mean.
func (n *node[S, A]) score(c float64) float64 {
	visits := n.visits.Load()
	if visits == 0 {
		return math.Inf(1)
	}
	if n.parent == nil {
		return n.Rewards() / float64(visits)
	}
	return newUCT(c, n.parent.visits.Load()).evaluate(n.Rewards(), visits)
}

// expand plays one untried action picked at random and attaches the result
// as a new child. A node with nothing left to try returns itself.
func (n *node[S, A]) expand(rng *rand.Rand) (*node[S, A], error) {
	n.Lock()
	if len(n.untried) == 0 {
		n.Unlock()
		return n, nil
	}
	i := rng.Intn(len(n.untried))
	last := len(n.untried) - 1
	action := n.untried[i]
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]
	n.Unlock()

	state, err := n.state.Apply(action, rng)
	if err != nil {
		return nil, err
	}
	child := newNode(n, state)

	n.Lock()
	n.children = append(n.children, child)
	n.Unlock()
	return child, nil
}

// Backup records one playout result and returns the parent.
func (n *node[S, A]) Backup(result float64) *node[S, A] {
	n.visits.Add(1)
	for {
		old := n.rewards.Load()
		sum := math.Float64frombits(old) + result
		if n.rewards.CompareAndSwap(old, math.Float64bits(sum)) {
			break
		}
	}
	return n.parent
}

func (n *node[S, A]) Visits() int64 {
	return n.visits.Load()
}

func (n *node[S, A]) Rewards() float64 {
	return math.Float64frombits(n.rewards.Load())
}

// mostVisited picks the robust child: most visits, then most rewards, then
// the earliest created.
func (n *node[S, A]) mostVisited() *node[S, A] {
	n.Lock()
	defer n.Unlock()

	var best *node[S, A]
	for _, child := range n.children {
		if best == nil {
			best = child
			continue
		}
		v, bv := child.Visits(), best.Visits()
		if v > bv || (v == bv && child.Rewards() > best.Rewards()) {
			best = child
		}
	}
	return best
}

// size counts the nodes of the subtree.
func (n *node[S, A]) size() int {
	n.Lock()
	children := n.children
	n.Unlock()

	count := 1
	for _, child := range children {
		count += child.size()
	}
	return count
}
