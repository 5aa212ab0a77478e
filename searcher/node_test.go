package searcher

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// mockState is a uniform game tree. The first action from the root decides
// the result every playout below it ends with.
type mockState struct {
	depth    int // moves left before the game ends
	width    int
	outcomes []float64 // result per root action
	result   float64
	last     int
	failAt   int // depth at which Apply fails, 0 never
}

var errMockApply = errors.New("mock apply failure")

func (m mockState) Terminal() bool {
	return m.depth == 0
}

func (m mockState) Result() float64 {
	if !m.Terminal() {
		return 0
	}
	return m.result
}

func (m mockState) Actions() []int {
	if m.Terminal() {
		return nil
	}
	actions := make([]int, m.width)
	for i := range actions {
		actions[i] = i
	}
	return actions
}

func (m mockState) Apply(action int, rng *rand.Rand) (mockState, error) {
	if m.failAt > 0 && m.depth == m.failAt {
		return mockState{}, errMockApply
	}
	next := m
	next.depth--
	next.last = action
	if m.outcomes != nil {
		next.result = m.outcomes[action]
		next.outcomes = nil
	}
	return next, nil
}

func (m mockState) LastAction() int {
	return m.last
}

type mockNode = node[mockState, int]

func TestNodeScore(t *testing.T) {
	t.Run("unvisited node scores infinity", func(t *testing.T) {
		parent := &mockNode{}
		parent.Backup(1)
		child := &mockNode{parent: parent}

		require.Equal(t, math.Inf(1), child.score(Exploration))
	})

	t.Run("root scores its mean", func(t *testing.T) {
		root := &mockNode{}
		root.Backup(1)
		root.Backup(0)
		root.Backup(-1)
		root.Backup(1)

		require.InDelta(t, 0.25, root.score(Exploration), 1e-9)
	})

	t.Run("child adds the exploration term", func(t *testing.T) {
		parent := &mockNode{}
		child := &mockNode{parent: parent}
		for i := 0; i < 10; i++ {
			parent.Backup(0)
		}
		for i := 0; i < 4; i++ {
			child.Backup(0.5)
		}

		expected := 2.0/4 + Exploration*math.Sqrt(math.Log(10)/4)
		require.InDelta(t, expected, child.score(Exploration), 1e-9)
	})
}

func TestNodeSelectChild(t *testing.T) {
	t.Run("unvisited sibling wins over visited ones", func(t *testing.T) {
		parent := &mockNode{}
		strong := &mockNode{parent: parent}
		fresh := &mockNode{parent: parent}
		parent.children = []*mockNode{strong, fresh}
		for i := 0; i < 5; i++ {
			strong.Backup(1)
			parent.Backup(1)
		}

		require.Same(t, fresh, parent.selectChild(Exploration))
	})

	t.Run("highest score among visited children", func(t *testing.T) {
		parent := &mockNode{}
		weak := &mockNode{parent: parent}
		strong := &mockNode{parent: parent}
		parent.children = []*mockNode{weak, strong}
		weak.Backup(-1)
		strong.Backup(1)
		parent.Backup(-1)
		parent.Backup(1)

		require.Same(t, strong, parent.selectChild(Exploration))
	})

	t.Run("node with untried actions is not descended", func(t *testing.T) {
		parent := &mockNode{untried: []int{3}}
		child := &mockNode{parent: parent}
		parent.children = []*mockNode{child}

		require.Nil(t, parent.selectChild(Exploration))
	})

	t.Run("leaf has nothing to select", func(t *testing.T) {
		leaf := &mockNode{}
		require.True(t, leaf.isLeaf())
		require.Nil(t, leaf.selectChild(Exploration))
	})
}

func TestNodeExpand(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("expanding adds one child per untried action", func(t *testing.T) {
		node := newNode[mockState, int](nil, mockState{depth: 2, width: 3})
		require.Len(t, node.untried, 3)

		seen := map[int]bool{}
		for i := 0; i < 3; i++ {
			child, err := node.expand(rng)
			require.NoError(t, err)
			require.NotSame(t, node, child)
			require.Same(t, node, child.parent)
			require.False(t, seen[child.state.LastAction()], "action expanded twice")
			seen[child.state.LastAction()] = true
		}
		require.Len(t, node.children, 3)
		require.Empty(t, node.untried)
		require.False(t, node.isLeaf())

		same, err := node.expand(rng)
		require.NoError(t, err)
		require.Same(t, node, same, "fully expanded node should return itself")
	})

	t.Run("terminal node has nothing to try", func(t *testing.T) {
		node := newNode[mockState, int](nil, mockState{depth: 0, width: 3})
		require.Empty(t, node.untried)

		same, err := node.expand(rng)
		require.NoError(t, err)
		require.Same(t, node, same)
	})

	t.Run("apply failure is returned", func(t *testing.T) {
		node := newNode[mockState, int](nil, mockState{depth: 2, width: 2, failAt: 2})

		_, err := node.expand(rng)
		require.ErrorIs(t, err, errMockApply)
	})
}

func TestBackup(t *testing.T) {
	root := &mockNode{}
	child := &mockNode{parent: root}
	grandChild := &mockNode{parent: child}
	other := &mockNode{parent: root}

	backup(grandChild, -1)
	backup(grandChild, 1)
	backup(grandChild, 1)

	for _, n := range []*mockNode{root, child, grandChild} {
		require.Equal(t, int64(3), n.Visits())
		require.InDelta(t, 1.0, n.Rewards(), 1e-9)
	}
	require.Equal(t, int64(0), other.Visits(), "siblings are not updated")
}

func TestMostVisited(t *testing.T) {
	root := &mockNode{}
	first := &mockNode{parent: root}
	second := &mockNode{parent: root}
	third := &mockNode{parent: root}
	root.children = []*mockNode{first, second, third}

	first.Backup(0)
	second.Backup(1)
	second.Backup(-1)
	third.Backup(1)
	third.Backup(1)

	require.Same(t, third, root.mostVisited(), "equal visits break ties on rewards")

	second.Backup(0)
	require.Same(t, second, root.mostVisited(), "visits decide before rewards")

	tied := &mockNode{}
	a := &mockNode{parent: tied}
	b := &mockNode{parent: tied}
	tied.children = []*mockNode{a, b}
	a.Backup(1)
	b.Backup(1)
	require.Same(t, a, tied.mostVisited(), "full ties go to the earliest child")
}
