package searcher

import (
	"context"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

type Option func(c *config)

type config struct {
	goroutines  int
	simulations int
	exploration float64
	seed        uint64
	seeded      bool
	metrics     bool
}

// MCTS runs a fixed number of select, expand, rollout and backup iterations
// over one shared tree, spread over a fixed pool of goroutines.
type MCTS[S State[S, A], A any] struct {
	config
}

func WithGoroutines(goroutines int) Option {
	return func(c *config) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

func WithSimulations(simulations int) Option {
	return func(c *config) {
		if simulations > 0 {
			c.simulations = simulations
		}
	}
}

func WithExploration(exploration float64) Option {
	return func(c *config) {
		if exploration >= 0 {
			c.exploration = exploration
		}
	}
}

// WithSeed derives every worker's generator from seed instead of the
// system's random source.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

func WithMetrics() Option {
	return func(c *config) {
		c.metrics = true
	}
}

func NewMCTS[S State[S, A], A any](options ...Option) *MCTS[S, A] {
	m := &MCTS[S, A]{config{ // Default values
		goroutines:  DefaultGoroutines,
		simulations: DefaultSimulations,
		exploration: Exploration,
	}}
	for _, option := range options {
		option(&m.config)
	}
	return m
}

// Search builds a tree below state and returns the action leading to the
// most visited child of the root. All workers have finished by the time it
// returns.
func (m *MCTS[S, A]) Search(state S) (A, SearchMetrics, error) {
	var none A
	if state.Terminal() || len(state.Actions()) == 0 {
		return none, SearchMetrics{}, ErrNoLegalActions
	}

	collector := NewNoMetricsCollector()
	if m.metrics {
		collector = NewMetricsCollector()
	}
	collector.Start(m.goroutines, m.simulations)

	root := newNode[S, A](nil, state)
	if err := m.iterate(root, collector); err != nil {
		return none, collector.Complete(), err
	}

	best := root.mostVisited()
	if best == nil {
		return none, collector.Complete(), ErrNoLegalActions
	}

	metric := collector.Complete()
	// The budget is reported even when no collector runs
	metric.Goroutines = m.goroutines
	metric.Simulations = m.simulations
	metric.BestVisits = best.Visits()
	metric.BestRewards = best.Rewards()
	log.Debug().
		Int("goroutines", m.goroutines).
		Int("simulations", m.simulations).
		Int64("visits", metric.BestVisits).
		Float64("rewards", metric.BestRewards).
		Dur("duration", metric.Duration).
		Msg("search complete")

	return best.state.LastAction(), metric, nil
}

func (m *MCTS[S, A]) iterate(root *node[S, A], collector MetricsCollector) error {
	tasks := make(chan struct{}, m.simulations)
	for i := 0; i < m.simulations; i++ {
		tasks <- struct{}{}
	}
	close(tasks)

	seeds := m.seedSource()
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < m.goroutines; i++ {
		rng := rand.New(rand.NewSource(seeds()))
		g.Go(func() error {
			for range tasks {
				if ctx.Err() != nil {
					return nil
				}
				if err := m.simulate(root, rng, collector); err != nil {
					return err
				}
				collector.AddEpisode()
			}
			return nil
		})
	}
	return g.Wait()
}

// seedSource hands out one seed per worker. It is only called before the
// workers start.
func (m *MCTS[S, A]) seedSource() func() uint64 {
	if m.seeded {
		return rand.New(rand.NewSource(m.seed)).Uint64
	}
	return func() uint64 {
		return frand.Uint64n(math.MaxUint64)
	}
}

func (m *MCTS[S, A]) simulate(root *node[S, A], rng *rand.Rand, collector MetricsCollector) error {
	leaf := selects(root, m.exploration)
	newNode, err := leaf.expand(rng)
	if err != nil {
		return err
	}
	if newNode != leaf {
		collector.AddExpansion()
	}

	result, err := rollout(newNode.state, rng)
	if err != nil {
		return err
	}
	backup(newNode, result)
	return nil
}

func selects[S State[S, A], A any](root *node[S, A], c float64) *node[S, A] {
	node := root
	for {
		child := node.selectChild(c)
		if child == nil {
			return node
		}
		node = child
	}
}

// rollout plays uniformly random actions until the game ends. It never
// touches the tree.
func rollout[S State[S, A], A any](state S, rng *rand.Rand) (float64, error) {
	for !state.Terminal() {
		actions := state.Actions()
		if len(actions) == 0 {
			break
		}
		next, err := state.Apply(actions[rng.Intn(len(actions))], rng)
		if err != nil {
			return 0, err
		}
		state = next
	}
	return state.Result(), nil
}

func backup[S State[S, A], A any](newNode *node[S, A], result float64) {
	node := newNode
	for node != nil {
		node = node.Backup(result)
	}
}
