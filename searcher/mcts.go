package searcher

import (
	"fmt"

	"uno/belief"
	"uno/experiments/metrics"
	"uno/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// Stat summarises one root action after a search.
type Stat struct {
	Action game.Action
	Visits int
	Mean   float64
}

type Result struct {
	Action game.Action
	Found  bool // false when the agent has no action to take
	Policy []Stat
	Metric metrics.SearchMetric
}

type MCTS struct {
	simulations     int
	maxDepth        int
	gamma           float64
	exploration     float64
	playProbability float64
	exactDraws      bool
	randomExpansion bool
	evaluate        game.Evaluate
	metrics         metrics.Collector
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

func WithGamma(gamma float64) Option {
	return func(m *MCTS) {
		if gamma > 0 && gamma <= 1 {
			m.gamma = gamma
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

// WithPlayProbability sets how often a rollout opponent plays a card when it can.
func WithPlayProbability(p float64) Option {
	return func(m *MCTS) {
		if p >= 0 && p <= 1 {
			m.playProbability = p
		}
	}
}

// WithExactDraws makes simulated opponents draw real cards from the sampled pool instead of placeholders.
func WithExactDraws(exact bool) Option {
	return func(m *MCTS) {
		m.exactDraws = exact
	}
}

// WithRandomExpansion expands a uniformly chosen untried action instead of the first one.
func WithRandomExpansion(random bool) Option {
	return func(m *MCTS) {
		m.randomExpansion = random
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		simulations:     DefaultSimulations,
		maxDepth:        DefaultMaxDepth,
		gamma:           DefaultGamma,
		exploration:     DefaultExploration,
		playProbability: DefaultPlayProbability,
		evaluate:        game.Reward,
		metrics:         metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) Exploration() float64 {
	return m.exploration
}

func (m *MCTS) PlayProbability() float64 {
	return m.playProbability
}

// Search picks the agent's action in root. Each simulation plays on its own
// copy of root completed by a particle sampled from b; b itself is not changed.
// All randomness comes from rng, so equal inputs and seeds give equal results.
func (m *MCTS) Search(root game.State, b *belief.Belief, rng *rand.Rand) (Result, error) {
	legal := game.LegalActions(root, game.Agent)
	switch len(legal) {
	case 0:
		return Result{}, nil
	case 1:
		return Result{Action: legal[0], Found: true, Policy: []Stat{{Action: legal[0]}}}, nil
	}

	t := newTree()
	m.metrics.Start(m.simulations, m.maxDepth)
	for i := 0; i < m.simulations; i++ {
		p, err := b.Sample()
		if err != nil {
			return Result{}, fmt.Errorf("failed to sample hidden cards: %w", err)
		}
		if err := m.simulate(t, root, p, rng); err != nil {
			return Result{}, err
		}
		m.metrics.AddEpisode()
	}
	m.metrics.SetTreeSize(len(t.nodes))

	best, _ := t.best(0)
	result := Result{
		Action: t.nodes[best].action,
		Found:  true,
		Policy: t.policy(0),
		Metric: m.metrics.Complete(),
	}
	log.Debug().Msgf("chose %s after %d simulations (%d visits, mean %.3f, %d nodes)",
		result.Action, m.simulations, t.nodes[best].visits, t.mean(best), len(t.nodes))
	return result, nil
}

func (m *MCTS) simulate(t *tree, root game.State, p belief.Particle, rng *rand.Rand) error {
	w := belief.NewWorld(root, p, rng, m.worldOptions()...)
	path := []visit{{node: 0, step: 0}}
	id, steps := 0, 0

	// Descend through the agent's decisions, letting opponents move in between
	for !w.Terminal() && steps < m.maxDepth {
		child, expanded := t.selectOrExpand(id, w.Legal(), m.exploration, m.expansion(rng))
		path = append(path, visit{node: child, step: steps})

		action := t.nodes[child].action
		if _, err := w.Step(action); err != nil {
			return fmt.Errorf("failed to apply %s in search: %w", action, err)
		}
		steps++

		var err error
		if steps, err = m.playOpponents(w, steps, rng); err != nil {
			return err
		}
		id = child
		if expanded {
			break
		}
	}

	steps, err := m.rollout(w, steps, rng)
	if err != nil {
		return err
	}
	t.backup(path, steps, m.evaluate(w.State), m.gamma)
	return nil
}

func (m *MCTS) expansion(rng *rand.Rand) func(n int) int {
	if m.randomExpansion {
		return rng.Intn
	}
	return func(int) int { return 0 }
}

func (m *MCTS) worldOptions() []belief.WorldOption {
	if m.exactDraws {
		return []belief.WorldOption{belief.WithExactDraws()}
	}
	return nil
}
