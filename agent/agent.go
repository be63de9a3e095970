// Package agent is the decision session of the seat the engine plays for. It
// owns the random source, keeps the belief in step with what the seat has
// observed and runs a fresh search for every decision.
package agent

import (
	"fmt"

	"uno/belief"
	"uno/experiments/metrics"
	"uno/game"
	"uno/meta"
	"uno/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Agent struct {
	config metrics.AgentConfig
	rng    *rand.Rand
	mcts   *searcher.MCTS
	belief *belief.Belief
	seats  int // table size the belief was sampled for
}

// New builds an agent whose every random choice is drawn from one generator seeded with seed.
func New(config metrics.AgentConfig, seed uint64) *Agent {
	if config.Particles <= 0 {
		config.Particles = meta.PARTICLES
	}
	return &Agent{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
		mcts:   createMCTS(config),
	}
}

func (a *Agent) Config() metrics.AgentConfig {
	return a.config
}

// Belief is nil until the first decision of a round.
func (a *Agent) Belief() *belief.Belief {
	return a.belief
}

// Reset forgets everything learnt about the current round.
func (a *Agent) Reset() {
	a.belief = nil
}

// Observe folds one masked observation into the belief. s is the table after the
// observed transition. Observations before the first decision are not needed:
// the belief is sampled from the table on demand.
func (a *Agent) Observe(s game.State, obs game.Observation) {
	if a.belief == nil {
		return
	}
	a.belief.Update(s, obs.MaskFor(game.Agent))
}

// Act searches s and returns the chosen action. Found is false only when the
// agent has nothing to do, which the engine never asks for.
func (a *Agent) Act(s game.State) (game.Action, metrics.SearchMetric, error) {
	if err := a.prepare(s); err != nil {
		return game.Action{}, metrics.SearchMetric{}, err
	}

	result, err := a.mcts.Search(s, a.belief, a.rng)
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("agent %d failed to search: %w", a.config.ID, err)
	}
	if !result.Found {
		return game.Action{}, result.Metric, fmt.Errorf("agent %d has no legal action", a.config.ID)
	}

	action := result.Action
	if a.config.Temperature > 0 && len(result.Policy) > 1 {
		action = sample(result.Policy, adjustTemperature(result.Policy, a.config.Temperature), a.rng)
	}
	return action, result.Metric, nil
}

// prepare makes sure the belief exists and still has particles to sample.
func (a *Agent) prepare(s game.State) error {
	if a.belief == nil || a.seats != s.Seats() {
		var options []belief.Option
		if a.config.MinParticles > 0 {
			options = append(options, belief.WithMinParticles(a.config.MinParticles))
		}
		b, err := belief.New(s, a.config.Particles, a.rng, options...)
		if err != nil {
			return fmt.Errorf("agent %d failed to create belief: %w", a.config.ID, err)
		}
		a.belief, a.seats = b, s.Seats()
		return nil
	}
	if a.belief.Len() == 0 {
		log.Warn().Msgf("agent %d lost every particle, sampling afresh", a.config.ID)
		if err := a.belief.Reset(s); err != nil {
			return fmt.Errorf("agent %d failed to reset belief: %w", a.config.ID, err)
		}
	}
	return nil
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	if config.Gamma > 0 {
		options = append(options, searcher.WithGamma(config.Gamma))
	}
	if config.Exploration != nil {
		options = append(options, searcher.WithExploration(*config.Exploration))
	}
	if config.PlayProbability != nil {
		options = append(options, searcher.WithPlayProbability(*config.PlayProbability))
	}
	options = append(options,
		searcher.WithExactDraws(config.ExactDraws),
		searcher.WithRandomExpansion(config.RandomExpansion),
		searcher.WithMetrics(),
	)
	return searcher.NewMCTS(options...)
}
