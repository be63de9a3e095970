package metrics

import "fmt"

// AgentConfig describes one searching agent taking part in an experiment.
// Zero values fall back to the searcher defaults. Exploration and
// PlayProbability are pointers because zero is a meaningful setting for both.
type AgentConfig struct {
	ID              int      `yaml:"id"`
	Simulations     int      `yaml:"simulations"`
	Particles       int      `yaml:"particles"`
	MinParticles    int      `yaml:"min_particles"`
	MaxDepth        int      `yaml:"max_depth"`
	Gamma           float64  `yaml:"gamma"`
	Exploration     *float64 `yaml:"exploration"`
	PlayProbability *float64 `yaml:"play_probability"`
	ExactDraws      bool     `yaml:"exact_draws"`
	RandomExpansion bool     `yaml:"random_expansion"`
	// Above zero the agent samples its move from the root visit counts
	// instead of taking the most visited one
	Temperature float64 `yaml:"temperature"`
}

// Validate rejects settings the searcher would otherwise ignore.
func (c AgentConfig) Validate() error {
	switch {
	case c.Simulations < 0:
		return fmt.Errorf("agent %d: simulations must not be negative, got %d", c.ID, c.Simulations)
	case c.Particles < 0:
		return fmt.Errorf("agent %d: particles must not be negative, got %d", c.ID, c.Particles)
	case c.MinParticles < 0 || c.Particles > 0 && c.MinParticles > c.Particles:
		return fmt.Errorf("agent %d: min_particles %d out of range", c.ID, c.MinParticles)
	case c.MaxDepth < 0:
		return fmt.Errorf("agent %d: max_depth must not be negative, got %d", c.ID, c.MaxDepth)
	case c.Gamma < 0 || c.Gamma > 1:
		return fmt.Errorf("agent %d: gamma must be in (0, 1], got %g", c.ID, c.Gamma)
	case c.Exploration != nil && *c.Exploration < 0:
		return fmt.Errorf("agent %d: exploration must not be negative, got %g", c.ID, *c.Exploration)
	case c.PlayProbability != nil && (*c.PlayProbability < 0 || *c.PlayProbability > 1):
		return fmt.Errorf("agent %d: play_probability must be in [0, 1], got %g", c.ID, *c.PlayProbability)
	case c.Temperature < 0:
		return fmt.Errorf("agent %d: temperature must not be negative, got %g", c.ID, c.Temperature)
	}
	return nil
}
