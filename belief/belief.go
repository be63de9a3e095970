// Package belief tracks what the agent cannot see. A Belief is a particle
// filter over the opponents' hands and the draw pile; a World plays a round
// forward on one particle.
package belief

import (
	"errors"
	"fmt"

	"uno/game"
	"uno/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var ErrNoParticles = errors.New("belief holds no particles")

// InconsistencyError marks a particle that cannot explain an observation.
// It is recovered from by dropping the particle, never surfaced to callers of Update.
type InconsistencyError struct {
	Particle int
	Err      error
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("particle %d is inconsistent: %v", e.Particle, e.Err)
}

func (e *InconsistencyError) Unwrap() error {
	return e.Err
}

type Stats struct {
	Repaired  int // particles adjusted to fit an observation
	Discarded int // particles dropped as inconsistent
	Refilled  int // fresh particles drawn to replace them
}

type Belief struct {
	particles []Particle
	size      int
	min       int
	rng       *rand.Rand
	stats     Stats
}

type Option func(b *Belief)

// WithMinParticles sets the population below which fresh particles are drawn.
func WithMinParticles(min int) Option {
	return func(b *Belief) {
		if min > 0 {
			b.min = min
		}
	}
}

// New samples size independent partitions of the unseen cards consistent with s.
func New(s game.State, size int, rng *rand.Rand, options ...Option) (*Belief, error) {
	if size <= 0 {
		return nil, fmt.Errorf("belief needs a positive number of particles, got %d", size)
	}
	b := &Belief{
		size: size,
		min:  max(1, size/2),
		rng:  rng,
	}
	for _, option := range options {
		option(b)
	}
	b.min = min(b.min, b.size)

	if err := b.Reset(s); err != nil {
		return nil, err
	}
	return b, nil
}

// Reset discards every particle and samples a fresh population from s.
func (b *Belief) Reset(s game.State) error {
	unseen, err := Unseen(s)
	if err != nil {
		return fmt.Errorf("failed to sample belief: %w", err)
	}
	b.particles = make([]Particle, 0, b.size)
	for len(b.particles) < b.size {
		b.particles = append(b.particles, samplePartition(unseen, s.OpponentCounts, b.rng))
	}
	return nil
}

func (b *Belief) Len() int {
	return len(b.particles)
}

func (b *Belief) Stats() Stats {
	return b.stats
}

// Particles returns copies of the current population.
func (b *Belief) Particles() []Particle {
	particles := make([]Particle, len(b.particles))
	for i, p := range b.particles {
		particles[i] = p.Clone()
	}
	return particles
}

// Sample returns a copy of a uniformly chosen particle.
func (b *Belief) Sample() (Particle, error) {
	if len(b.particles) == 0 {
		return Particle{}, ErrNoParticles
	}
	return b.particles[b.rng.Intn(len(b.particles))].Clone(), nil
}

// Update conditions every particle on obs, as seen by the agent, and checks
// the result against s, the public state after the observed transition.
func (b *Belief) Update(s game.State, obs game.Observation) {
	kept := b.particles[:0]
	for i := range b.particles {
		p := b.particles[i]
		repaired, err := b.condition(&p, obs)
		if err != nil {
			b.discard(&InconsistencyError{Particle: i, Err: err})
			continue
		}
		if repaired {
			b.stats.Repaired++
		}
		kept = append(kept, p)
	}
	b.particles = kept
	b.resample(s)
}

func (b *Belief) discard(err error) {
	b.stats.Discarded++
	log.Debug().Err(err).Msg("dropping particle")
}

// condition applies one observation to p. It reports whether p had to be adjusted.
func (b *Belief) condition(p *Particle, obs game.Observation) (bool, error) {
	repaired := false
	fix := func(err error) error {
		if err == nil {
			repaired = true
		}
		return err
	}

	if len(obs.Reshuffled) > 0 {
		p.Pool = append(p.Pool, obs.Reshuffled...)
	}

	seat := obs.Seat
	if obs.Action.Type == game.PlayCardAction && seat != game.Agent {
		c := obs.Action.Card
		if utils.FindIndex(p.Hands[seat-1], c) < 0 {
			if err := fix(p.ensure(seat, c, b.rng)); err != nil {
				return false, err
			}
		}
		p.Hands[seat-1], _ = utils.RemoveFirst(p.Hands[seat-1], c)
		if c.Rank == game.WildDrawFour {
			// A legal draw four means the seat held nothing of the color it replaced
			bad := func(x game.Card) bool { return x.Color == obs.ActiveColor }
			if utils.Count(p.Hands[seat-1], bad) > 0 {
				if err := fix(p.exclude(seat, bad, b.rng)); err != nil {
					return false, err
				}
			}
		}
	}

	if obs.RevealSeat > game.Agent && obs.Revealed != nil {
		if err := fix(p.reveal(obs.RevealSeat, obs.Revealed)); err != nil {
			return false, err
		}
	}

	if obs.DrawCount > 0 {
		if obs.DrawSeat == game.Agent {
			for _, c := range obs.Drawn {
				if err := p.extract(c, b.rng); err != nil {
					return false, err
				}
			}
			return repaired, nil
		}

		if obs.NoPlayable && obs.Action.Type == game.DrawCardAction {
			bad := func(x game.Card) bool { return x.Matches(obs.Top, obs.ActiveColor) }
			if utils.Count(p.Hands[obs.DrawSeat-1], bad) > 0 {
				if err := fix(p.exclude(obs.DrawSeat, bad, b.rng)); err != nil {
					return false, err
				}
			}
		}
		if obs.Drawn != nil {
			for _, c := range obs.Drawn {
				if err := p.extract(c, b.rng); err != nil {
					return false, err
				}
				p.Hands[obs.DrawSeat-1] = append(p.Hands[obs.DrawSeat-1], c)
			}
		} else if err := p.draw(obs.DrawSeat, obs.DrawCount, b.rng); err != nil {
			return false, err
		}
	}
	return repaired, nil
}

// resample drops particles that disagree with s and refills the population when it runs low.
// Fresh particles only match the public counts of s; constraints learnt from earlier
// observations, such as colors ruled out by a draw four, are not replayed into them.
func (b *Belief) resample(s game.State) {
	unseen, err := Unseen(s)
	if err != nil {
		log.Warn().Err(err).Msg("state cannot be explained, clearing belief")
		b.stats.Discarded += len(b.particles)
		b.particles = nil
		return
	}
	want := make(map[game.Card]int, len(unseen))
	for _, c := range unseen {
		want[c]++
	}

	kept := b.particles[:0]
	for i, p := range b.particles {
		if err := p.check(s, want); err != nil {
			b.discard(&InconsistencyError{Particle: i, Err: err})
			continue
		}
		kept = append(kept, p)
	}
	b.particles = kept

	if len(b.particles) >= b.min {
		return
	}
	log.Warn().Msgf("belief fell to %d of %d particles, refilling", len(b.particles), b.size)
	for len(b.particles) < b.size {
		b.particles = append(b.particles, samplePartition(unseen, s.OpponentCounts, b.rng))
		b.stats.Refilled++
	}
}
