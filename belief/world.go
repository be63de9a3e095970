package belief

import (
	"uno/game"
	"uno/utils"

	"golang.org/x/exp/rand"
)

// World is a fully determined table: a public state together with one
// particle standing in for everything hidden. It implements game.Hidden.
type World struct {
	State    game.State
	particle Particle
	rng      *rand.Rand
	exact    bool
	ordered  bool
}

type WorldOption func(w *World)

// WithExactDraws deals opponents real cards from the pool. By default their
// draws are game.Unknown placeholders and the pool is only used by the agent.
func WithExactDraws() WorldOption {
	return func(w *World) {
		w.exact = true
	}
}

// WithOrderedPool deals from the end of the pool instead of at random and
// shuffles it after a reshuffle, as a physical draw pile behaves.
func WithOrderedPool() WorldOption {
	return func(w *World) {
		w.ordered = true
	}
}

// NewWorld takes ownership of p; pass a clone to keep the original intact.
func NewWorld(s game.State, p Particle, rng *rand.Rand, options ...WorldOption) *World {
	w := &World{
		State:    s.Clone(),
		particle: p,
		rng:      rng,
	}
	for _, option := range options {
		option(w)
	}
	return w
}

func (w *World) Hand(seat int) []game.Card {
	if seat == game.Agent {
		return w.State.Hand
	}
	if seat-1 >= len(w.particle.Hands) {
		return nil
	}
	return w.particle.Hands[seat-1]
}

func (w *World) Deal(seat int) (game.Card, bool) {
	if seat != game.Agent && !w.exact {
		w.particle.Hands[seat-1] = append(w.particle.Hands[seat-1], game.Unknown)
		return game.Unknown, true
	}

	pool := w.particle.Pool
	if len(pool) == 0 {
		return game.Card{}, false
	}
	var c game.Card
	if w.ordered {
		c = pool[len(pool)-1]
		w.particle.Pool = pool[:len(pool)-1]
	} else {
		i := w.rng.Intn(len(pool))
		c = pool[i]
		w.particle.Pool = utils.SwapRemove(pool, i)
	}

	if seat != game.Agent {
		w.particle.Hands[seat-1] = append(w.particle.Hands[seat-1], c)
	}
	return c, true
}

func (w *World) Take(seat int, c game.Card) {
	w.particle.Hands[seat-1], _ = utils.RemoveFirst(w.particle.Hands[seat-1], c)
}

func (w *World) Reshuffle(cards []game.Card) {
	w.particle.Pool = append(w.particle.Pool, cards...)
	if w.ordered {
		pool := w.particle.Pool
		w.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}
}

// Step plays a for the seat on turn.
func (w *World) Step(a game.Action) (game.Observation, error) {
	next, obs, err := game.Transition(w.State, a, w.State.Turn, w)
	if err != nil {
		return obs, err
	}
	w.State = next
	return obs, nil
}

// Legal lists the actions of the seat on turn given its hand in this world.
func (w *World) Legal() []game.Action {
	return game.LegalActionsFor(w.State, w.State.Turn, w.Hand(w.State.Turn))
}

func (w *World) Terminal() bool {
	return w.State.Terminal()
}

// Particle returns a copy of the hidden side as it stands now.
func (w *World) Particle() Particle {
	return w.particle.Clone()
}
