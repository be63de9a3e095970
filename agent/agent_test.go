package agent

import (
	"testing"

	"uno/experiments/metrics"
	"uno/game"
	"uno/meta"
	"uno/searcher"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// agentTurn is a three seat table with the agent on turn.
func agentTurn(t *testing.T, hand ...game.Card) game.State {
	t.Helper()

	counts := []int{game.HandSize, game.HandSize}
	s, err := game.Opening(game.NewCard(game.Green, game.Six), 2, hand, counts, game.DeckSize-len(hand)-2*game.HandSize-1)
	require.NoError(t, err)
	require.Equal(t, game.Agent, s.Turn)
	return s
}

var hand = []game.Card{
	game.NewCard(game.Green, game.One),
	game.NewCard(game.Red, game.Six),
	game.NewCard(game.Blue, game.Skip),
	game.NewCard(game.Wild, game.WildCard),
}

func TestNew(t *testing.T) {
	a := New(metrics.AgentConfig{ID: 4}, 1)

	require.Equal(t, meta.PARTICLES, a.Config().Particles)
	require.Nil(t, a.Belief())
}

func TestCreateMCTS(t *testing.T) {
	t.Run("unset settings keep the searcher defaults", func(t *testing.T) {
		m := createMCTS(metrics.AgentConfig{})

		require.Equal(t, searcher.DefaultExploration, m.Exploration())
		require.Equal(t, searcher.DefaultPlayProbability, m.PlayProbability())
	})

	t.Run("zero is passed through", func(t *testing.T) {
		zero := 0.0
		m := createMCTS(metrics.AgentConfig{Exploration: &zero, PlayProbability: &zero})

		require.Zero(t, m.Exploration())
		require.Zero(t, m.PlayProbability())
	})
}

func TestAct(t *testing.T) {
	t.Run("returns a legal action", func(t *testing.T) {
		a := New(metrics.AgentConfig{ID: 1, Simulations: 50, Particles: 10}, 1)
		s := agentTurn(t, hand...)

		action, searchMetric, err := a.Act(s)

		require.NoError(t, err)
		require.Contains(t, game.LegalActions(s, game.Agent), action)
		require.Equal(t, 50, searchMetric.Episodes)
		require.Equal(t, 10, a.Belief().Len())
	})

	t.Run("same seed same choices", func(t *testing.T) {
		s := agentTurn(t, hand...)
		play := func() game.Action {
			a := New(metrics.AgentConfig{Simulations: 40, Particles: 8, Temperature: 1}, 11)
			action, _, err := a.Act(s)
			require.NoError(t, err)
			return action
		}

		require.Equal(t, play(), play())
	})

	t.Run("nothing to do", func(t *testing.T) {
		a := New(metrics.AgentConfig{Particles: 4}, 1)
		s := agentTurn(t, hand...)
		s.Turn = 1

		_, _, err := a.Act(s)

		require.Error(t, err)
	})
}

func TestObserve(t *testing.T) {
	a := New(metrics.AgentConfig{Simulations: 20, Particles: 6}, 2)
	s := agentTurn(t, hand...)

	// Ignored until the first decision
	a.Observe(s, game.Observation{})
	require.Nil(t, a.Belief())

	action, _, err := a.Act(s)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(2))
	truth := a.Belief().Particles()[0]
	next, obs, err := game.Transition(s, action, game.Agent, &fixedHidden{pool: truth.Pool, rng: rng})
	require.NoError(t, err)

	a.Observe(next, obs)
	require.Positive(t, a.Belief().Len())

	a.Reset()
	require.Nil(t, a.Belief())
}

// fixedHidden deals the agent cards from pool and keeps no opponent hands.
type fixedHidden struct {
	pool []game.Card
	rng  *rand.Rand
}

func (h *fixedHidden) Hand(int) []game.Card { return nil }

func (h *fixedHidden) Deal(int) (game.Card, bool) {
	if len(h.pool) == 0 {
		return game.Card{}, false
	}
	c := h.pool[len(h.pool)-1]
	h.pool = h.pool[:len(h.pool)-1]
	return c, true
}

func (h *fixedHidden) Take(int, game.Card) {}

func (h *fixedHidden) Reshuffle(cards []game.Card) {
	h.pool = append(h.pool, cards...)
}

func TestTemperature(t *testing.T) {
	policy := []searcher.Stat{
		{Action: game.DrawCard(), Visits: 1},
		{Action: game.DeclareUno(), Visits: 3},
	}

	t.Run("proportional at temperature one", func(t *testing.T) {
		require.InDeltaSlice(t, []float64{0.25, 0.75}, adjustTemperature(policy, 1), 1e-9)
	})

	t.Run("sharper at low temperature", func(t *testing.T) {
		probs := adjustTemperature(policy, 0.5)
		require.InDeltaSlice(t, []float64{0.1, 0.9}, probs, 1e-9)
	})

	t.Run("uniform without visits", func(t *testing.T) {
		unvisited := []searcher.Stat{{Action: game.DrawCard()}, {Action: game.DeclareUno()}}
		require.Equal(t, []float64{0.5, 0.5}, adjustTemperature(unvisited, 1))
	})

	t.Run("sampling follows the probabilities", func(t *testing.T) {
		rng := rand.New(rand.NewSource(5))
		probs := adjustTemperature(policy, 1)
		uno := 0
		for i := 0; i < 2000; i++ {
			if sample(policy, probs, rng) == game.DeclareUno() {
				uno++
			}
		}
		require.InDelta(t, 1500, uno, 100)
	})
}
