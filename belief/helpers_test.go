package belief

import (
	"testing"

	"uno/game"
	"uno/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// dealRound shuffles a deck and deals a round whose first move is the agent's,
// returning the public state and the true hidden cards.
func dealRound(t *testing.T, rng *rand.Rand, opponents int) (game.State, Particle) {
	t.Helper()

	top := game.NewCard(game.Red, game.Five)
	deck, _ := utils.RemoveFirst(game.FullDeck(), top)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	hand := deck[:game.HandSize]
	truth := Particle{Hands: make([][]game.Card, opponents)}
	counts := make([]int, opponents)
	offset := game.HandSize
	for i := range truth.Hands {
		truth.Hands[i] = append([]game.Card(nil), deck[offset:offset+game.HandSize]...)
		counts[i] = game.HandSize
		offset += game.HandSize
	}
	truth.Pool = append([]game.Card(nil), deck[offset:]...)

	s, err := game.Opening(top, opponents, hand, counts, len(truth.Pool))
	require.NoError(t, err)
	require.Equal(t, game.Agent, s.Turn)
	return s, truth
}

func requireConsistent(t *testing.T, b *Belief, s game.State) {
	t.Helper()

	unseen, err := Unseen(s)
	require.NoError(t, err)
	want := map[game.Card]int{}
	for _, c := range unseen {
		want[c]++
	}
	for i, p := range b.Particles() {
		require.NoError(t, p.check(s, want), "Particle %d should match the table", i)
	}
}
