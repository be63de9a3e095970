package searcher

import (
	"math"
	"testing"

	"uno/game"

	"github.com/stretchr/testify/require"
)

var (
	playRed  = game.PlayCard(game.NewCard(game.Red, game.One))
	playBlue = game.PlayCard(game.NewCard(game.Blue, game.Nine))
	draw     = game.DrawCard()
)

func first(int) int { return 0 }

func TestTreeExpansion(t *testing.T) {
	t.Run("expands the first untried action", func(t *testing.T) {
		tr := newTree()

		child, expanded := tr.selectOrExpand(0, []game.Action{playRed, playBlue}, 1.4, first)

		require.True(t, expanded)
		require.Equal(t, playRed, tr.nodes[child].action)
		require.Equal(t, 0, tr.nodes[child].parent)
		require.Equal(t, []int{child}, tr.nodes[0].children)
	})

	t.Run("expands before selecting", func(t *testing.T) {
		tr := newTree()
		red := tr.add(0, playRed)
		tr.backup([]visit{{0, 0}, {red, 0}}, 0, 1, 1)

		child, expanded := tr.selectOrExpand(0, []game.Action{playRed, playBlue}, 1.4, first)

		require.True(t, expanded)
		require.Equal(t, playBlue, tr.nodes[child].action, "Untried action should be expanded")
	})

	t.Run("selects by UCB1 once fully expanded", func(t *testing.T) {
		tr := newTree()
		red := tr.add(0, playRed)
		blue := tr.add(0, playBlue)
		tr.backup([]visit{{0, 0}, {red, 0}}, 0, 0, 1)
		tr.backup([]visit{{0, 0}, {blue, 0}}, 0, 1, 1)

		child, expanded := tr.selectOrExpand(0, []game.Action{playRed, playBlue}, 1.4, first)

		require.False(t, expanded)
		require.Equal(t, blue, child, "Equal visits should favour the better mean")
	})

	t.Run("ignores children illegal in this determinization", func(t *testing.T) {
		tr := newTree()
		red := tr.add(0, playRed)
		blue := tr.add(0, playBlue)
		tr.backup([]visit{{0, 0}, {red, 0}}, 0, 1, 1)
		tr.backup([]visit{{0, 0}, {blue, 0}}, 0, 0, 1)

		child, expanded := tr.selectOrExpand(0, []game.Action{playBlue}, 1.4, first)

		require.False(t, expanded)
		require.Equal(t, blue, child)
	})

	t.Run("random expansion uses the picker", func(t *testing.T) {
		tr := newTree()

		child, _ := tr.selectOrExpand(0, []game.Action{playRed, playBlue, draw}, 1.4, func(n int) int { return n - 1 })

		require.Equal(t, draw, tr.nodes[child].action)
	})
}

func TestTreeBackup(t *testing.T) {
	tr := newTree()
	a := tr.add(0, playRed)
	b := tr.add(a, draw)

	tr.backup([]visit{{0, 0}, {a, 0}, {b, 3}}, 5, 1.0, 0.9)

	require.Equal(t, 1, tr.nodes[0].visits)
	require.Equal(t, 1, tr.nodes[b].visits)
	require.InDelta(t, math.Pow(0.9, 5), tr.nodes[a].rewards, 1e-9, "Discount by steps after the action")
	require.InDelta(t, math.Pow(0.9, 2), tr.nodes[b].rewards, 1e-9, "Deeper nodes are discounted less")

	tr.backup([]visit{{0, 0}, {a, 0}}, 5, 0.0, 0.9)
	require.Equal(t, 2, tr.nodes[a].visits)
	require.InDelta(t, math.Pow(0.9, 5)/2, tr.mean(a), 1e-9)
}

func TestTreeBest(t *testing.T) {
	t.Run("most visits wins", func(t *testing.T) {
		tr := newTree()
		red := tr.add(0, playRed)
		blue := tr.add(0, playBlue)
		tr.nodes[red].visits, tr.nodes[red].rewards = 10, 9
		tr.nodes[blue].visits, tr.nodes[blue].rewards = 12, 1

		best, ok := tr.best(0)

		require.True(t, ok)
		require.Equal(t, blue, best)
	})

	t.Run("ties go to the higher mean", func(t *testing.T) {
		tr := newTree()
		red := tr.add(0, playRed)
		blue := tr.add(0, playBlue)
		tr.nodes[red].visits, tr.nodes[red].rewards = 10, 2
		tr.nodes[blue].visits, tr.nodes[blue].rewards = 10, 3

		best, _ := tr.best(0)

		require.Equal(t, blue, best)
	})

	t.Run("full ties go to the earlier action", func(t *testing.T) {
		tr := newTree()
		red := tr.add(0, playRed)
		blue := tr.add(0, playBlue)
		tr.nodes[red].visits, tr.nodes[red].rewards = 10, 3
		tr.nodes[blue].visits, tr.nodes[blue].rewards = 10, 3

		best, _ := tr.best(0)

		require.Equal(t, red, best)
	})

	t.Run("no children", func(t *testing.T) {
		_, ok := newTree().best(0)

		require.False(t, ok)
	})
}

func TestTreePolicy(t *testing.T) {
	tr := newTree()
	red := tr.add(0, playRed)
	tr.add(0, playBlue)
	tr.nodes[red].visits, tr.nodes[red].rewards = 4, 1

	stats := tr.policy(0)

	require.Equal(t, []Stat{{Action: playRed, Visits: 4, Mean: 0.25}, {Action: playBlue}}, stats)
}
