package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUCB(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCB(1.4, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCBEvaluate(t *testing.T) {
	t.Run("computing UCB1 value", func(t *testing.T) {
		policy := newUCB(1.4, 100)
		got := policy.evaluate(5.0, 10)

		expected := 5.0/10 + 1.4*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q/n + c*sqrt(ln(N)/n)")
	})

	t.Run("unvisited children come first", func(t *testing.T) {
		policy := newUCB(1.4, 100)

		require.True(t, math.IsInf(policy.evaluate(0, 0), 1), "Should be +Inf when n is 0")
	})

	t.Run("no exploration with c of zero", func(t *testing.T) {
		policy := newUCB(0, 100)

		require.InDelta(t, 0.25, policy.evaluate(2.5, 10), 0.0001, "Should reduce to the mean")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		// More parent visits -> higher exploration
		policy1 := newUCB(1.4, 100)
		policy2 := newUCB(1.4, 1000)

		require.Greater(t, policy2.evaluate(5.0, 10), policy1.evaluate(5.0, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		// More child visits -> lower exploration
		policy := newUCB(1.4, 100)

		require.Greater(t, policy.evaluate(5.0, 10), policy.evaluate(10.0, 20),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newUCB(1.4, 100)

		require.Greater(t, policy.evaluate(10.0, 10), policy.evaluate(5.0, 10),
			"More rewards should increase exploitation term")
	})
}
