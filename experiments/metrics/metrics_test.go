package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts a search", func(t *testing.T) {
		c := NewCollector()
		c.Start(3, 20)
		for i := 0; i < 3; i++ {
			c.AddEpisode()
		}
		c.AddFullPlayout()
		c.AddCutoff()
		c.AddCutoff()
		c.SetTreeSize(9)

		m := c.Complete()

		require.Equal(t, 3, m.Simulations)
		require.Equal(t, 20, m.MaxDepth)
		require.Equal(t, 3, m.Episodes)
		require.Equal(t, 1, m.FullPlayouts)
		require.Equal(t, 2, m.Cutoffs)
		require.Equal(t, 9, m.TreeSize)
		require.GreaterOrEqual(t, m.Duration.Nanoseconds(), int64(0))
	})

	t.Run("start clears the previous search", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1)
		c.AddEpisode()
		c.Start(1, 1)

		require.Zero(t, c.Complete().Episodes)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3, 20)
		c.AddEpisode()

		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func TestAgentConfigValidate(t *testing.T) {
	zero, negative, tooLikely := 0.0, -1.0, 1.5

	t.Run("accepts defaults and explicit zeros", func(t *testing.T) {
		require.NoError(t, AgentConfig{}.Validate())
		require.NoError(t, AgentConfig{Exploration: &zero, PlayProbability: &zero, Gamma: 1}.Validate())
	})

	t.Run("rejects out of range settings", func(t *testing.T) {
		for name, config := range map[string]AgentConfig{
			"simulations":      {Simulations: -1},
			"particles":        {Particles: -1},
			"min_particles":    {Particles: 4, MinParticles: 5},
			"max_depth":        {MaxDepth: -1},
			"gamma":            {Gamma: 1.01},
			"exploration":      {Exploration: &negative},
			"play_probability": {PlayProbability: &tooLikely},
			"temperature":      {Temperature: -0.5},
		} {
			require.Error(t, config.Validate(), name)
		}
	})
}

func TestSummarize(t *testing.T) {
	records := []GameRecord{
		{Agent: 1, GameMetric: GameMetric{Winner: 0, Points: 30, TotalMoves: 10}},
		{Agent: 1, GameMetric: GameMetric{Winner: 2, TotalMoves: 20}},
		{Agent: 1, GameMetric: GameMetric{Winner: 0, Points: 50, TotalMoves: 30}},
		{Agent: 1, GameMetric: GameMetric{Winner: -1, TotalMoves: 40}},
		{Agent: 2, GameMetric: GameMetric{Winner: 0, Points: 99, TotalMoves: 1}},
	}

	s := Summarize(1, 0, records)

	require.Equal(t, 1, s.Agent)
	require.Equal(t, 4, s.Games)
	require.Equal(t, 2, s.Wins)
	require.InDelta(t, 0.5, s.WinRate, 1e-9)
	require.InDelta(t, math.Sqrt(1.0/3), s.WinRateStdDev, 1e-9)
	require.InDelta(t, 40, s.MeanPoints, 1e-9)
	require.InDelta(t, 25, s.MeanMoves, 1e-9)

	require.Equal(t, Summary{Agent: 3}, Summarize(3, 0, records))
}
