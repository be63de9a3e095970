package engine

import (
	"uno/experiments/metrics"
	"uno/game"
)

type Engine interface {
	// Run plays the round till a seat goes out or the step limit is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Decider is the seat-0 side of the table: it is asked for a move whenever
// seat 0 is on turn and sees every transition as seat 0 would.
type Decider interface {
	Reset()
	Observe(s game.State, obs game.Observation)
	Act(s game.State) (game.Action, metrics.SearchMetric, error)
}

// Update is one transition of a round as recorded by the engine.
type Update struct {
	Seat   int
	Action game.Action
	Hash   game.StateHash
}
