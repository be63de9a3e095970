// Package game models a round of UNO from the agent's seat: the deck, the
// public table state, the actions a seat may take and the transition rules.
package game

// Evaluate scores a playout's final state for the agent.
type Evaluate func(State) float64

const HandSize = 7
