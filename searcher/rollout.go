package searcher

import (
	"fmt"

	"uno/belief"
	"uno/game"

	"golang.org/x/exp/rand"
)

// rollout plays w forward until the round ends or maxDepth steps have been taken in total.
func (m *MCTS) rollout(w *belief.World, steps int, rng *rand.Rand) (int, error) {
	for !w.Terminal() && steps < m.maxDepth {
		var action game.Action
		if w.State.Turn == game.Agent {
			legal := w.Legal()
			action = legal[rng.Intn(len(legal))] // Random rollout policy
		} else {
			action = m.opponentAction(w, rng)
		}
		if _, err := w.Step(action); err != nil {
			return steps, fmt.Errorf("failed to apply %s in rollout: %w", action, err)
		}
		steps++
	}

	if w.Terminal() {
		m.metrics.AddFullPlayout()
	} else {
		m.metrics.AddCutoff()
	}
	return steps, nil
}

// playOpponents moves every opponent until the agent is on turn again.
func (m *MCTS) playOpponents(w *belief.World, steps int, rng *rand.Rand) (int, error) {
	for !w.Terminal() && w.State.Turn != game.Agent && steps < m.maxDepth {
		action := m.opponentAction(w, rng)
		if _, err := w.Step(action); err != nil {
			return steps, fmt.Errorf("failed to apply opponent %s: %w", action, err)
		}
		steps++
	}
	return steps, nil
}

// opponentAction plays a random playable card from the sampled hand with
// probability playProbability and draws otherwise. Colors are picked uniformly
// and a draw four is challenged half of the time.
func (m *MCTS) opponentAction(w *belief.World, rng *rand.Rand) game.Action {
	s := w.State
	legal := w.Legal()
	switch {
	case s.CommandPending:
		return legal[rng.Intn(len(legal))]
	case s.ChallengeOpen:
		return game.ChallengeDrawFour(rng.Float64() < ChallengeProbability)
	case s.PendingDraw > 0, s.HasForced:
		return legal[0]
	}

	var plays []game.Action
	for _, action := range legal {
		if action.Type == game.PlayCardAction {
			plays = append(plays, action)
		}
	}
	if len(plays) > 0 && rng.Float64() < m.playProbability {
		return plays[rng.Intn(len(plays))]
	}
	return game.DrawCard()
}
