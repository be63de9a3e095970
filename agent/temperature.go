package agent

import (
	"math"

	"uno/game"
	"uno/searcher"

	"golang.org/x/exp/rand"
)

// adjustTemperature turns root visit counts into move probabilities proportional to visits^(1/temperature).
func adjustTemperature(policy []searcher.Stat, temperature float64) []float64 {
	exponent := 1.0 / temperature
	sum := 0.0
	probs := make([]float64, len(policy))
	for i, stat := range policy {
		probs[i] = math.Pow(float64(stat.Visits), exponent)
		sum += probs[i]
	}
	if sum == 0 {
		for i := range probs {
			probs[i] = 1 / float64(len(probs))
		}
		return probs
	}
	// Normalize
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

func sample(policy []searcher.Stat, probs []float64, rng *rand.Rand) game.Action {
	sampled := rng.Float64()
	cumulative := 0.0
	for i, prob := range probs {
		cumulative += prob
		if sampled < cumulative {
			return policy[i].Action
		}
	}
	// Rounding left the cumulative sum short of 1
	return policy[len(policy)-1].Action
}
