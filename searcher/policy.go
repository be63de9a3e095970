package searcher

import "math"

type ucb struct {
	numerator float64
}

func newUCB(c float64, N int) ucb {
	if N == 0 {
		panic("N cannot be 0")
	}
	return ucb{numerator: c * c * math.Log(float64(N))}
}

// evaluate is UCB1 for a child with total reward q over n visits.
// Unvisited children score +Inf so every action is tried once.
func (u ucb) evaluate(q float64, n int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	// UCB1 = q/n + c*sqrt(ln(N)/n)
	return q/float64(n) + math.Sqrt(u.numerator/float64(n))
}
