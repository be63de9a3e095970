package game

// Reward scores a finished or truncated playout from the agent's perspective:
// 1 when the agent went out first, 0 otherwise. A playout cut off by the depth
// limit is not an error, it simply earns nothing.
func Reward(s State) float64 {
	if s.Winner == Agent {
		return 1.0
	}
	return 0.0
}

// Points is what the winner of a round collects: the value of every card left in the other hands.
func Points(winner int, hands [][]Card) int {
	total := 0
	for seat, hand := range hands {
		if seat != winner {
			total += HandScore(hand)
		}
	}
	return total
}
