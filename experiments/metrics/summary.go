package metrics

import (
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the rounds one agent configuration played.
type Summary struct {
	Agent         int
	Games         int
	Wins          int
	WinRate       float64
	WinRateStdDev float64 // sample standard deviation of the per-round win indicator
	MeanPoints    float64 // points scored in the rounds the agent won, 0 if none
	MeanMoves     float64
}

// Summarize reduces the records of agent. seat is the seat the agent played in.
func Summarize(agent, seat int, records []GameRecord) Summary {
	var wins, moves, points []float64
	for _, record := range records {
		if record.Agent != agent {
			continue
		}
		won := 0.0
		if record.Winner == seat {
			won = 1
			points = append(points, float64(record.Points))
		}
		wins = append(wins, won)
		moves = append(moves, float64(record.TotalMoves))
	}

	summary := Summary{Agent: agent, Games: len(wins)}
	if len(wins) == 0 {
		return summary
	}
	summary.WinRate, summary.WinRateStdDev = stat.MeanStdDev(wins, nil)
	summary.Wins = len(points)
	summary.MeanMoves = stat.Mean(moves, nil)
	if len(points) > 0 {
		summary.MeanPoints = stat.Mean(points, nil)
	}
	return summary
}
