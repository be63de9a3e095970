// Package experiments pits searching agents against scripted opponents and
// stores what happened as CSV files.
package experiments

import (
	"fmt"

	"uno/agent"
	"uno/engine"
	"uno/experiments/metrics"
	"uno/game"
	"uno/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Results is everything one experiment produced.
type Results struct {
	Dir       string // run directory, empty when nothing was written
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []metrics.Summary
}

// Run plays every agent configuration of config and writes the results to a new run directory.
func Run(config Config) (Results, error) {
	results, err := Play(config)
	if err != nil {
		return results, err
	}

	writer, err := metrics.NewWriter(config.Dir, config.Name)
	if err != nil {
		return results, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	results.Dir = writer.Dir()

	if err := writer.WriteSetup(config); err != nil {
		return results, err
	}
	if err := writer.WriteAgentConfigs(config.Agents); err != nil {
		return results, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(results.Games); err != nil {
		return results, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(results.Moves); err != nil {
		return results, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	if err := writer.WriteSummaries(results.Summaries); err != nil {
		return results, fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Msgf("stored results in %s", results.Dir)
	return results, nil
}

// Play runs the rounds of config without writing anything.
func Play(config Config) (Results, error) {
	results := Results{}
	count := 0

	log.Info().Msgf("starting %s experiment...", config.Name)

	for ai, agentConfig := range config.Agents {
		log.Info().Msgf("starting agent %d of %d with %+v...", ai+1, len(config.Agents), agentConfig)

		for i := 0; i < config.Games; i++ {
			count++
			// Every configuration meets the same deals
			seed := config.Seed + uint64(i)
			gameMetric, moveMetrics, err := runGame(config, agentConfig, i%config.Seats, seed)
			if err != nil {
				return results, fmt.Errorf("agent %d game %d: %w", agentConfig.ID, i+1, err)
			}

			results.Games = append(results.Games, metrics.GameRecord{
				ID:         count,
				Agent:      agentConfig.ID,
				Opponent:   config.Opponent,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				results.Moves = append(results.Moves, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed agent %d game %d of %d with winner: %d", agentConfig.ID, i+1, config.Games, gameMetric.Winner)
		}

		summary := metrics.Summarize(agentConfig.ID, game.Agent, results.Games)
		results.Summaries = append(results.Summaries, summary)
		log.Info().Msgf("agent %d won %d of %d (%.3f ± %.3f), %.1f points per win",
			summary.Agent, summary.Wins, summary.Games, summary.WinRate, summary.WinRateStdDev, summary.MeanPoints)
	}

	log.Info().Msgf("completed %s experiment", config.Name)
	return results, nil
}

// runGame plays a single round between one agent and scripted opponents.
func runGame(config Config, agentConfig metrics.AgentConfig, dealer int, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	rng := rand.New(rand.NewSource(seed))
	opponents := make([]player.Player, config.Seats-1)
	for i := range opponents {
		opponents[i] = player.New(config.Opponent)
	}

	a := agent.New(agentConfig, seed^0x9e3779b97f4a7c15)
	e, err := engine.NewRound(a, opponents, dealer, rng, engine.WithMaxSteps(config.MaxSteps))
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	return e.Run()
}
