package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type GameRecord struct {
	ID       int
	Agent    int // AgentConfig.ID
	Opponent string
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a fresh run directory root/name/<timestamp>-<uuid>.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp+"-"+uuid.NewString())
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteSetup stores v, normally the experiment configuration, as setup.yaml.
func (w *Writer) WriteSetup(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode setup: %w", err)
	}
	if err := os.WriteFile(filepath.Join(w.baseDir, "setup.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return nil
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "simulations", "particles", "min_particles", "max_depth", "gamma",
		"exploration", "play_probability", "exact_draws", "random_expansion", "temperature"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Simulations),
			strconv.Itoa(config.Particles),
			strconv.Itoa(config.MinParticles),
			strconv.Itoa(config.MaxDepth),
			formatFloat(config.Gamma),
			formatOptional(config.Exploration),
			formatOptional(config.PlayProbability),
			strconv.FormatBool(config.ExactDraws),
			strconv.FormatBool(config.RandomExpansion),
			formatFloat(config.Temperature),
		})
	}
	return w.writeCSV("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "agent", "opponent", "dealer", "winner", "points", "total_moves",
		"start_time", "end_time", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			record.Opponent,
			strconv.Itoa(record.Dealer),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Points),
			strconv.Itoa(record.TotalMoves),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
		})
	}
	return w.writeCSV("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "player", "action", "duration", "simulations", "max_depth",
		"episodes", "full_playouts", "cutoffs", "tree_size"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			record.Action,
			record.Duration.String(),
			strconv.Itoa(record.Simulations),
			strconv.Itoa(record.MaxDepth),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.TreeSize),
		})
	}
	return w.writeCSV("move_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(summaries []Summary) error {
	header := []string{"agent", "games", "wins", "win_rate", "win_rate_std", "mean_points", "mean_moves"}
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(summary.Agent),
			strconv.Itoa(summary.Games),
			strconv.Itoa(summary.Wins),
			formatFloat(summary.WinRate),
			formatFloat(summary.WinRateStdDev),
			formatFloat(summary.MeanPoints),
			formatFloat(summary.MeanMoves),
		})
	}
	return w.writeCSV("summary.csv", header, rows)
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatOptional leaves the cell empty for settings left to the default.
func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
