package experiments

import (
	"bytes"
	"fmt"
	"os"

	"uno/experiments/metrics"
	"uno/meta"

	"gopkg.in/yaml.v3"
)

// Config describes one experiment: every agent configuration plays Games
// rounds against the same kind of opponents.
type Config struct {
	Name     string                `yaml:"name"`
	Dir      string                `yaml:"dir"` // results root, "experiments" when empty
	Seed     uint64                `yaml:"seed"`
	Seats    int                   `yaml:"seats"`
	Games    int                   `yaml:"games"` // per agent configuration
	MaxSteps int                   `yaml:"max_steps"`
	Opponent string                `yaml:"opponent"` // "bot" or "random"
	Agents   []metrics.AgentConfig `yaml:"agents"`
}

// Load reads a YAML experiment file. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read experiment config: %w", err)
	}
	return Parse(data)
}

// Default is the experiment run when no file is given.
func Default() Config {
	var config Config
	config.applyDefaults()
	return config
}

func Parse(data []byte) (Config, error) {
	var config Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse experiment config: %w", err)
	}
	config.applyDefaults()
	return config, config.validate()
}

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "default"
	}
	if c.Dir == "" {
		c.Dir = "experiments"
	}
	if c.Seats == 0 {
		c.Seats = meta.SEATS
	}
	if c.Games == 0 {
		c.Games = meta.NUM_GAMES
	}
	if c.MaxSteps == 0 {
		c.MaxSteps = meta.MAX_STEPS
	}
	if c.Opponent == "" {
		c.Opponent = "bot"
	}
	if len(c.Agents) == 0 {
		c.Agents = []metrics.AgentConfig{{ID: 1}}
	}
}

func (c Config) validate() error {
	if c.Seats < 2 || c.Seats > 10 {
		return fmt.Errorf("seats must be between 2 and 10, got %d", c.Seats)
	}
	if c.Games < 0 {
		return fmt.Errorf("games must not be negative, got %d", c.Games)
	}
	if c.Opponent != "bot" && c.Opponent != "random" {
		return fmt.Errorf("unknown opponent %q", c.Opponent)
	}
	seen := map[int]bool{}
	for _, agent := range c.Agents {
		if err := agent.Validate(); err != nil {
			return err
		}
		if seen[agent.ID] {
			return fmt.Errorf("duplicate agent id %d", agent.ID)
		}
		seen[agent.ID] = true
	}
	return nil
}
