package workflow

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scribeflow/scribe/agent"
	"github.com/scribeflow/scribe/graph"
)

// Config configures a workflow run: the default topic, the generation
// provider, and the graph engine settings.
//
// Example JSON:
//
//	{
//	  "topic": "quantum error correction",
//	  "agent": {"provider": "openai", "model": "gpt-4o-mini"},
//	  "graph": {"observer": "slog", "max_iterations": 10}
//	}
type Config struct {
	Topic string       `json:"topic"`
	Agent agent.Config `json:"agent"`
	Graph graph.Config `json:"graph"`
}

// DefaultConfig returns a hosted-OpenAI workflow with slog observability.
func DefaultConfig() Config {
	return Config{
		Topic: DefaultTopic,
		Agent: agent.DefaultConfig(),
		Graph: graph.DefaultConfig("research-write"),
	}
}

func (c *Config) Merge(source *Config) {
	if source.Topic != "" {
		c.Topic = source.Topic
	}

	c.Agent.Merge(&source.Agent)
	c.Graph.Merge(&source.Graph)
}

// LoadConfig reads a JSON config file and merges it over defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Merge(&loaded)
	return cfg, nil
}
