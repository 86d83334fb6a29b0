package graph

// CheckpointConfig controls state persistence during graph execution.
//
// Store names a CheckpointStore registered via RegisterCheckpointStore.
// Interval saves a checkpoint every N node executions (0 disables
// checkpointing). Preserve keeps checkpoints after successful completion
// instead of deleting them.
type CheckpointConfig struct {
	Store    string `json:"store"`
	Interval int    `json:"interval"`
	Preserve bool   `json:"preserve"`
}

// DefaultCheckpointConfig returns checkpoint configuration with
// checkpointing disabled.
func DefaultCheckpointConfig() CheckpointConfig {
	return CheckpointConfig{
		Store:    "memory",
		Interval: 0,
		Preserve: false,
	}
}

func (c *CheckpointConfig) Merge(source *CheckpointConfig) {
	if source.Store != "" {
		c.Store = source.Store
	}

	if source.Interval > 0 {
		c.Interval = source.Interval
	}

	if source.Preserve {
		c.Preserve = source.Preserve
	}
}

// Config defines configuration for graph execution.
//
// Observer and Checkpoint.Store are strings resolved through registries at
// construction time, which keeps the struct JSON-friendly:
//
//	{
//	  "name": "research-write",
//	  "observer": "slog",
//	  "max_iterations": 25,
//	  "checkpoint": {"store": "memory", "interval": 1}
//	}
type Config struct {
	// Name identifies the graph in observer events
	Name string `json:"name"`

	// Observer names the observer implementation ("noop", "slog", ...)
	Observer string `json:"observer"`

	// MaxIterations bounds execution so cyclic topologies cannot loop forever
	MaxIterations int `json:"max_iterations"`

	// Checkpoint configures in-run state persistence and recovery
	Checkpoint CheckpointConfig `json:"checkpoint"`
}

// DefaultConfig returns sensible defaults: slog observer, a generous
// iteration bound, checkpointing disabled.
func DefaultConfig(name string) Config {
	return Config{
		Name:          name,
		Observer:      "slog",
		MaxIterations: 100,
		Checkpoint:    DefaultCheckpointConfig(),
	}
}

func (c *Config) Merge(source *Config) {
	if source.Name != "" {
		c.Name = source.Name
	}

	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if source.MaxIterations > 0 {
		c.MaxIterations = source.MaxIterations
	}

	c.Checkpoint.Merge(&source.Checkpoint)
}
