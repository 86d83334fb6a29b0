package workflow_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scribeflow/scribe/workflow"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"topic": "tidal energy",
		"agent": {"provider": "ollama", "model": "llama3.2"},
		"graph": {"max_iterations": 7}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := workflow.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Topic != "tidal energy" {
		t.Errorf("Topic = %q, want tidal energy", cfg.Topic)
	}
	if cfg.Agent.Provider != "ollama" {
		t.Errorf("Agent.Provider = %q, want ollama", cfg.Agent.Provider)
	}
	if cfg.Graph.MaxIterations != 7 {
		t.Errorf("Graph.MaxIterations = %d, want 7", cfg.Graph.MaxIterations)
	}

	// Unset fields keep their defaults.
	if cfg.Graph.Observer != "slog" {
		t.Errorf("Graph.Observer = %q, want slog default", cfg.Graph.Observer)
	}
	if cfg.Agent.TimeoutSec != 60 {
		t.Errorf("Agent.TimeoutSec = %d, want 60 default", cfg.Agent.TimeoutSec)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := workflow.LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := workflow.LoadConfig(path); err == nil {
		t.Error("malformed JSON should fail")
	}
}
