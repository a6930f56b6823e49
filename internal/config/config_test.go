package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Claude.Binary != "claude" {
		t.Errorf("Claude.Binary = %q, want %q", cfg.Claude.Binary, "claude")
	}
	if cfg.Claude.OutputFormat != "json" {
		t.Errorf("Claude.OutputFormat = %q, want %q", cfg.Claude.OutputFormat, "json")
	}
	if cfg.Defaults.MaxConcurrent != 5 {
		t.Errorf("Defaults.MaxConcurrent = %d, want 5", cfg.Defaults.MaxConcurrent)
	}
	if cfg.Defaults.StateFile != ".swarm_state.json" {
		t.Errorf("Defaults.StateFile = %q, want %q", cfg.Defaults.StateFile, ".swarm_state.json")
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false by default")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `claude:
  binary: my-claude
defaults:
  max_concurrent: 8
  timeout: 2m
  state_file: custom_state.json
history:
  enabled: true
  path: /tmp/swarm-history.db
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Claude.Binary != "my-claude" {
		t.Errorf("Claude.Binary = %q, want %q", cfg.Claude.Binary, "my-claude")
	}
	// Unset keys keep their defaults.
	if cfg.Claude.OutputFormat != "json" {
		t.Errorf("Claude.OutputFormat = %q, want default", cfg.Claude.OutputFormat)
	}
	if cfg.Defaults.MaxConcurrent != 8 {
		t.Errorf("Defaults.MaxConcurrent = %d, want 8", cfg.Defaults.MaxConcurrent)
	}
	if cfg.Defaults.Timeout != 2*time.Minute {
		t.Errorf("Defaults.Timeout = %s, want 2m", cfg.Defaults.Timeout)
	}
	if !cfg.History.Enabled || cfg.History.Path != "/tmp/swarm-history.db" {
		t.Errorf("History = %+v", cfg.History)
	}
	if cfg.Defaults.StateFile != "custom_state.json" {
		t.Errorf("Defaults.StateFile = %q", cfg.Defaults.StateFile)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadFromPath() on missing file: error = nil, want error")
	}
}
