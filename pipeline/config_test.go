package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should fall back to defaults, got %v", err)
	}
	defaults := DefaultConfig()
	if config.Assets.InputDir != defaults.Assets.InputDir {
		t.Errorf("input_dir: expected %s, got %s", defaults.Assets.InputDir, config.Assets.InputDir)
	}
	if config.Export.Suffix != defaults.Export.Suffix {
		t.Errorf("suffix: expected %s, got %s", defaults.Export.Suffix, config.Export.Suffix)
	}
}

func TestLoadConfig(t *testing.T) {
	content := `
[pipeline]
workers = 3
queue_size = 16
watch = true

[assets]
input_dir = "meshes"
output_dir = "exported"

[export]
suffix = "_weld"
`
	path := filepath.Join(t.TempDir(), "remesh.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Pipeline.Workers != 3 {
		t.Errorf("workers: expected 3, got %d", config.Pipeline.Workers)
	}
	if config.Pipeline.QueueSize != 16 {
		t.Errorf("queue_size: expected 16, got %d", config.Pipeline.QueueSize)
	}
	if !config.Pipeline.Watch {
		t.Errorf("watch: expected true")
	}
	if config.Assets.InputDir != "meshes" {
		t.Errorf("input_dir: expected meshes, got %s", config.Assets.InputDir)
	}
	if config.Export.Suffix != "_weld" {
		t.Errorf("suffix: expected _weld, got %s", config.Export.Suffix)
	}
}

func TestLoadConfigDefaultsInvalidValues(t *testing.T) {
	content := `
[pipeline]
workers = -2
queue_size = 0

[export]
suffix = ""
`
	path := filepath.Join(t.TempDir(), "remesh.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.Pipeline.Workers < 1 {
		t.Errorf("workers not defaulted: %d", config.Pipeline.Workers)
	}
	if config.Pipeline.QueueSize != 64 {
		t.Errorf("queue_size: expected 64, got %d", config.Pipeline.QueueSize)
	}
	if config.Export.Suffix != "_compact" {
		t.Errorf("suffix: expected _compact, got %s", config.Export.Suffix)
	}
}

func TestLoadConfigBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remesh.toml")
	if err := os.WriteFile(path, []byte("[pipeline\nworkers = "), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("expected an error for malformed TOML")
	}
}
