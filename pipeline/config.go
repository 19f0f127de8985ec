package pipeline

import (
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"

	"github.com/hoshiryu/remesh/pipeline/core"
)

type Config struct {
	Pipeline PipelineConfig `toml:"pipeline"`
	Assets   AssetsConfig   `toml:"assets"`
	Export   ExportConfig   `toml:"export"`
}

type PipelineConfig struct {
	// Number of worker goroutines backing the job system.
	Workers int `toml:"workers"`
	// Capacity of the job queue and of the pending-mesh queue.
	QueueSize int `toml:"queue_size"`
	// Keep running and reprocess meshes as they change on disk.
	Watch bool `toml:"watch"`
}

type AssetsConfig struct {
	// Directory tree holding the input meshes.
	InputDir string `toml:"input_dir"`
	// Directory receiving the compacted meshes.
	OutputDir string `toml:"output_dir"`
	// Write the generated sample meshes into the input directory on startup.
	SeedSamples bool `toml:"seed_samples"`
}

type ExportConfig struct {
	// Suffix appended to exported mesh names, before the extension.
	Suffix string `toml:"suffix"`
}

func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Workers:   runtime.NumCPU(),
			QueueSize: 64,
		},
		Assets: AssetsConfig{
			InputDir:  "assets/meshes",
			OutputDir: "out",
		},
		Export: ExportConfig{
			Suffix: "_compact",
		},
	}
}

// LoadConfig reads a TOML config file, filling missing or invalid values
// with defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogWarn("config file %s not found. Using defaults.", path)
			return config, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	if config.Pipeline.Workers < 1 {
		core.LogWarn("pipeline.workers must be a positive number. Defaulting to %d.", runtime.NumCPU())
		config.Pipeline.Workers = runtime.NumCPU()
	}
	if config.Pipeline.QueueSize < 1 {
		core.LogWarn("pipeline.queue_size must be a positive number. Defaulting to 64.")
		config.Pipeline.QueueSize = 64
	}
	if config.Export.Suffix == "" {
		core.LogWarn("export.suffix must be nonempty. Defaulting to _compact.")
		config.Export.Suffix = "_compact"
	}

	return config, nil
}
