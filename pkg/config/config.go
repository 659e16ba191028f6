// Package config loads and validates the pipeline's run configuration: a
// JSON document naming the input volume's shape, its physical voxel size,
// a performance/memory tradeoff knob, and an output folder.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Performance selects which voxelgraph storage flavour a run should build.
type Performance string

const (
	// PerformanceSpeed selects the flat-indexed graph.
	PerformanceSpeed Performance = "speed"
	// PerformanceMemory selects the hash-keyed graph.
	PerformanceMemory Performance = "memory"
)

// Config is the JSON configuration object the core pipeline consumes.
type Config struct {
	Shape       [3]uint64   `json:"shape"`
	VoxelSize   float64     `json:"voxel_size"`
	Performance Performance `json:"performance"`
	Folder      string      `json:"folder"`

	// Method and Threshold select the segmentation stage when the run
	// starts from grayscale input rather than an already-binary mask.
	Method    string  `json:"method,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`

	// InputPath is the raw volume file this configuration describes. It
	// is not itself part of the core's configuration contract but every
	// loader in this module accepts it alongside shape/voxel_size so the
	// CLI has one JSON document per run.
	InputPath string `json:"input_path"`
}

// Load reads and validates a JSON configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every field the core relies on is present and
// well-formed. It does not check the input file's length against Shape —
// that check needs the file's actual size and lives in pkg/rawio.
func (c *Config) Validate() error {
	if c.Shape[0] == 0 || c.Shape[1] == 0 || c.Shape[2] == 0 {
		return fmt.Errorf("config: shape must have three positive extents, got %v", c.Shape)
	}
	if c.VoxelSize <= 0 {
		return fmt.Errorf("config: voxel_size must be positive, got %v", c.VoxelSize)
	}
	switch c.Performance {
	case PerformanceSpeed, PerformanceMemory, "":
	default:
		return fmt.Errorf("config: unrecognised performance mode %q", c.Performance)
	}
	if c.Folder == "" {
		return fmt.Errorf("config: folder is required")
	}
	if c.InputPath == "" {
		return fmt.Errorf("config: input_path is required")
	}
	return nil
}

// UsesSpeedGraph reports whether the run should build a flat-indexed
// graph. Memory mode is the default when performance is left unset.
func (c *Config) UsesSpeedGraph() bool {
	return c.Performance == PerformanceSpeed
}
