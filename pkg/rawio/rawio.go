// Package rawio reads and writes the dense, x-fastest raw binary volume
// files that flow between the pipeline's stages.
package rawio

import (
	"fmt"
	"os"

	"porenet/pkg/config"
	"porenet/pkg/volume"
)

// ReadVolume reads the raw byte dump named by cfg.InputPath and wraps it as
// a volume.Volume shaped by cfg.Shape. A length mismatch between the file
// and the configured shape is a configuration error, fatal at the
// boundary.
func ReadVolume(cfg *config.Config) (*volume.Volume, error) {
	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("rawio: reading %s: %w", cfg.InputPath, err)
	}

	nx, ny, nz := int(cfg.Shape[0]), int(cfg.Shape[1]), int(cfg.Shape[2])
	v, err := volume.NewFromBytes(nx, ny, nz, data)
	if err != nil {
		return nil, fmt.Errorf("rawio: %s does not match configured shape: %w", cfg.InputPath, err)
	}
	return v, nil
}

// WriteVolume writes v's binary contents to path, x-fastest.
func WriteVolume(path string, v *volume.Volume) error {
	if err := os.WriteFile(path, v.Data, 0644); err != nil {
		return fmt.Errorf("rawio: writing %s: %w", path, err)
	}
	return nil
}
