// Package report writes a human-readable YAML summary of a pipeline run:
// stage timings, the percolating-cluster and pore-voxel counts, and
// aggregate centerline statistics. It is pure ambient diagnostics, not
// part of the configuration or graph output the core pipeline consumes.
package report

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"porenet/pkg/centerline"
)

// StageTiming records how long one named pipeline stage took.
type StageTiming struct {
	Stage   string  `yaml:"stage"`
	Seconds float64 `yaml:"seconds"`
}

// RunReport is the top-level document written to the run's YAML report
// file.
type RunReport struct {
	Stages              []StageTiming `yaml:"stages"`
	PercolatingClusters int           `yaml:"percolating_clusters"`
	TotalClustersFound  int           `yaml:"total_clusters_found"`
	PoreVoxelCount      int           `yaml:"pore_voxel_count"`
	CenterlineCount     int           `yaml:"centerline_count"`
	MeanCenterlineSize  float64       `yaml:"mean_centerline_size"`
	StdDevCenterlineSize float64      `yaml:"stddev_centerline_size"`
}

// Build summarises set's per-line statistics into a RunReport's
// centerline fields, using the other fields passed through unchanged.
func Build(stages []StageTiming, percolating, totalClusters, poreVoxels int, set *centerline.Set) RunReport {
	sizes := make([]float64, len(set.Stats))
	for i, s := range set.Stats {
		sizes[i] = s.Size
	}

	var mean, stddev float64
	if len(sizes) > 0 {
		mean = stat.Mean(sizes, nil)
		stddev = stat.StdDev(sizes, nil)
	}

	return RunReport{
		Stages:               stages,
		PercolatingClusters:  percolating,
		TotalClustersFound:   totalClusters,
		PoreVoxelCount:       poreVoxels,
		CenterlineCount:      len(set.Lines),
		MeanCenterlineSize:   mean,
		StdDevCenterlineSize: stddev,
	}
}

// Write marshals r as YAML to path.
func Write(path string, r RunReport) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: marshaling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("report: writing %s: %w", path, err)
	}
	return nil
}
