package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"porenet/pkg/config"
	"porenet/pkg/report"
)

func writeRawVolume(t *testing.T, nx, ny, nz int, fill func(x, y, z int) byte) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "volume.raw")
	data := make([]byte, nx*ny*nz)
	i := 0
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				data[i] = fill(x, y, z)
				i++
			}
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing raw volume fixture: %v", err)
	}
	return path
}

func TestRun_StraightChannelProducesGraphAndReport(t *testing.T) {
	inputPath := writeRawVolume(t, 1, 1, 8, func(x, y, z int) byte { return 1 })
	outDir := filepath.Join(t.TempDir(), "out")

	cfg := &config.Config{
		Shape:     [3]uint64{1, 1, 8},
		VoxelSize: 1,
		Folder:    outDir,
		InputPath: inputPath,
	}

	p := New(cfg, Stages{RunSetup: true})
	if err := p.Run(); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}

	for _, name := range []string{"centerlines.json", "centerlines.stat", "run_report.yaml"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("expected output file %s to exist: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(outDir, "run_report.yaml"))
	if err != nil {
		t.Fatalf("reading run report: %v", err)
	}
	var r report.RunReport
	if err := yaml.Unmarshal(data, &r); err != nil {
		t.Fatalf("run report is not valid YAML: %v", err)
	}
	if r.PoreVoxelCount != 8 {
		t.Fatalf("PoreVoxelCount = %d, want 8", r.PoreVoxelCount)
	}
	if len(r.Stages) == 0 {
		t.Fatalf("expected at least one recorded stage timing")
	}
}

func TestRun_MorphologyStageRunsWhenEnabled(t *testing.T) {
	inputPath := writeRawVolume(t, 2, 2, 2, func(x, y, z int) byte { return 1 })
	outDir := filepath.Join(t.TempDir(), "out")

	cfg := &config.Config{
		Shape:     [3]uint64{2, 2, 2},
		VoxelSize: 1,
		Folder:    outDir,
		InputPath: inputPath,
	}

	p := New(cfg, Stages{RunSetup: true, RunMorphology: true})
	if err := p.Run(); err != nil {
		t.Fatalf("Run with morphology enabled returned an error: %v", err)
	}
}

func TestRun_MissingInputFileFails(t *testing.T) {
	cfg := &config.Config{
		Shape:     [3]uint64{2, 2, 2},
		VoxelSize: 1,
		Folder:    filepath.Join(t.TempDir(), "out"),
		InputPath: filepath.Join(t.TempDir(), "missing.raw"),
	}
	p := New(cfg, Stages{RunSetup: true})
	if err := p.Run(); err == nil {
		t.Fatalf("expected an error for a missing input file")
	}
}
