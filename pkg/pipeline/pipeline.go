// Package pipeline orchestrates a full run: segmentation (when the input
// is grayscale), connected-component labeling and percolation filtering,
// medial-axis extraction, centerline routing, and the export stages. Run
// returns the first error to its caller; the CLI entry point (cmd/porenet)
// is what turns that error into a process exit.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"porenet/pkg/centerline"
	"porenet/pkg/cluster"
	"porenet/pkg/config"
	"porenet/pkg/jsongraph"
	"porenet/pkg/morphology"
	"porenet/pkg/rawio"
	"porenet/pkg/report"
	"porenet/pkg/segmentation"
	"porenet/pkg/skeleton"
	"porenet/pkg/volume"
	"porenet/pkg/voxelgraph"
)

// Stages selects which optional stages a Run executes. Labeling, the
// distance transform, and centerline routing always run; segmentation and
// the morphology report are opt-in, matching the CLI's stage flags.
type Stages struct {
	RunSetup        bool
	RunSegmentation bool
	RunMorphology   bool
}

// Pipeline holds the configuration and accumulated state of a single run.
type Pipeline struct {
	cfg    *config.Config
	stages Stages

	timings []report.StageTiming

	volume      *volume.Volume
	clusterInfo cluster.Result
	graph       voxelgraph.Graph
	maximaCount int
	centerlines *centerline.Set
}

// New builds a Pipeline from a loaded configuration and the stage flags
// selected on the command line.
func New(cfg *config.Config, stages Stages) *Pipeline {
	return &Pipeline{cfg: cfg, stages: stages}
}

func (p *Pipeline) timeStage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.timings = append(p.timings, report.StageTiming{
		Stage:   name,
		Seconds: time.Since(start).Seconds(),
	})
	return err
}

// Run executes every stage of the pipeline in order, writing its outputs
// under cfg.Folder, and returns the first error encountered.
func (p *Pipeline) Run() error {
	if err := os.MkdirAll(p.cfg.Folder, 0755); err != nil {
		return fmt.Errorf("pipeline: creating output folder %s: %w", p.cfg.Folder, err)
	}

	if p.stages.RunSetup {
		fmt.Println("Stage: loading input volume")
		if err := p.timeStage("setup", p.runSetup); err != nil {
			return err
		}
	}

	if p.stages.RunSegmentation {
		fmt.Println("Stage: segmentation")
		if err := p.timeStage("segmentation", p.runSegmentation); err != nil {
			return err
		}
	}

	fmt.Println("Stage: connected-component labeling and percolation filtering")
	if err := p.timeStage("labeling", p.runLabeling); err != nil {
		return err
	}

	fmt.Println("Stage: medial-axis extraction")
	if err := p.timeStage("medial_axis", p.runMedialAxis); err != nil {
		return err
	}

	fmt.Println("Stage: centerline routing")
	if err := p.timeStage("centerline", p.runCenterlines); err != nil {
		return err
	}

	fmt.Println("Stage: exporting graph and statistics")
	if err := p.timeStage("export", p.runExport); err != nil {
		return err
	}

	if p.stages.RunMorphology {
		fmt.Println("Stage: morphology report")
		if err := p.timeStage("morphology", p.runMorphology); err != nil {
			return err
		}
	}

	fmt.Println("Stage: writing run report")
	return p.timeStage("report", p.runReport)
}

func (p *Pipeline) runSetup() error {
	v, err := rawio.ReadVolume(p.cfg)
	if err != nil {
		return err
	}
	p.volume = v
	return nil
}

func (p *Pipeline) runSegmentation() error {
	if p.volume == nil {
		v, err := rawio.ReadVolume(p.cfg)
		if err != nil {
			return err
		}
		p.volume = v
	}
	method := segmentation.Method(p.cfg.Method)
	if method == "" {
		method = segmentation.Otsu
	}
	segmented, err := segmentation.Segment(method, byte(p.cfg.Threshold), p.volume)
	if err != nil {
		return fmt.Errorf("pipeline: segmentation: %w", err)
	}
	p.volume = segmented
	return nil
}

func (p *Pipeline) runLabeling() error {
	if p.volume == nil {
		v, err := rawio.ReadVolume(p.cfg)
		if err != nil {
			return err
		}
		p.volume = v
	}
	p.clusterInfo = cluster.Label(p.volume)
	fmt.Printf("  %d/%d clusters percolate\n", p.clusterInfo.PercolatingClusters, p.clusterInfo.TotalClustersFound)
	return nil
}

func (p *Pipeline) runMedialAxis() error {
	distances := skeleton.Run(p.volume)
	if p.cfg.UsesSpeedGraph() {
		p.graph = voxelgraph.NewFlatGraph(distances)
	} else {
		p.graph = voxelgraph.NewHashGraph(distances)
	}
	p.maximaCount = voxelgraph.LabelMaxima(p.graph)
	fmt.Printf("  %d ridge-maxima clusters found\n", p.maximaCount)
	return nil
}

func (p *Pipeline) runCenterlines() error {
	p.centerlines = centerline.RunDefault(p.volume, p.graph)
	fmt.Printf("  %d centerlines extracted\n", len(p.centerlines.Lines))
	return nil
}

func (p *Pipeline) runExport() error {
	jsonPath := filepath.Join(p.cfg.Folder, "centerlines.json")
	if err := jsongraph.WriteCenterlinesJSON(jsonPath, p.centerlines, p.graph); err != nil {
		return err
	}
	statPath := filepath.Join(p.cfg.Folder, "centerlines.stat")
	return jsongraph.WriteCenterlinesStat(statPath, p.centerlines)
}

func (p *Pipeline) runMorphology() error {
	classified := morphology.Classify(p.volume)
	pore, surface, bulk := morphology.Fractions(classified)
	fmt.Printf("  pore=%.4f solid_surface=%.4f solid_bulk=%.4f\n", pore, surface, bulk)

	dimension := morphology.FractalDimension(p.volume)
	fmt.Printf("  fractal dimension=%.4f\n", dimension)
	return nil
}

func (p *Pipeline) runReport() error {
	r := report.Build(p.timings, p.clusterInfo.PercolatingClusters, p.clusterInfo.TotalClustersFound,
		countPoreVoxels(p.volume), p.centerlines)
	reportPath := filepath.Join(p.cfg.Folder, "run_report.yaml")
	return report.Write(reportPath, r)
}

func countPoreVoxels(v *volume.Volume) int {
	n := 0
	for _, b := range v.Data {
		if b == volume.Pore {
			n++
		}
	}
	return n
}
