package visualization

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"porenet/internal/voxel"
	"porenet/pkg/centerline"
	"porenet/pkg/skeleton"
	"porenet/pkg/volume"
	"porenet/pkg/voxelgraph"
)

func fixtureVolume() *volume.Volume {
	v := volume.New(4, 4, 4)
	for z := 0; z < 4; z++ {
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if x < 2 {
					v.Set(voxel.Point{X: x, Y: y, Z: z}, volume.Pore)
				}
			}
		}
	}
	return v
}

func TestExtractPoreSlice_RendersWhiteForPoreBlackForSolid(t *testing.T) {
	v := fixtureVolume()
	vw := NewViewer(v)

	img, err := vw.ExtractPoreSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractPoreSlice returned an error: %v", err)
	}
	gray := img.(*image.Gray)
	if gray.GrayAt(0, 0).Y != 255 {
		t.Fatalf("expected a pore voxel to render white")
	}
	if gray.GrayAt(3, 0).Y != 0 {
		t.Fatalf("expected a solid voxel to render black")
	}
}

func TestExtractPoreSlice_RejectsOutOfRangePosition(t *testing.T) {
	v := fixtureVolume()
	vw := NewViewer(v)
	if _, err := vw.ExtractPoreSlice("z", 99); err == nil {
		t.Fatalf("expected an error for an out-of-range slice position")
	}
}

func TestExtractPoreSlice_RejectsInvalidAxis(t *testing.T) {
	v := fixtureVolume()
	vw := NewViewer(v)
	if _, err := vw.ExtractPoreSlice("w", 0); err == nil {
		t.Fatalf("expected an error for an invalid axis")
	}
}

func TestExtractDistanceSlice_RequiresDistancesSet(t *testing.T) {
	v := fixtureVolume()
	vw := NewViewer(v)
	if _, err := vw.ExtractDistanceSlice("z", 0); err == nil {
		t.Fatalf("expected an error when no distance field has been set")
	}
}

func TestExtractDistanceSlice_BrightestVoxelIsNormalisedToMax(t *testing.T) {
	// A 3x3x3 pore block centered in a 5x5x5 solid volume has exactly one
	// voxel (its center) with a nonzero distance, away from every outer
	// face and boundary-slice pitfall.
	v := volume.New(5, 5, 5)
	for z := 1; z <= 3; z++ {
		for y := 1; y <= 3; y++ {
			for x := 1; x <= 3; x++ {
				v.Set(voxel.Point{X: x, Y: y, Z: z}, volume.Pore)
			}
		}
	}
	vw := NewViewer(v)
	vw.Distances = skeleton.Run(v)

	img, err := vw.ExtractDistanceSlice("z", 2)
	if err != nil {
		t.Fatalf("ExtractDistanceSlice returned an error: %v", err)
	}
	gray := img.(*image.Gray)
	if got := gray.GrayAt(2, 2).Y; got != 255 {
		t.Fatalf("center voxel of the slice should normalise to 255, got %d", got)
	}
	if got := gray.GrayAt(1, 1).Y; got != 0 {
		t.Fatalf("boundary voxel of the pore block should render 0, got %d", got)
	}
}

func TestExtractCenterlineSlice_HighlightsNodesOnPlane(t *testing.T) {
	v := volume.New(1, 1, 4)
	for i := range v.Data {
		v.Data[i] = volume.Pore
	}
	g := voxelgraph.NewHashGraph(skeleton.Run(v))
	vw := NewViewer(v)
	vw.Centerlines = centerline.NewSet(g)

	img, err := vw.ExtractCenterlineSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractCenterlineSlice returned an error: %v", err)
	}
	if img.Bounds().Dx() != 1 || img.Bounds().Dy() != 1 {
		t.Fatalf("unexpected image bounds %v for a 1x1 plane", img.Bounds())
	}
}

func TestSaveSlice_WritesAReadablePNG(t *testing.T) {
	v := fixtureVolume()
	vw := NewViewer(v)
	img, err := vw.ExtractPoreSlice("z", 0)
	if err != nil {
		t.Fatalf("ExtractPoreSlice returned an error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "slice.png")
	if err := vw.SaveSlice(img, path); err != nil {
		t.Fatalf("SaveSlice returned an error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written PNG: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("written file is not a valid PNG: %v", err)
	}
}

func TestSaveSliceSequence_WritesOneFilePerPosition(t *testing.T) {
	v := fixtureVolume()
	vw := NewViewer(v)
	dir := t.TempDir()

	if err := vw.SaveSliceSequence(KindPore, "z", dir); err != nil {
		t.Fatalf("SaveSliceSequence returned an error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d files, want 4 (one per z position)", len(entries))
	}
}
