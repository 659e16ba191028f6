// Package visualization renders 2D slices of a 3D pore-network run: the
// binary pore mask, the medial-axis distance field, and the centerline set
// overlaid on the mask, dumped as a sequence of PNG images along an axis.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"porenet/internal/voxel"
	"porenet/pkg/centerline"
	"porenet/pkg/skeleton"
	"porenet/pkg/volume"
)

// Viewer renders slices of a single run's volume, optionally annotated
// with its distance field and centerline set.
type Viewer struct {
	Volume      *volume.Volume
	Distances   *skeleton.Map
	Centerlines *centerline.Set
}

// NewViewer returns a Viewer over v. Distances and Centerlines may be set
// afterwards to enable the corresponding slice kinds.
func NewViewer(v *volume.Volume) *Viewer {
	return &Viewer{Volume: v}
}

func (vw *Viewer) axisExtent(axis string) (int, error) {
	switch axis {
	case "x", "X":
		return vw.Volume.NX, nil
	case "y", "Y":
		return vw.Volume.NY, nil
	case "z", "Z":
		return vw.Volume.NZ, nil
	default:
		return 0, fmt.Errorf("visualization: invalid axis %q (must be x, y, or z)", axis)
	}
}

func (vw *Viewer) planePoint(axis string, position, u, v int) voxel.Point {
	switch axis {
	case "x", "X":
		return voxel.Point{X: position, Y: u, Z: v}
	case "y", "Y":
		return voxel.Point{X: u, Y: position, Z: v}
	default:
		return voxel.Point{X: u, Y: v, Z: position}
	}
}

func (vw *Viewer) planeDims(axis string) (int, int) {
	switch axis {
	case "x", "X":
		return vw.Volume.NY, vw.Volume.NZ
	case "y", "Y":
		return vw.Volume.NX, vw.Volume.NZ
	default:
		return vw.Volume.NX, vw.Volume.NY
	}
}

// ExtractPoreSlice renders the binary pore/solid mask at position along
// axis: white for pore, black for solid.
func (vw *Viewer) ExtractPoreSlice(axis string, position int) (image.Image, error) {
	extent, err := vw.axisExtent(axis)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= extent {
		return nil, fmt.Errorf("visualization: position %d out of range [0,%d)", position, extent)
	}

	du, dv := vw.planeDims(axis)
	img := image.NewGray(image.Rect(0, 0, du, dv))
	for v := 0; v < dv; v++ {
		for u := 0; u < du; u++ {
			p := vw.planePoint(axis, position, u, v)
			val := uint8(0)
			if vw.Volume.At(p) == volume.Pore {
				val = 255
			}
			img.SetGray(u, v, color.Gray{Y: val})
		}
	}
	return img, nil
}

// ExtractDistanceSlice renders the medial-axis radius field at position
// along axis, normalised against the brightest voxel in that slice.
func (vw *Viewer) ExtractDistanceSlice(axis string, position int) (image.Image, error) {
	if vw.Distances == nil {
		return nil, fmt.Errorf("visualization: no distance field set on this viewer")
	}
	extent, err := vw.axisExtent(axis)
	if err != nil {
		return nil, err
	}
	if position < 0 || position >= extent {
		return nil, fmt.Errorf("visualization: position %d out of range [0,%d)", position, extent)
	}

	du, dv := vw.planeDims(axis)
	radii := make([]float64, du*dv)
	var maxRadius float64
	for v := 0; v < dv; v++ {
		for u := 0; u < du; u++ {
			p := vw.planePoint(axis, position, u, v)
			if vw.Volume.At(p) != volume.Pore || !vw.Distances.Has(p) {
				continue
			}
			r := vw.Distances.Get(p).Radius()
			radii[v*du+u] = r
			if r > maxRadius {
				maxRadius = r
			}
		}
	}

	img := image.NewGray(image.Rect(0, 0, du, dv))
	for v := 0; v < dv; v++ {
		for u := 0; u < du; u++ {
			val := uint8(0)
			if maxRadius > 0 {
				val = uint8(255 * radii[v*du+u] / maxRadius)
			}
			img.SetGray(u, v, color.Gray{Y: val})
		}
	}
	return img, nil
}

// ExtractCenterlineSlice renders the pore mask with every centerline node
// whose coordinate falls in the slice plane highlighted in red.
func (vw *Viewer) ExtractCenterlineSlice(axis string, position int) (image.Image, error) {
	base, err := vw.ExtractPoreSlice(axis, position)
	if err != nil {
		return nil, err
	}
	du, dv := vw.planeDims(axis)
	img := image.NewRGBA(image.Rect(0, 0, du, dv))
	for v := 0; v < dv; v++ {
		for u := 0; u < du; u++ {
			g := base.(*image.Gray).GrayAt(u, v).Y
			img.SetRGBA(u, v, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}

	if vw.Centerlines != nil {
		for _, line := range vw.Centerlines.Lines {
			for _, node := range line.Nodes {
				u, v, onPlane := vw.projectOntoPlane(axis, position, node.Point)
				if onPlane {
					img.SetRGBA(u, v, color.RGBA{R: 255, A: 255})
				}
			}
		}
	}
	return img, nil
}

func (vw *Viewer) projectOntoPlane(axis string, position int, p voxel.Point) (u, v int, onPlane bool) {
	switch axis {
	case "x", "X":
		return p.Y, p.Z, p.X == position
	case "y", "Y":
		return p.X, p.Z, p.Y == position
	default:
		return p.X, p.Y, p.Z == position
	}
}

// SaveSlice writes img as a PNG to filename.
func (vw *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

// SliceKind names which ExtractXSlice method SaveSliceSequence calls.
type SliceKind string

const (
	KindPore       SliceKind = "pore"
	KindDistance   SliceKind = "distance"
	KindCenterline SliceKind = "centerline"
)

// SaveSliceSequence extracts and saves every slice of the given kind along
// axis into outputDir.
func (vw *Viewer) SaveSliceSequence(kind SliceKind, axis, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}
	extent, err := vw.axisExtent(axis)
	if err != nil {
		return err
	}

	for pos := 0; pos < extent; pos++ {
		var img image.Image
		var err error
		switch kind {
		case KindPore:
			img, err = vw.ExtractPoreSlice(axis, pos)
		case KindDistance:
			img, err = vw.ExtractDistanceSlice(axis, pos)
		case KindCenterline:
			img, err = vw.ExtractCenterlineSlice(axis, pos)
		default:
			return fmt.Errorf("visualization: invalid slice kind %q", kind)
		}
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%s_%03d.png", kind, axis, pos))
		if err := vw.SaveSlice(img, filename); err != nil {
			return err
		}
	}
	return nil
}
