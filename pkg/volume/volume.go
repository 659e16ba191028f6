// Package volume implements the dense 3D byte array that flows through the
// early pipeline stages: grayscale input, binary pore/solid mask, and —
// after the morphology reductions — the ternary pore/solid-surface/
// solid-bulk classification. The core algorithms only ever read the binary
// view.
package volume

import (
	"fmt"

	"porenet/internal/voxel"
)

// Values the binary view of a Volume may take.
const (
	Solid byte = 0
	Pore  byte = 1
)

// Volume is a dense x-fastest, then-y, then-z byte cube.
type Volume struct {
	NX, NY, NZ int
	Data       []byte
}

// New allocates a zeroed volume of the given extents.
func New(nx, ny, nz int) *Volume {
	return &Volume{NX: nx, NY: ny, NZ: nz, Data: make([]byte, nx*ny*nz)}
}

// NewFromBytes wraps an existing flat byte slice as a volume. The slice
// length must equal nx*ny*nz.
func NewFromBytes(nx, ny, nz int, data []byte) (*Volume, error) {
	if len(data) != nx*ny*nz {
		return nil, fmt.Errorf("volume: data length %d does not match shape %d*%d*%d=%d",
			len(data), nx, ny, nz, nx*ny*nz)
	}
	return &Volume{NX: nx, NY: ny, NZ: nz, Data: data}, nil
}

// N returns the total number of voxels in the cube.
func (v *Volume) N() int {
	return v.NX * v.NY * v.NZ
}

// Index linearises a voxel coordinate, x-fastest.
func (v *Volume) Index(p voxel.Point) int {
	return p.X + v.NX*p.Y + v.NX*v.NY*p.Z
}

// At returns the byte value stored at p. Callers must ensure p is in bounds.
func (v *Volume) At(p voxel.Point) byte {
	return v.Data[v.Index(p)]
}

// Set stores val at p.
func (v *Volume) Set(p voxel.Point, val byte) {
	v.Data[v.Index(p)] = val
}

// InBounds reports whether p lies within the volume.
func (v *Volume) InBounds(p voxel.Point) bool {
	return p.InBounds(v.NX, v.NY, v.NZ)
}

// IsPore reports whether p is in bounds and marked pore (binary view).
func (v *Volume) IsPore(p voxel.Point) bool {
	return v.InBounds(p) && v.At(p) == Pore
}

// All calls fn for every voxel coordinate in lexicographic sweep order
// (x fastest, then y, then z), the order every deterministic sweep in this
// module relies on.
func (v *Volume) All(fn func(p voxel.Point)) {
	for z := 0; z < v.NZ; z++ {
		for y := 0; y < v.NY; y++ {
			for x := 0; x < v.NX; x++ {
				fn(voxel.Point{X: x, Y: y, Z: z})
			}
		}
	}
}

// BoundingBox tracks the inclusive extents of a set of voxels.
type BoundingBox struct {
	Min, Max voxel.Point
	Defined  bool
}

// Extend grows the bounding box to include p.
func (b *BoundingBox) Extend(p voxel.Point) {
	if !b.Defined {
		b.Min, b.Max, b.Defined = p, p, true
		return
	}
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}

// Merge extends b to also cover o.
func (b *BoundingBox) Merge(o BoundingBox) {
	if !o.Defined {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// SpansVolume reports whether the bounding box's extents, taken inclusive,
// span every axis of an nx×ny×nz cube. A cluster whose bounding box spans
// the cube touches every outer face pair and is therefore percolating.
func (b BoundingBox) SpansVolume(nx, ny, nz int) bool {
	if !b.Defined {
		return false
	}
	ex := int64(b.Max.X-b.Min.X+1) * int64(b.Max.Y-b.Min.Y+1) * int64(b.Max.Z-b.Min.Z+1)
	return ex == int64(nx)*int64(ny)*int64(nz)
}

// FaceDirection names one of the six outer faces of the cube.
type FaceDirection int

const (
	FaceXMin FaceDirection = iota
	FaceXMax
	FaceYMin
	FaceYMax
	FaceZMin
	FaceZMax
)

// Faces lists all six outer faces in a fixed order.
var Faces = [6]FaceDirection{FaceXMin, FaceXMax, FaceYMin, FaceYMax, FaceZMin, FaceZMax}

// Opposite returns the face on the opposite side of the cube.
func (f FaceDirection) Opposite() FaceDirection {
	switch f {
	case FaceXMin:
		return FaceXMax
	case FaceXMax:
		return FaceXMin
	case FaceYMin:
		return FaceYMax
	case FaceYMax:
		return FaceYMin
	case FaceZMin:
		return FaceZMax
	default:
		return FaceZMin
	}
}

// String returns a short lowercase name ("x-", "x+", ...).
func (f FaceDirection) String() string {
	switch f {
	case FaceXMin:
		return "x-"
	case FaceXMax:
		return "x+"
	case FaceYMin:
		return "y-"
	case FaceYMax:
		return "y+"
	case FaceZMin:
		return "z-"
	default:
		return "z+"
	}
}

// FaceVoxels returns every voxel coordinate lying on the given outer face.
func (v *Volume) FaceVoxels(f FaceDirection) []voxel.Point {
	var pts []voxel.Point
	switch f {
	case FaceXMin, FaceXMax:
		x := 0
		if f == FaceXMax {
			x = v.NX - 1
		}
		for z := 0; z < v.NZ; z++ {
			for y := 0; y < v.NY; y++ {
				pts = append(pts, voxel.Point{X: x, Y: y, Z: z})
			}
		}
	case FaceYMin, FaceYMax:
		y := 0
		if f == FaceYMax {
			y = v.NY - 1
		}
		for z := 0; z < v.NZ; z++ {
			for x := 0; x < v.NX; x++ {
				pts = append(pts, voxel.Point{X: x, Y: y, Z: z})
			}
		}
	default:
		z := 0
		if f == FaceZMax {
			z = v.NZ - 1
		}
		for y := 0; y < v.NY; y++ {
			for x := 0; x < v.NX; x++ {
				pts = append(pts, voxel.Point{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}

// InPlaneNeighbours returns the up-to-8 neighbours of p that also lie on
// face f, used by the centerpoint discoverer's in-plane BFS.
func (v *Volume) InPlaneNeighbours(p voxel.Point, f FaceDirection) []voxel.Point {
	var out []voxel.Point
	for _, off := range voxel.Offsets26 {
		q := p.Add(off)
		if !v.InBounds(q) {
			continue
		}
		switch f {
		case FaceXMin, FaceXMax:
			if off.X != 0 {
				continue
			}
		case FaceYMin, FaceYMax:
			if off.Y != 0 {
				continue
			}
		default:
			if off.Z != 0 {
				continue
			}
		}
		out = append(out, q)
	}
	return out
}
