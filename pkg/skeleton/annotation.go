// Package skeleton implements the medial-axis extraction stage: an
// image-foresting transform that computes, for every pore voxel, the exact
// squared Euclidean distance to the nearest boundary (contour) voxel and
// the identity of the boundary voxel that owns it.
//
// The priority queue shape — a distance key, FIFO sequence tie-break, and a
// "removed" flag so a popped voxel is never relaxed again — mirrors a
// classic fast-marching pixel heap built on container/heap.
package skeleton

import (
	"math"

	"porenet/internal/voxel"
	"porenet/pkg/volume"
)

// Annotation is the per-pore-voxel record of the distance transform: its
// squared distance to the nearest boundary, the per-axis displacement to
// the boundary voxel that claimed it, and that boundary voxel's
// contour/pixel labels and coordinates.
//
// Local-maximum membership is not cached here; pkg/voxelgraph recomputes it
// on demand from PropertyValue comparisons and memoises it itself.
type Annotation struct {
	Distance      uint32
	Displacements [3]int32
	ContourLabel  uint32
	PixelLabel    uint32
	SeedPoint     voxel.Point
	removed       bool
	present       bool
}

// Map is a dense, linear-index-addressed table of Annotations, one slot per
// voxel in the volume it was built from. Only pore voxels are ever present.
type Map struct {
	NX, NY, NZ int
	entries    []Annotation
}

func newMap(v *volume.Volume) *Map {
	return &Map{NX: v.NX, NY: v.NY, NZ: v.NZ, entries: make([]Annotation, v.N())}
}

func (m *Map) index(p voxel.Point) int {
	return p.X + m.NX*p.Y + m.NX*m.NY*p.Z
}

// Has reports whether p has an annotation.
func (m *Map) Has(p voxel.Point) bool {
	return m.entries[m.index(p)].present
}

// Get returns p's annotation. Callers must guard with Has first; this
// panics rather than returning a zero value silently for an absent voxel.
func (m *Map) Get(p voxel.Point) Annotation {
	e := m.entries[m.index(p)]
	if !e.present {
		panic("skeleton: Get on a voxel with no annotation")
	}
	return e
}

func (m *Map) set(p voxel.Point, a Annotation) {
	a.present = true
	m.entries[m.index(p)] = a
}

// Radius returns sqrt(distance), the inscribed-sphere radius at p, which
// pkg/voxelgraph exposes as each vertex's PropertyValue.
func (a Annotation) Radius() float64 {
	return math.Sqrt(float64(a.Distance))
}
