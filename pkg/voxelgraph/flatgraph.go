package voxelgraph

import (
	"porenet/internal/voxel"
	"porenet/pkg/skeleton"
)

// FlatGraph stores vertex data in a dense, linear-index-addressed slice
// sized to the whole volume. It trades O(N) space regardless of porosity
// for allocation-free, branch-light lookups — the flavour to pick once the
// percolating pore fraction is high enough that HashGraph's map overhead
// stops paying for itself.
type FlatGraph struct {
	nx, ny, nz int
	entries    []vertexData
}

// NewFlatGraph builds a FlatGraph from every voxel present in m.
func NewFlatGraph(m *skeleton.Map) *FlatGraph {
	g := &FlatGraph{nx: m.NX, ny: m.NY, nz: m.NZ, entries: make([]vertexData, m.NX*m.NY*m.NZ)}
	for z := 0; z < m.NZ; z++ {
		for y := 0; y < m.NY; y++ {
			for x := 0; x < m.NX; x++ {
				p := voxel.Point{X: x, Y: y, Z: z}
				if !m.Has(p) {
					continue
				}
				g.entries[g.index(p)] = vertexData{annotation: m.Get(p), present: true, clusterID: noCluster}
			}
		}
	}
	return g
}

func (g *FlatGraph) index(p voxel.Point) int {
	return p.X + g.nx*p.Y + g.nx*g.ny*p.Z
}

func (g *FlatGraph) inBounds(p voxel.Point) bool {
	return p.InBounds(g.nx, g.ny, g.nz)
}

func (g *FlatGraph) data(key voxel.Point) *vertexData {
	if !g.inBounds(key) {
		absentPanic(key)
	}
	d := &g.entries[g.index(key)]
	if !d.present {
		absentPanic(key)
	}
	return d
}

func (g *FlatGraph) Has(key voxel.Point) bool {
	return g.inBounds(key) && g.entries[g.index(key)].present
}

func (g *FlatGraph) PropertyValue(key voxel.Point) float64 {
	return g.data(key).annotation.Radius()
}

func (g *FlatGraph) Annotation(key voxel.Point) skeleton.Annotation {
	return g.data(key).annotation
}

func (g *FlatGraph) Neighbours(key voxel.Point) []voxel.Point {
	var out []voxel.Point
	for _, off := range voxel.Offsets26 {
		q := key.Add(off)
		if g.Has(q) {
			out = append(out, q)
		}
	}
	return out
}

func (g *FlatGraph) IsLocalMax(key voxel.Point) bool {
	d := g.data(key)
	if !d.localMaxSet {
		d.localMax = computeLocalMax(g, key)
		d.localMaxSet = true
	}
	return d.localMax
}

func (g *FlatGraph) SetIsLocalMax(key voxel.Point, val bool) {
	d := g.data(key)
	d.localMax, d.localMaxSet = val, true
}

func (g *FlatGraph) ClusterID(key voxel.Point) int64 { return g.data(key).clusterID }

func (g *FlatGraph) SetClusterID(key voxel.Point, id int64) { g.data(key).clusterID = id }

func (g *FlatGraph) ForEach(fn func(key voxel.Point)) {
	for z := 0; z < g.nz; z++ {
		for y := 0; y < g.ny; y++ {
			for x := 0; x < g.nx; x++ {
				p := voxel.Point{X: x, Y: y, Z: z}
				if g.entries[g.index(p)].present {
					fn(p)
				}
			}
		}
	}
}

func (g *FlatGraph) Len() int {
	n := 0
	for i := range g.entries {
		if g.entries[i].present {
			n++
		}
	}
	return n
}

func (g *FlatGraph) ID(key voxel.Point) int64 { return int64(g.index(key)) }
