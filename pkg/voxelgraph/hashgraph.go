package voxelgraph

import (
	"porenet/internal/voxel"
	"porenet/pkg/skeleton"
)

// HashGraph stores vertex data in a map keyed by coordinate. It favours low
// memory on volumes where the percolating pore fraction is small, at the
// cost of a hash lookup per access.
type HashGraph struct {
	nx, ny, nz int
	vertices   map[voxel.Point]*vertexData
	ids        map[voxel.Point]int64
	nextID     int64
}

// NewHashGraph builds a HashGraph from every voxel present in m.
func NewHashGraph(m *skeleton.Map) *HashGraph {
	g := &HashGraph{
		nx:       m.NX,
		ny:       m.NY,
		nz:       m.NZ,
		vertices: make(map[voxel.Point]*vertexData),
		ids:      make(map[voxel.Point]int64),
	}
	for z := 0; z < m.NZ; z++ {
		for y := 0; y < m.NY; y++ {
			for x := 0; x < m.NX; x++ {
				p := voxel.Point{X: x, Y: y, Z: z}
				if !m.Has(p) {
					continue
				}
				g.vertices[p] = &vertexData{annotation: m.Get(p), present: true, clusterID: noCluster}
			}
		}
	}
	return g
}

func (g *HashGraph) data(key voxel.Point) *vertexData {
	d, ok := g.vertices[key]
	if !ok {
		absentPanic(key)
	}
	return d
}

func (g *HashGraph) Has(key voxel.Point) bool { return g.vertices[key] != nil }

func (g *HashGraph) PropertyValue(key voxel.Point) float64 {
	return g.data(key).annotation.Radius()
}

func (g *HashGraph) Annotation(key voxel.Point) skeleton.Annotation {
	return g.data(key).annotation
}

func (g *HashGraph) Neighbours(key voxel.Point) []voxel.Point {
	var out []voxel.Point
	for _, off := range voxel.Offsets26 {
		q := key.Add(off)
		if g.vertices[q] != nil {
			out = append(out, q)
		}
	}
	return out
}

func (g *HashGraph) IsLocalMax(key voxel.Point) bool {
	d := g.data(key)
	if !d.localMaxSet {
		d.localMax = computeLocalMax(g, key)
		d.localMaxSet = true
	}
	return d.localMax
}

func (g *HashGraph) SetIsLocalMax(key voxel.Point, val bool) {
	d := g.data(key)
	d.localMax, d.localMaxSet = val, true
}

func (g *HashGraph) ClusterID(key voxel.Point) int64 { return g.data(key).clusterID }

func (g *HashGraph) SetClusterID(key voxel.Point, id int64) { g.data(key).clusterID = id }

func (g *HashGraph) ForEach(fn func(key voxel.Point)) {
	for k := range g.vertices {
		fn(k)
	}
}

func (g *HashGraph) Len() int { return len(g.vertices) }

func (g *HashGraph) ID(key voxel.Point) int64 {
	if id, ok := g.ids[key]; ok {
		return id
	}
	id := g.nextID
	g.ids[key] = id
	g.nextID++
	return id
}
