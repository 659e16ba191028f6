// Package voxelgraph wraps a medial-axis annotation map in a graph
// interface: presence, adjacency, a memoised local-maximum predicate, and a
// mutable cluster-of-maxima label per vertex.
//
// Two storage flavours share one Graph contract: a hash-keyed graph
// favouring memory on sparse pore fractions, and a flat-indexed graph
// favouring lookup speed at the cost of O(N) space regardless of porosity.
// Vertices additionally implement gonum.org/v1/gonum/graph.Node so the
// graph type-checks against the wider gonum graph ecosystem, even though
// the centerline router's traversal is hand-written (see SPEC_FULL.md for why
// gonum's own shortest-path routines don't fit the gradient-biased cost
// function this system needs).
package voxelgraph

import (
	"fmt"

	"porenet/internal/voxel"
	"porenet/pkg/skeleton"
)

// vertexData is the mutable per-vertex state a Graph tracks beyond the
// annotation it was built from: the memoised local-maximum flag and the
// cluster-of-maxima label assigned during maxima discovery.
type vertexData struct {
	annotation  skeleton.Annotation
	present     bool
	localMaxSet bool
	localMax    bool
	clusterID   int64
}

// NoCluster is the sentinel "unset" cluster id.
const NoCluster int64 = -1

const noCluster = NoCluster

// Graph is the contract both storage flavours satisfy.
type Graph interface {
	// Has reports whether key names a vertex present in the graph.
	Has(key voxel.Point) bool
	// PropertyValue returns sqrt(distance) at key, the inscribed-sphere
	// radius. Panics if key is absent.
	PropertyValue(key voxel.Point) float64
	// Annotation returns the medial-axis annotation at key. Panics if key
	// is absent.
	Annotation(key voxel.Point) skeleton.Annotation
	// Neighbours returns the subset of key's 26-neighbour offsets that
	// are present vertices in this graph.
	Neighbours(key voxel.Point) []voxel.Point
	// IsLocalMax reports whether key has no face- or edge-connected
	// present neighbour (vertex-diagonal neighbours excluded) with a
	// strictly larger PropertyValue. Memoised after the first call.
	IsLocalMax(key voxel.Point) bool
	// SetIsLocalMax forces the memoised flag, letting a caller that has
	// already determined the answer skip recomputing it.
	SetIsLocalMax(key voxel.Point, val bool)
	// ClusterID returns the cluster-of-maxima label at key, or noCluster
	// if unset.
	ClusterID(key voxel.Point) int64
	// SetClusterID assigns key's cluster-of-maxima label.
	SetClusterID(key voxel.Point, id int64)
	// ForEach visits every present vertex in unspecified order.
	ForEach(fn func(key voxel.Point))
	// Len returns the number of present vertices.
	Len() int
	// ID returns a stable int64 identifier for key, satisfying
	// gonum.org/v1/gonum/graph.Node when paired with a Node wrapper.
	ID(key voxel.Point) int64
}

// Node adapts a (Graph, voxel.Point) pair to gonum.org/v1/gonum/graph.Node.
type Node struct {
	Graph Graph
	Point voxel.Point
}

// ID implements gonum.org/v1/gonum/graph.Node.
func (n Node) ID() int64 { return n.Graph.ID(n.Point) }

func computeLocalMax(g Graph, key voxel.Point) bool {
	own := g.PropertyValue(key)
	for _, off := range voxel.Offsets26 {
		if (voxel.Point{}).IsVertexNeighbour(off) {
			continue // vertex-diagonal neighbours don't count
		}
		q := key.Add(off)
		if !g.Has(q) {
			continue
		}
		if g.PropertyValue(q) > own {
			return false
		}
	}
	return true
}

func absentPanic(key voxel.Point) {
	panic(fmt.Sprintf("voxelgraph: absent vertex %v", key))
}
