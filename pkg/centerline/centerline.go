package centerline

import "porenet/internal/voxel"

// Node is one point along an extracted centerline: its coordinate and a
// per-node distance. For lines extracted from a Route this is the router's
// cost at that point; for ridge lines built from cycle candidates it is the
// graph's PropertyValue (the radius) at that point.
type Node struct {
	Point    voxel.Point
	Distance float64
}

// Centerline is an ordered polyline from a source centerpoint toward a
// sink centerpoint (or a branch point where an earlier line already
// claimed the rest of the path).
type Centerline struct {
	Nodes []Node
}

func reverseNodes(nodes []Node) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}
