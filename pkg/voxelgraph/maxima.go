package voxelgraph

import "porenet/internal/voxel"

// LabelMaxima assigns each local-maximum vertex a cluster identifier such
// that two local maxima share a cluster iff they are face- or
// edge-connected (never vertex-diagonal) by a path of local maxima. It
// returns the number of clusters found.
//
// The sweep also sets IsLocalMax's memoised flag on every vertex it visits,
// true for flood members and false for everything else it rejects, so a
// caller never needs a second pass to know which vertices are maxima.
func LabelMaxima(g Graph) int {
	var clusterCount int64
	var queue []voxel.Point

	g.ForEach(func(p voxel.Point) {
		if g.ClusterID(p) != noCluster {
			return
		}
		if !g.IsLocalMax(p) {
			return
		}

		id := clusterCount
		clusterCount++

		queue = queue[:0]
		queue = append(queue, p)
		g.SetClusterID(p, id)

		for len(queue) > 0 {
			cur := queue[len(queue)-1]
			queue = queue[:len(queue)-1]

			for _, off := range voxel.Offsets26 {
				if (voxel.Point{}).IsVertexNeighbour(off) {
					continue
				}
				q := cur.Add(off)
				if !g.Has(q) {
					continue
				}
				if g.ClusterID(q) != noCluster {
					continue
				}
				if !g.IsLocalMax(q) {
					continue
				}
				g.SetClusterID(q, id)
				queue = append(queue, q)
			}
		}
	})

	return int(clusterCount)
}
