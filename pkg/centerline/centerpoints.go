// Package centerline implements the gradient-biased Dijkstra router and
// the aggregate centerline set: endpoint discovery on the cube's outer
// faces, shortest-path routing from inlet to outlet centerpoints, branch
// splitting, and per-line statistics.
package centerline

import (
	"porenet/internal/voxel"
	"porenet/pkg/volume"
	"porenet/pkg/voxelgraph"
)

// DiscoverCenterpoints partitions the pore voxels on face f into
// connected components under the face's in-plane neighbourhood, and
// returns one voxel per component: the one with the largest
// inscribed-sphere radius. These are the candidate inlet/outlet points for
// the router.
func DiscoverCenterpoints(vol *volume.Volume, g voxelgraph.Graph, f volume.FaceDirection) []voxel.Point {
	faceVoxels := vol.FaceVoxels(f)
	visited := make(map[voxel.Point]bool, len(faceVoxels))
	var out []voxel.Point

	for _, p := range faceVoxels {
		if visited[p] || !g.Has(p) {
			continue
		}
		comp := floodComponent(vol, g, f, p, visited)

		best := comp[0]
		bestVal := g.PropertyValue(best)
		for _, c := range comp[1:] {
			if val := g.PropertyValue(c); val > bestVal {
				best, bestVal = c, val
			}
		}
		out = append(out, best)
	}
	return out
}

func floodComponent(vol *volume.Volume, g voxelgraph.Graph, f volume.FaceDirection, start voxel.Point, visited map[voxel.Point]bool) []voxel.Point {
	queue := []voxel.Point{start}
	visited[start] = true
	var comp []voxel.Point

	for len(queue) > 0 {
		cur := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		comp = append(comp, cur)

		for _, q := range vol.InPlaneNeighbours(cur, f) {
			if visited[q] || !g.Has(q) {
				continue
			}
			visited[q] = true
			queue = append(queue, q)
		}
	}
	return comp
}
