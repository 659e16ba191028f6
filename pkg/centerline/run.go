package centerline

import (
	"porenet/internal/voxel"
	"porenet/pkg/volume"
	"porenet/pkg/voxelgraph"
)

// axisSourceFaces names, for each of the cube's three axes, the face whose
// centerpoints act as routing sources; every other face's centerpoints are
// the sink set for that run.
var axisSourceFaces = [3]volume.FaceDirection{volume.FaceXMin, volume.FaceYMin, volume.FaceZMin}

// RunDefault routes from every axis's designated source face to the
// centerpoints of every other face, once per axis, and returns the
// resulting Set after branch splitting and cycle-candidate ridge
// reconstruction.
func RunDefault(vol *volume.Volume, g voxelgraph.Graph) *Set {
	set := NewSet(g)
	router := NewRouter(g)

	allFaceCenterpoints := make(map[volume.FaceDirection][]voxel.Point, 6)
	for _, f := range volume.Faces {
		allFaceCenterpoints[f] = DiscoverCenterpoints(vol, g, f)
	}

	for _, sourceFace := range axisSourceFaces {
		var sinks []voxel.Point
		for _, f := range volume.Faces {
			if f == sourceFace {
				continue
			}
			sinks = append(sinks, allFaceCenterpoints[f]...)
		}

		var allCycles []CycleCandidate
		for _, source := range allFaceCenterpoints[sourceFace] {
			cycles := router.Route(source)
			allCycles = append(allCycles, cycles...)
			set.ExtractFromSource(router, sinks)
		}
		appendValidRidgeLines(set, g, allCycles)
	}

	set.SplitByBranchPoints()
	return set
}

func appendValidRidgeLines(set *Set, g voxelgraph.Graph, cycles []CycleCandidate) {
	for _, c := range cycles {
		climbA := climbToLocalMax(g, c.A)
		climbB := climbToLocalMax(g, c.B)

		ridge := make([]voxel.Point, 0, len(climbA)+len(climbB))
		for i := len(climbA) - 1; i >= 0; i-- {
			ridge = append(ridge, climbA[i])
		}
		ridge = append(ridge, climbB...)

		if !ValidateRidgePath(ridge, g) {
			continue
		}

		nodes := make([]Node, len(ridge))
		for i, p := range ridge {
			nodes[i] = Node{Point: p, Distance: g.PropertyValue(p)}
		}
		line := Centerline{Nodes: nodes}
		set.Lines = append(set.Lines, line)
		set.Stats = append(set.Stats, computeStatistics(line, g))
	}
}

// climbToLocalMax greedily ascends from start to the nearest local-maximum
// voxel by always stepping to the present neighbour with the strictly
// largest property value, returning the full walked path including start
// and the local max it terminates at.
func climbToLocalMax(g voxelgraph.Graph, start voxel.Point) []voxel.Point {
	path := []voxel.Point{start}
	visited := map[voxel.Point]bool{start: true}
	cur := start

	for !g.IsLocalMax(cur) {
		best := cur
		bestVal := g.PropertyValue(cur)
		for _, n := range g.Neighbours(cur) {
			if val := g.PropertyValue(n); val > bestVal {
				best, bestVal = n, val
			}
		}
		if best == cur || visited[best] {
			break
		}
		cur = best
		path = append(path, cur)
		visited[cur] = true
	}
	return path
}
