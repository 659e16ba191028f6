// Package gradientfield computes, on demand, the unit vector at a pore
// voxel that points toward the interior of the pore space, and the
// direction-alignment penalty the centerline router scores candidate steps
// with.
//
// Nothing here is cached: the router's frontier (which voxels count as
// "visited") changes every iteration, so a gradient computed for one
// candidate step is not reusable for the next.
package gradientfield

import (
	"gonum.org/v1/gonum/floats"

	"porenet/internal/voxel"
	"porenet/pkg/voxelgraph"
)

const normTolerance = 1e-5

// Visited reports whether p has already been popped from the router's
// priority queue (its frontier), and so should be excluded from a gradient
// sum.
type Visited func(p voxel.Point) bool

// Compute returns the unit vector at p pointing toward the pore interior:
// the sum, over every present 26-neighbour q that is not visited, of
// (q - p) scaled by q's distance annotation, normalised to unit length. If
// the accumulated vector's norm falls below tolerance, it returns the zero
// vector rather than dividing by a near-zero norm.
func Compute(g voxelgraph.Graph, p voxel.Point, visited Visited) [3]float64 {
	return accumulate(g, p, voxel.Point{X: -1, Y: -1, Z: -1}, visited, false)
}

// ComputeOnDemand repeats Compute's sum but excludes the neighbour named by
// ignore, and excludes vertex-diagonal (Manhattan distance 3) neighbours
// entirely — used when scoring a step against the gradient computed at a
// predecessor vertex.
func ComputeOnDemand(g voxelgraph.Graph, p, ignore voxel.Point, visited Visited) [3]float64 {
	return accumulate(g, p, ignore, visited, true)
}

func accumulate(g voxelgraph.Graph, p, ignore voxel.Point, visited Visited, excludeVertexDiagonal bool) [3]float64 {
	var sum [3]float64
	for _, off := range voxel.Offsets26 {
		if excludeVertexDiagonal && (voxel.Point{}).IsVertexNeighbour(off) {
			continue
		}
		q := p.Add(off)
		if q == ignore {
			continue
		}
		if !g.Has(q) {
			continue
		}
		if visited != nil && visited(q) {
			continue
		}
		d := float64(g.Annotation(q).Distance)
		sum[0] += float64(off.X) * d
		sum[1] += float64(off.Y) * d
		sum[2] += float64(off.Z) * d
	}

	norm := floats.Norm(sum[:], 2)
	if norm < normTolerance {
		return [3]float64{}
	}
	floats.Scale(1/norm, sum[:])
	return sum
}

// StepPenalty scores a step from p to q against gradient g: 1 minus the
// squared cosine of the angle between the step direction and g. Zero when
// the step is parallel or anti-parallel to g, one when perpendicular.
func StepPenalty(p, q voxel.Point, g [3]float64) float64 {
	dir := [3]float64{float64(q.X - p.X), float64(q.Y - p.Y), float64(q.Z - p.Z)}
	norm := floats.Norm(dir[:], 2)
	if norm < normTolerance {
		return 1
	}
	floats.Scale(1/norm, dir[:])
	dot := floats.Dot(dir[:], g[:])
	return 1 - dot*dot
}
