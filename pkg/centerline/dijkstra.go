package centerline

import (
	"math"

	"porenet/internal/voxel"
	"porenet/pkg/binheap"
	"porenet/pkg/gradientfield"
	"porenet/pkg/voxelgraph"
)

// sourceCluster is the cluster-of-path id assigned to a routing source that
// is not itself part of any maxima cluster — distinct from both real
// cluster ids (which start at 0) and voxelgraph.NoCluster.
const sourceCluster int64 = -2

// CycleCandidate is a pair of vertices where the frontier closed a loop
// between two path clusters — a candidate for a ridge-spanning centerline
// that bridges two maxima plateaus.
type CycleCandidate struct {
	A, B voxel.Point
}

type pathState struct {
	distance       float64
	accPenalty     float64
	accDistance    float64
	predecessor    voxel.Point
	hasPredecessor bool
	removed        bool
	clusterOfPath  int64
}

// Router runs one gradient-biased Dijkstra expansion at a time over a
// voxelgraph.Graph. A Router is reused across sources; each Route call
// resets its internal state.
type Router struct {
	graph voxelgraph.Graph
	state map[voxel.Point]*pathState
	seq   uint64
}

// NewRouter returns a Router over g.
func NewRouter(g voxelgraph.Graph) *Router {
	return &Router{graph: g, state: make(map[voxel.Point]*pathState)}
}

func (r *Router) isVisited(p voxel.Point) bool {
	s, ok := r.state[p]
	return ok && s.removed
}

// Route runs Dijkstra from source and returns every cycle candidate
// discovered during the expansion. Reachability and path geometry for any
// sink are read afterwards via Predecessor/Distance/ClusterOfPath.
func (r *Router) Route(source voxel.Point) []CycleCandidate {
	r.state = make(map[voxel.Point]*pathState)
	r.seq = 0

	queue := binheap.New[voxel.Point]()
	handles := make(map[voxel.Point]*binheap.Handle[voxel.Point])
	visitedPairs := make(map[[2]int64]bool)
	var cycles []CycleCandidate

	initialCluster := r.graph.ClusterID(source)
	if initialCluster == voxelgraph.NoCluster {
		initialCluster = sourceCluster
	}
	r.state[source] = &pathState{clusterOfPath: initialCluster}
	handles[source] = queue.Insert(binheap.Key{Seq: r.seq}, source)
	r.seq++

	for !queue.IsEmpty() {
		_, v := queue.RemoveMin()
		delete(handles, v)
		vs := r.state[v]
		vs.removed = true

		vIsMax := r.graph.IsLocalMax(v)
		gv := gradientfield.Compute(r.graph, v, r.isVisited)

		var pred voxel.Point
		hasPred := vs.hasPredecessor
		if hasPred {
			pred = vs.predecessor
		}

		for _, u := range r.graph.Neighbours(v) {
			if (voxel.Point{}).IsVertexNeighbour(u.Sub(v)) {
				continue
			}
			if hasPred && !vIsMax && r.dominatedByRidgeNeighbour(v, u, pred) {
				continue
			}
			if hasPred && vIsMax && pred.IsFaceNeighbour(u) {
				continue
			}

			weight := 1 / (1 + r.graph.PropertyValue(u))
			uIsMax := r.graph.IsLocalMax(u)

			var newPriority, candAccPen float64
			if !vIsMax {
				guIgnoringV := gradientfield.ComputeOnDemand(r.graph, u, v, r.isVisited)
				stepPen := gradientfield.StepPenalty(v, u, gv) + gradientfield.StepPenalty(v, u, guIgnoringV)
				candAccPen = 0.5 + stepPen*weight + weight
				newPriority = 1 + vs.accPenalty + candAccPen + 1000*weight
			} else {
				directionPenalty := 0.5
				if hasPred {
					o1, o2 := pred.Sub(v), u.Sub(v)
					if o1.Add(o2) == (voxel.Point{}) {
						directionPenalty = 0
					}
				}
				stepPen := 0.0
				if !uIsMax {
					guIgnoringV := gradientfield.ComputeOnDemand(r.graph, u, v, r.isVisited)
					stepPen += gradientfield.StepPenalty(v, u, guIgnoringV)
				}
				stepPen += math.Sqrt(float64(v.SquaredDistance(u)))
				candAccPen = directionPenalty*weight + stepPen*weight + weight
				newPriority = vs.accPenalty + candAccPen + 1000*weight
			}
			candAccDist := vs.accDistance + weight

			us, known := r.state[u]
			if known && us.removed {
				pairKey := orderedPair(vs.clusterOfPath, us.clusterOfPath)
				if !visitedPairs[pairKey] {
					gvIgnoringU := gradientfield.ComputeOnDemand(r.graph, v, u, r.isVisited)
					if gradientfield.StepPenalty(v, u, gvIgnoringU) < 0.1 {
						visitedPairs[pairKey] = true
						cycles = append(cycles, CycleCandidate{A: v, B: u})
					}
				}
				continue
			}

			if known && newPriority >= us.distance {
				continue
			}

			newCluster := vs.clusterOfPath
			if cid := r.graph.ClusterID(u); cid != voxelgraph.NoCluster {
				newCluster = cid
			}
			if !known {
				us = &pathState{}
				r.state[u] = us
			}
			us.distance = newPriority
			us.accPenalty = candAccPen
			us.accDistance = candAccDist
			us.predecessor = v
			us.hasPredecessor = true
			us.clusterOfPath = newCluster

			key := binheap.Key{Primary: newPriority, Secondary: candAccPen, Seq: r.seq}
			r.seq++
			if h, ok := handles[u]; ok {
				queue.DecreasePriority(h, key)
			} else {
				handles[u] = queue.Insert(key, u)
			}
		}
	}
	return cycles
}

// dominatedByRidgeNeighbour reports whether some other neighbour of v sits
// geometrically between v and (pred or u) and carries a strictly larger
// property value than v — the locally-convex-ridge test that keeps a
// non-local-max vertex's path from cutting across a deeper neighbour.
func (r *Router) dominatedByRidgeNeighbour(v, u, pred voxel.Point) bool {
	baseline := math.Sqrt(float64(pred.SquaredDistance(u)))
	vProp := r.graph.PropertyValue(v)
	for _, n := range r.graph.Neighbours(v) {
		if n == u {
			continue
		}
		toPred := math.Sqrt(float64(n.SquaredDistance(pred)))
		toU := math.Sqrt(float64(n.SquaredDistance(u)))
		if (toPred < baseline || toU < baseline) && r.graph.PropertyValue(n) > vProp {
			return true
		}
	}
	return false
}

func orderedPair(a, b int64) [2]int64 {
	if a <= b {
		return [2]int64{a, b}
	}
	return [2]int64{b, a}
}

// Reachable reports whether p was reached during the last Route call.
func (r *Router) Reachable(p voxel.Point) bool {
	_, ok := r.state[p]
	return ok
}

// Predecessor returns p's predecessor in the shortest-path tree built by
// the last Route call.
func (r *Router) Predecessor(p voxel.Point) (voxel.Point, bool) {
	s, ok := r.state[p]
	if !ok {
		return voxel.Point{}, false
	}
	return s.predecessor, s.hasPredecessor
}

// Distance returns p's final priority (not a physical distance, but the
// router's internal cost) from the last Route call.
func (r *Router) Distance(p voxel.Point) float64 {
	s, ok := r.state[p]
	if !ok {
		return math.Inf(1)
	}
	return s.distance
}

// ClusterOfPath returns the cluster-of-path label p inherited during the
// last Route call.
func (r *Router) ClusterOfPath(p voxel.Point) int64 {
	s, ok := r.state[p]
	if !ok {
		return voxelgraph.NoCluster
	}
	return s.clusterOfPath
}
