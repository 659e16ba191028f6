package centerline

import (
	"sort"

	"porenet/internal/voxel"
	"porenet/pkg/voxelgraph"
)

// Set holds an ordered collection of centerlines and their statistics, plus
// the bookkeeping needed to detect and split at branch points: voxels
// where two independently-routed paths converge.
type Set struct {
	graph        voxelgraph.Graph
	Lines        []Centerline
	Stats        []Statistics
	branchPoints map[voxel.Point]bool
}

// NewSet returns an empty Set over g.
func NewSet(g voxelgraph.Graph) *Set {
	return &Set{graph: g, branchPoints: make(map[voxel.Point]bool)}
}

// ExtractFromSource walks the predecessor tree built by the most recent
// Router.Route(source) call, once per reachable sink in sinks, appending a
// Centerline (and its Statistics) for each. Voxels are tracked per source:
// a walk that reaches a voxel already claimed by an earlier sink in this
// same call closes there and marks that voxel a branch point.
func (s *Set) ExtractFromSource(r *Router, sinks []voxel.Point) {
	used := make(map[voxel.Point]bool)

	for _, sink := range sinks {
		if !r.Reachable(sink) || used[sink] {
			continue
		}

		var nodes []Node
		cur := sink
		for {
			nodes = append(nodes, Node{Point: cur, Distance: r.Distance(cur)})
			pred, hasPred := r.Predecessor(cur)
			if !hasPred {
				used[cur] = true
				break
			}
			if used[pred] {
				used[cur] = true
				s.branchPoints[pred] = true
				nodes = append(nodes, Node{Point: pred, Distance: r.Distance(pred)})
				break
			}
			used[cur] = true
			cur = pred
		}

		reverseNodes(nodes)
		if len(nodes) < 2 {
			continue
		}
		line := Centerline{Nodes: nodes}
		s.Lines = append(s.Lines, line)
		s.Stats = append(s.Stats, computeStatistics(line, s.graph))
	}
}

// SplitByBranchPoints walks every stored line; wherever an internal node
// (neither the first nor the last) is a known branch point, it splits the
// line there — the branch point ends the head segment and also starts the
// tail segment, so both halves stay geometrically anchored to it — and
// recomputes statistics for every resulting line.
func (s *Set) SplitByBranchPoints() {
	for {
		splitAny := false
		var newLines []Centerline
		for _, line := range s.Lines {
			head, tail, ok := splitAtBranchPoint(line, s.branchPoints)
			if !ok {
				newLines = append(newLines, line)
				continue
			}
			splitAny = true
			newLines = append(newLines, head, tail)
		}
		s.Lines = newLines
		if !splitAny {
			break
		}
	}

	s.Stats = make([]Statistics, len(s.Lines))
	for i, line := range s.Lines {
		s.Stats[i] = computeStatistics(line, s.graph)
	}
}

func splitAtBranchPoint(line Centerline, branchPoints map[voxel.Point]bool) (head, tail Centerline, ok bool) {
	for i := 1; i < len(line.Nodes)-1; i++ {
		if branchPoints[line.Nodes[i].Point] {
			head = Centerline{Nodes: append([]Node{}, line.Nodes[:i+1]...)}
			tail = Centerline{Nodes: append([]Node{}, line.Nodes[i:]...)}
			return head, tail, true
		}
	}
	return Centerline{}, Centerline{}, false
}

// BranchPoints returns the set of voxels currently known to be branch
// points, for diagnostics and export.
func (s *Set) BranchPoints() []voxel.Point {
	out := make([]voxel.Point, 0, len(s.branchPoints))
	for p := range s.branchPoints {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LexLess(out[j]) })
	return out
}

// ridgeThinnessProperties are the five checks a reconstructed
// cycle-candidate ridge path must pass before it is accepted as a
// centerline. Each takes the full path (endpoints inclusive) and the graph
// it was built from.
var ridgeThinnessProperties = []func(path []voxel.Point, g voxelgraph.Graph) bool{
	noShortCircuitAcrossTriples,
	consecutiveVoxelsAdjacent,
	noNeighbourDominatesMiddleTriple,
	monotonicPropertyAlongRidge,
	noRepeatedVoxel,
}

// ValidateRidgePath reports whether path passes every thinness property a
// cycle-candidate ridge must satisfy to become a centerline.
func ValidateRidgePath(path []voxel.Point, g voxelgraph.Graph) bool {
	for _, check := range ridgeThinnessProperties {
		if !check(path, g) {
			return false
		}
	}
	return true
}

func noShortCircuitAcrossTriples(path []voxel.Point, _ voxelgraph.Graph) bool {
	for i := 0; i+2 < len(path); i++ {
		if path[i].IsNeighbour26(path[i+2]) {
			return false
		}
	}
	return true
}

func consecutiveVoxelsAdjacent(path []voxel.Point, _ voxelgraph.Graph) bool {
	for i := 0; i+1 < len(path); i++ {
		if !path[i].IsFaceNeighbour(path[i+1]) && !path[i].IsEdgeNeighbour(path[i+1]) {
			return false
		}
	}
	return true
}

func noNeighbourDominatesMiddleTriple(path []voxel.Point, g voxelgraph.Graph) bool {
	for i := 1; i+1 < len(path); i++ {
		mid := path[i]
		midProp := g.PropertyValue(mid)
		for _, off := range voxel.Offsets26 {
			n := mid.Add(off)
			if n == path[i-1] || n == path[i+1] || !g.Has(n) {
				continue
			}
			if g.PropertyValue(n) > midProp {
				return false
			}
		}
	}
	return true
}

func monotonicPropertyAlongRidge(path []voxel.Point, g voxelgraph.Graph) bool {
	if len(path) < 3 {
		return true
	}
	peak := 0
	for i, p := range path {
		if g.PropertyValue(p) > g.PropertyValue(path[peak]) {
			peak = i
		}
	}
	for i := 1; i <= peak; i++ {
		if g.PropertyValue(path[i])+1e-9 < g.PropertyValue(path[i-1]) {
			return false
		}
	}
	for i := peak + 1; i < len(path); i++ {
		if g.PropertyValue(path[i]) > g.PropertyValue(path[i-1])+1e-9 {
			return false
		}
	}
	return true
}

func noRepeatedVoxel(path []voxel.Point, _ voxelgraph.Graph) bool {
	seen := make(map[voxel.Point]bool, len(path))
	for _, p := range path {
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
