// Package cluster implements the connected-component labeler: a
// single-pass enhanced Hoshen-Kopelman sweep with union-find over labels,
// followed by a percolation filter that keeps only the pore clusters whose
// bounding box spans the entire sample.
//
// Label aliasing uses path compression on every lookup rather than a
// cross-call static cache, which keeps the alias table self-contained and
// safe to reuse across calls.
package cluster

import (
	"fmt"
	"sort"

	"porenet/internal/voxel"
	"porenet/pkg/volume"
)

// Result reports how many percolating clusters were found, for diagnostics.
type Result struct {
	PercolatingClusters int
	TotalClustersFound  int
}

// links holds the Hoshen-Kopelman alias/size table. link[l] > 0 is the live
// size of the proper cluster l; link[l] < 0 means l is an alias whose
// proper label is -link[l]. Index 0 is never used (0 means "solid").
type links struct {
	link  []int64
	boxes []volume.BoundingBox
}

func newLinks(capacity int) *links {
	return &links{
		link:  make([]int64, 1, capacity+1),
		boxes: make([]volume.BoundingBox, 1, capacity+1),
	}
}

func (l *links) alloc() int {
	l.link = append(l.link, 0)
	l.boxes = append(l.boxes, volume.BoundingBox{})
	return len(l.link) - 1
}

// proper walks the alias chain rooted at label and shortcuts it, returning
// the proper (non-aliased) label.
func (l *links) proper(label int) int {
	root := label
	for l.link[root] < 0 {
		root = int(-l.link[root])
	}
	for l.link[label] < 0 {
		next := int(-l.link[label])
		if next == root {
			break
		}
		l.link[label] = int64(-root)
		label = next
	}
	return root
}

// Label runs the enhanced Hoshen-Kopelman sweep, the consistency
// verification pass, and the percolation filter in place. On return, v's
// binary view holds 1 for every voxel belonging to a percolating cluster
// and 0 everywhere else.
func Label(v *volume.Volume) Result {
	labels := make([]int, v.N())
	l := newLinks(v.N()/4 + 16)

	var neighbourBuf [13]voxel.Point
	v.All(func(p voxel.Point) {
		if v.At(p) != volume.Pore {
			return
		}
		n := previousNeighbours(v, p, neighbourBuf[:0])
		proper := distinctProperLabels(l, labels, v, n)

		switch len(proper) {
		case 0:
			newLabel := l.alloc()
			l.link[newLabel] = 1
			l.boxes[newLabel].Extend(p)
			labels[v.Index(p)] = newLabel
		case 1:
			lbl := proper[0]
			l.link[lbl]++
			l.boxes[lbl].Extend(p)
			labels[v.Index(p)] = lbl
		default:
			mergeLabels(l, proper, p)
			labels[v.Index(p)] = proper[0]
		}
	})

	verify(v, labels, l)

	// Rewrite every labeled voxel to its proper label before sizing.
	v.All(func(p voxel.Point) {
		if v.At(p) == volume.Pore {
			labels[v.Index(p)] = l.proper(labels[v.Index(p)])
		}
	})

	percolating := percolatingLabels(l, v.NX, v.NY, v.NZ)

	total := 0
	for lbl := 1; lbl < len(l.link); lbl++ {
		if l.link[lbl] > 0 {
			total++
		}
	}

	v.All(func(p voxel.Point) {
		idx := v.Index(p)
		if v.Data[idx] != volume.Pore {
			return
		}
		if percolating[labels[idx]] {
			v.Data[idx] = volume.Pore
		} else {
			v.Data[idx] = volume.Solid
		}
	})

	return Result{PercolatingClusters: len(percolating), TotalClustersFound: total}
}

// previousNeighbours appends to dst the subset of p's 26-neighbours that
// were already swept (lexicographically smaller coordinates), boundary-safe.
func previousNeighbours(v *volume.Volume, p voxel.Point, dst []voxel.Point) []voxel.Point {
	for _, off := range voxel.Offsets26 {
		q := p.Add(off)
		if !v.InBounds(q) {
			continue
		}
		if q.LexLess(p) {
			dst = append(dst, q)
		}
	}
	return dst
}

// distinctProperLabels maps each neighbour to its proper label and returns
// the sorted set of distinct non-zero proper labels among pore neighbours.
func distinctProperLabels(l *links, labels []int, v *volume.Volume, neighbours []voxel.Point) []int {
	seen := map[int]struct{}{}
	for _, q := range neighbours {
		if v.At(q) != volume.Pore {
			continue
		}
		lbl := labels[v.Index(q)]
		if lbl == 0 {
			continue
		}
		seen[l.proper(lbl)] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for lbl := range seen {
		out = append(out, lbl)
	}
	sort.Ints(out)
	return out
}

// mergeLabels merges every label in proper (already sorted ascending) into
// the smallest one, which becomes proper[0] after the call.
func mergeLabels(l *links, proper []int, p voxel.Point) {
	winner := proper[0]
	l.boxes[winner].Extend(p)
	l.link[winner]++
	for _, other := range proper[1:] {
		l.link[winner] += l.link[other]
		l.boxes[winner].Merge(l.boxes[other])
		l.link[other] = int64(-winner)
		l.boxes[other] = volume.BoundingBox{}
	}
}

// verify asserts that every pore voxel's proper label agrees with all of its
// labeled 26-neighbours. A disagreement indicates a bug in the labeling
// sweep above, not a recoverable data condition, so it panics rather than
// returning an error.
func verify(v *volume.Volume, labels []int, l *links) {
	var buf [26]voxel.Point
	v.All(func(p voxel.Point) {
		if v.At(p) != volume.Pore {
			return
		}
		own := l.proper(labels[v.Index(p)])
		for _, q := range p.Neighbours26(v.NX, v.NY, v.NZ, buf[:0]) {
			if v.At(q) != volume.Pore {
				continue
			}
			other := l.proper(labels[v.Index(q)])
			if other != own {
				panic(fmt.Sprintf("cluster: consistency failure at %v: label %d disagrees with neighbour %v label %d", p, own, q, other))
			}
		}
	})
}

// percolatingLabels sorts clusters by size descending and walks the list,
// stopping at the first cluster whose bounding box does not span the cube —
// since the walk is largest-first, that cluster was the largest
// non-percolator, so the walk can stop then.
func percolatingLabels(l *links, nx, ny, nz int) map[int]bool {
	type sized struct {
		label int
		size  int64
	}
	var all []sized
	for lbl := 1; lbl < len(l.link); lbl++ {
		if l.link[lbl] > 0 {
			all = append(all, sized{lbl, l.link[lbl]})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].size > all[j].size })

	out := map[int]bool{}
	for _, c := range all {
		if !l.boxes[c.label].SpansVolume(nx, ny, nz) {
			break
		}
		out[c.label] = true
	}
	return out
}
