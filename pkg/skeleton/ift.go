package skeleton

import (
	"math"

	"porenet/internal/voxel"
	"porenet/pkg/binheap"
	"porenet/pkg/volume"
)

// Run computes the exact squared-Euclidean distance transform of the pore
// mask via an image-foresting transform: every contour voxel is a
// zero-distance seed, and the main loop relaxes 26-neighbours with an
// exact accumulated per-axis displacement, never a chamfer approximation.
//
// An empty pore mask yields an empty (all-absent) Map — a legitimate empty
// result, not an error.
func Run(v *volume.Volume) *Map {
	m := newMap(v)
	seeds := labelContours(v, m)

	type handlePayload = voxel.Point
	queue := binheap.New[handlePayload]()
	handles := make(map[voxel.Point]*binheap.Handle[handlePayload], len(seeds))

	var seq uint64
	for _, s := range seeds {
		h := queue.Insert(binheap.Key{Primary: 0, Seq: seq}, s)
		handles[s] = h
		seq++
	}

	var nbuf [26]voxel.Point
	for !queue.IsEmpty() {
		_, vp := queue.RemoveMin()
		delete(handles, vp)

		vAnn := m.Get(vp)
		markRemoved(m, vp)

		for _, up := range vp.Neighbours26(v.NX, v.NY, v.NZ, nbuf[:0]) {
			if v.At(up) != volume.Pore {
				continue
			}
			if isRemoved(m, up) {
				continue
			}

			var disp [3]int32
			disp[0] = vAnn.Displacements[0] + absInt32(int32(up.X-vp.X))
			disp[1] = vAnn.Displacements[1] + absInt32(int32(up.Y-vp.Y))
			disp[2] = vAnn.Displacements[2] + absInt32(int32(up.Z-vp.Z))
			dNew := uint32(int64(disp[0])*int64(disp[0]) + int64(disp[1])*int64(disp[1]) + int64(disp[2])*int64(disp[2]))

			uHasAnnotation := m.Has(up)
			var uAnn Annotation
			if uHasAnnotation {
				uAnn = m.Get(up)
			} else {
				uAnn = Annotation{Distance: math.MaxUint32}
			}

			if dNew < uAnn.Distance {
				uAnn.Distance = dNew
				uAnn.Displacements = disp
				uAnn.ContourLabel = vAnn.ContourLabel
				uAnn.PixelLabel = vAnn.PixelLabel
				uAnn.SeedPoint = vAnn.SeedPoint
				m.set(up, uAnn)

				key := binheap.Key{Primary: float64(dNew), Seq: seq}
				seq++
				if h, ok := handles[up]; ok {
					queue.DecreasePriority(h, key)
				} else {
					h := queue.Insert(key, up)
					handles[up] = h
				}
			}
		}
	}
	return m
}

func markRemoved(m *Map, p voxel.Point) {
	e := m.entries[m.index(p)]
	e.removed = true
	m.entries[m.index(p)] = e
}

func isRemoved(m *Map, p voxel.Point) bool {
	return m.entries[m.index(p)].removed
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
