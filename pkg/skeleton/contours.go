package skeleton

import (
	"porenet/internal/voxel"
	"porenet/pkg/volume"
)

// isContour reports whether p is a pore voxel with at least one 26-neighbour
// that is not a pore voxel, counting off-cube neighbours as "not a pore
// voxel".
func isContour(v *volume.Volume, p voxel.Point) bool {
	if !v.IsPore(p) {
		return false
	}
	for _, off := range voxel.Offsets26 {
		q := p.Add(off)
		if !v.IsPore(q) {
			return true
		}
	}
	return false
}

// labelContours partitions contour voxels into 26-connected components via
// flood fill in sweep order, assigning each component a 1-based
// contour_label and each voxel within it a 1-based pixel_label in the
// order the flood fill visits it.
func labelContours(v *volume.Volume, m *Map) []voxel.Point {
	visited := make([]bool, v.N())
	var seeds []voxel.Point
	var contourLabel uint32
	var stack []voxel.Point
	var nbuf [26]voxel.Point

	v.All(func(p voxel.Point) {
		idx := v.Index(p)
		if visited[idx] || !isContour(v, p) {
			return
		}
		contourLabel++
		var pixelLabel uint32

		stack = stack[:0]
		stack = append(stack, p)
		visited[idx] = true

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			pixelLabel++
			m.set(cur, Annotation{
				Distance:     0,
				ContourLabel: contourLabel,
				PixelLabel:   pixelLabel,
				SeedPoint:    cur,
			})
			seeds = append(seeds, cur)

			for _, q := range cur.Neighbours26(v.NX, v.NY, v.NZ, nbuf[:0]) {
				qi := v.Index(q)
				if visited[qi] || !isContour(v, q) {
					continue
				}
				visited[qi] = true
				stack = append(stack, q)
			}
		}
	})
	return seeds
}
