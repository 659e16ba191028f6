// Package morphology computes the pore-network reductions that are
// reported alongside the centerline set but never consumed by it: the
// ternary pore/solid-surface/solid-bulk classification, fractal dimension
// via box counting, surface/volume fraction ratios, and the ASCII
// two-column plot files the external serializer writes from them.
package morphology

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"porenet/internal/voxel"
	"porenet/pkg/volume"
)

// Ternary classification values, distinct from volume.Solid/volume.Pore so
// a classified volume can't be mistaken for a binary mask.
const (
	ClassPore        byte = 1
	ClassSolidSurface byte = 2
	ClassSolidBulk    byte = 3
)

// Classify produces a ternary volume from v's binary mask: pore voxels
// keep their value, solid voxels adjacent to a pore become solid-surface,
// every other solid voxel becomes solid-bulk.
func Classify(v *volume.Volume) *volume.Volume {
	out := volume.New(v.NX, v.NY, v.NZ)
	var nbuf [26]voxel.Point
	v.All(func(p voxel.Point) {
		idx := v.Index(p)
		if v.Data[idx] == volume.Pore {
			out.Data[idx] = ClassPore
			return
		}
		for _, q := range p.Neighbours26(v.NX, v.NY, v.NZ, nbuf[:0]) {
			if v.At(q) == volume.Pore {
				out.Data[idx] = ClassSolidSurface
				return
			}
		}
		out.Data[idx] = ClassSolidBulk
	})
	return out
}

// Fractions returns the pore, solid-surface, and solid-bulk voxel
// fractions of a classified volume.
func Fractions(classified *volume.Volume) (pore, surface, bulk float64) {
	var nPore, nSurface, nBulk int
	for _, b := range classified.Data {
		switch b {
		case ClassPore:
			nPore++
		case ClassSolidSurface:
			nSurface++
		case ClassSolidBulk:
			nBulk++
		}
	}
	total := float64(len(classified.Data))
	return float64(nPore) / total, float64(nSurface) / total, float64(nBulk) / total
}

// FractalDimension estimates the box-counting fractal dimension of v's
// binary pore mask: the magnitude of the least-squares slope of
// log(box count) against log(1/box size), swept over box sizes that are
// powers of two not exceeding the smallest axis extent.
func FractalDimension(v *volume.Volume) float64 {
	maxPower := 0
	smallest := min3(v.NX, v.NY, v.NZ)
	for (1 << (maxPower + 1)) <= smallest {
		maxPower++
	}
	if maxPower == 0 {
		return 0
	}

	var logInvSize, logCount []float64
	for power := 1; power <= maxPower; power++ {
		size := 1 << power
		n := boxCount(v, size)
		if n == 0 {
			continue
		}
		logInvSize = append(logInvSize, math.Log(1/float64(size)))
		logCount = append(logCount, math.Log(float64(n)))
	}
	if len(logInvSize) < 2 {
		return 0
	}
	slope, _ := leastSquaresSlope(logInvSize, logCount)
	return slope
}

func boxCount(v *volume.Volume, size int) int {
	seen := make(map[[3]int]bool)
	v.All(func(p voxel.Point) {
		if v.At(p) != volume.Pore {
			return
		}
		key := [3]int{p.X / size, p.Y / size, p.Z / size}
		seen[key] = true
	})
	return len(seen)
}

func leastSquaresSlope(xs, ys []float64) (slope, intercept float64) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// WritePlot writes an ASCII two-column (x, y) file, one row per pair.
func WritePlot(path string, xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("morphology: WritePlot: mismatched column lengths %d and %d", len(xs), len(ys))
	}
	var b strings.Builder
	for i := range xs {
		b.WriteString(strconv.FormatFloat(xs[i], 'g', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(ys[i], 'g', -1, 64))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("morphology: writing %s: %w", path, err)
	}
	return nil
}
