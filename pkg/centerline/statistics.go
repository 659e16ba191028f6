package centerline

import (
	"math"

	"porenet/pkg/voxelgraph"
)

// Statistics are the per-line aggregates a Set keeps alongside each
// Centerline.
type Statistics struct {
	Size        float64
	Tortuosity  float64
	AvgProperty float64
}

// welfordMean is a numerically-stable one-pass running mean.
type welfordMean struct {
	n    int
	mean float64
}

func (w *welfordMean) add(x float64) {
	w.n++
	w.mean += (x - w.mean) / float64(w.n)
}

func computeStatistics(line Centerline, g voxelgraph.Graph) Statistics {
	if len(line.Nodes) == 0 {
		return Statistics{}
	}

	var size float64
	var mean welfordMean
	for i, n := range line.Nodes {
		mean.add(math.Sqrt(g.PropertyValue(n.Point)))
		if i == 0 {
			continue
		}
		prev := line.Nodes[i-1].Point
		size += math.Sqrt(float64(prev.SquaredDistance(n.Point)))
	}

	endpointDist := math.Sqrt(float64(line.Nodes[0].Point.SquaredDistance(line.Nodes[len(line.Nodes)-1].Point)))
	var tortuosity float64
	if endpointDist > 1e-9 {
		tortuosity = size/endpointDist - 1
	}

	return Statistics{Size: size, Tortuosity: tortuosity, AvgProperty: mean.mean}
}
