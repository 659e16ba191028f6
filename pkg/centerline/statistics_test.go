package centerline

import (
	"math"
	"testing"

	"porenet/internal/voxel"
	"porenet/pkg/skeleton"
	"porenet/pkg/volume"
	"porenet/pkg/voxelgraph"
)

func TestComputeStatistics_StraightLineHasZeroTortuosity(t *testing.T) {
	v := volume.New(1, 1, 5)
	for i := range v.Data {
		v.Data[i] = volume.Pore
	}
	g := voxelgraph.NewHashGraph(skeleton.Run(v))

	line := Centerline{Nodes: []Node{
		{Point: voxel.Point{X: 0, Y: 0, Z: 0}},
		{Point: voxel.Point{X: 0, Y: 0, Z: 1}},
		{Point: voxel.Point{X: 0, Y: 0, Z: 2}},
		{Point: voxel.Point{X: 0, Y: 0, Z: 3}},
		{Point: voxel.Point{X: 0, Y: 0, Z: 4}},
	}}

	stats := computeStatistics(line, g)
	if math.Abs(stats.Size-4) > 1e-9 {
		t.Fatalf("Size = %v, want 4 (four unit steps)", stats.Size)
	}
	if math.Abs(stats.Tortuosity) > 1e-9 {
		t.Fatalf("Tortuosity = %v, want 0 for a straight path", stats.Tortuosity)
	}
}

func TestComputeStatistics_EmptyLine(t *testing.T) {
	v := volume.New(3, 3, 3)
	g := voxelgraph.NewHashGraph(skeleton.Run(v))
	stats := computeStatistics(Centerline{}, g)
	if stats != (Statistics{}) {
		t.Fatalf("expected zero-value statistics for an empty line, got %+v", stats)
	}
}

func TestComputeStatistics_SingleNodeLineHasZeroSize(t *testing.T) {
	v := volume.New(3, 3, 3)
	for i := range v.Data {
		v.Data[i] = volume.Pore
	}
	g := voxelgraph.NewHashGraph(skeleton.Run(v))

	line := Centerline{Nodes: []Node{{Point: voxel.Point{X: 1, Y: 1, Z: 1}}}}
	stats := computeStatistics(line, g)
	if stats.Size != 0 {
		t.Fatalf("Size = %v, want 0 for a single-node line", stats.Size)
	}
	if stats.Tortuosity != 0 {
		t.Fatalf("Tortuosity = %v, want 0 when endpoint distance is zero", stats.Tortuosity)
	}
	want := math.Sqrt(g.PropertyValue(line.Nodes[0].Point))
	if math.Abs(stats.AvgProperty-want) > 1e-9 {
		t.Fatalf("AvgProperty = %v, want sqrt(property_value) = %v", stats.AvgProperty, want)
	}
}

func TestComputeStatistics_BentPathHasPositiveTortuosity(t *testing.T) {
	v := volume.New(3, 3, 3)
	for i := range v.Data {
		v.Data[i] = volume.Pore
	}
	g := voxelgraph.NewHashGraph(skeleton.Run(v))

	// An L-shaped path: two unit legs, endpoint distance sqrt(2) < 2.
	line := Centerline{Nodes: []Node{
		{Point: voxel.Point{X: 0, Y: 0, Z: 0}},
		{Point: voxel.Point{X: 1, Y: 0, Z: 0}},
		{Point: voxel.Point{X: 1, Y: 1, Z: 0}},
	}}
	stats := computeStatistics(line, g)
	if stats.Tortuosity <= 0 {
		t.Fatalf("Tortuosity = %v, want > 0 for a bent path", stats.Tortuosity)
	}
}
