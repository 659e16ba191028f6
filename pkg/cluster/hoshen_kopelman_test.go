package cluster

import (
	"testing"

	"porenet/internal/voxel"
	"porenet/pkg/volume"
)

func fillAll(v *volume.Volume) {
	for i := range v.Data {
		v.Data[i] = volume.Pore
	}
}

func TestLabel_FullyPercolatingCube(t *testing.T) {
	v := volume.New(4, 4, 4)
	fillAll(v)

	result := Label(v)

	if result.TotalClustersFound != 1 {
		t.Fatalf("total clusters = %d, want 1", result.TotalClustersFound)
	}
	if result.PercolatingClusters != 1 {
		t.Fatalf("percolating clusters = %d, want 1", result.PercolatingClusters)
	}
	for _, b := range v.Data {
		if b != volume.Pore {
			t.Fatalf("expected every voxel to remain marked pore")
		}
	}
}

func TestLabel_NonPercolatingClusterIsRemoved(t *testing.T) {
	// A 7x7x7 cube with a single isolated pore voxel in the interior: its
	// bounding box is a single point, so it can never span the cube on
	// any axis and must be filtered out.
	v := volume.New(7, 7, 7)
	v.Set(voxel.Point{X: 3, Y: 3, Z: 3}, volume.Pore)

	result := Label(v)

	if result.TotalClustersFound != 1 {
		t.Fatalf("total clusters = %d, want 1", result.TotalClustersFound)
	}
	if result.PercolatingClusters != 0 {
		t.Fatalf("percolating clusters = %d, want 0", result.PercolatingClusters)
	}
	for _, b := range v.Data {
		if b != volume.Solid {
			t.Fatalf("expected every voxel to be cleared to solid after percolation filtering")
		}
	}
}

func TestLabel_PercolatingChannelSurvivesAlongsideIsolatedSpeck(t *testing.T) {
	v := volume.New(5, 5, 5)
	// A channel along the main diagonal: 26-connected, and its bounding box
	// spans every axis of the cube.
	for i := 0; i < 5; i++ {
		v.Set(voxel.Point{X: i, Y: i, Z: i}, volume.Pore)
	}
	// An isolated non-percolating speck, not 26-adjacent to the channel.
	v.Set(voxel.Point{X: 4, Y: 0, Z: 2}, volume.Pore)

	result := Label(v)

	if result.TotalClustersFound != 2 {
		t.Fatalf("total clusters = %d, want 2", result.TotalClustersFound)
	}
	if result.PercolatingClusters != 1 {
		t.Fatalf("percolating clusters = %d, want 1", result.PercolatingClusters)
	}
	for i := 0; i < 5; i++ {
		if v.At(voxel.Point{X: i, Y: i, Z: i}) != volume.Pore {
			t.Fatalf("channel voxel (%d,%d,%d) should have survived filtering", i, i, i)
		}
	}
	if v.At(voxel.Point{X: 4, Y: 0, Z: 2}) != volume.Solid {
		t.Fatalf("isolated speck should have been cleared")
	}
}

func TestLabel_TwoDisjointChannelsBothPercolate(t *testing.T) {
	v := volume.New(4, 4, 4)
	// Two bent channels, never 26-adjacent to each other, each with a
	// bounding box spanning every axis of the cube. Each runs along an
	// X-edge and then diagonally across the opposite YZ extent.
	channels := [][]voxel.Point{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0},
			{X: 3, Y: 1, Z: 1}, {X: 3, Y: 2, Z: 2}, {X: 3, Y: 3, Z: 3}},
		{{X: 3, Y: 3, Z: 0}, {X: 2, Y: 3, Z: 0}, {X: 1, Y: 3, Z: 0}, {X: 0, Y: 3, Z: 0},
			{X: 0, Y: 2, Z: 1}, {X: 0, Y: 1, Z: 2}, {X: 0, Y: 0, Z: 3}},
	}
	for _, ch := range channels {
		for _, p := range ch {
			v.Set(p, volume.Pore)
		}
	}

	result := Label(v)

	if result.TotalClustersFound != 2 {
		t.Fatalf("total clusters = %d, want 2", result.TotalClustersFound)
	}
	if result.PercolatingClusters != 2 {
		t.Fatalf("percolating clusters = %d, want 2", result.PercolatingClusters)
	}
}

func TestLabel_EmptyVolume(t *testing.T) {
	v := volume.New(3, 3, 3)
	result := Label(v)
	if result.TotalClustersFound != 0 || result.PercolatingClusters != 0 {
		t.Fatalf("expected zero clusters for an all-solid volume, got %+v", result)
	}
}
