package centerline

import (
	"testing"

	"porenet/internal/voxel"
	"porenet/pkg/skeleton"
	"porenet/pkg/volume"
	"porenet/pkg/voxelgraph"
)

func TestDiscoverCenterpoints_SingleComponentOnAFullFace(t *testing.T) {
	v := volume.New(5, 5, 5)
	for i := range v.Data {
		v.Data[i] = volume.Pore
	}
	g := voxelgraph.NewHashGraph(skeleton.Run(v))

	pts := DiscoverCenterpoints(v, g, volume.FaceZMin)
	if len(pts) != 1 {
		t.Fatalf("got %d centerpoints, want 1 for a fully-pore face", len(pts))
	}
	// Every voxel on an outer face is itself a boundary voxel (distance
	// 0), so the single representative is arbitrary among ties, but it
	// must lie on the chosen face.
	if pts[0].Z != 0 {
		t.Fatalf("centerpoint %+v should lie on the z=0 face", pts[0])
	}
}

func TestDiscoverCenterpoints_TwoDisjointComponentsOnOneFace(t *testing.T) {
	v := volume.New(5, 5, 1)
	// Two separate pore columns touching the z=0 face, with a solid gap
	// between them so they form separate in-plane components.
	for y := 0; y < 5; y++ {
		v.Set(voxel.Point{X: 0, Y: y, Z: 0}, volume.Pore)
		v.Set(voxel.Point{X: 4, Y: y, Z: 0}, volume.Pore)
	}
	g := voxelgraph.NewHashGraph(skeleton.Run(v))

	pts := DiscoverCenterpoints(v, g, volume.FaceZMin)
	if len(pts) != 2 {
		t.Fatalf("got %d centerpoints, want 2 disjoint components", len(pts))
	}
}

func TestDiscoverCenterpoints_EmptyFaceYieldsNone(t *testing.T) {
	v := volume.New(3, 3, 3)
	g := voxelgraph.NewHashGraph(skeleton.Run(v))
	pts := DiscoverCenterpoints(v, g, volume.FaceXMin)
	if len(pts) != 0 {
		t.Fatalf("got %d centerpoints on an all-solid face, want 0", len(pts))
	}
}
