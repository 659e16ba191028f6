package segmentation

import (
	"testing"

	"porenet/pkg/volume"
)

func grayscaleVolume(values ...byte) *volume.Volume {
	v := volume.New(len(values), 1, 1)
	copy(v.Data, values)
	return v
}

func TestGlobalManual_ThresholdsCorrectly(t *testing.T) {
	v := grayscaleVolume(10, 50, 100, 200)
	out := GlobalManual(100, v)

	want := []byte{volume.Pore, volume.Pore, volume.Solid, volume.Solid}
	for i, w := range want {
		if out.Data[i] != w {
			t.Fatalf("voxel %d: got %d, want %d", i, out.Data[i], w)
		}
	}
}

func TestGlobalOtsu_SeparatesTwoClearModes(t *testing.T) {
	// A bimodal histogram: a cluster near 20 and a cluster near 220.
	var values []byte
	for i := 0; i < 50; i++ {
		values = append(values, 20)
	}
	for i := 0; i < 50; i++ {
		values = append(values, 220)
	}
	v := grayscaleVolume(values...)

	out := GlobalOtsu(v)
	for i := 0; i < 50; i++ {
		if out.Data[i] != volume.Pore {
			t.Fatalf("low-intensity voxel %d should be classified pore, got %d", i, out.Data[i])
		}
	}
	for i := 50; i < 100; i++ {
		if out.Data[i] != volume.Solid {
			t.Fatalf("high-intensity voxel %d should be classified solid, got %d", i, out.Data[i])
		}
	}
}

func TestSegment_DispatchesToTheNamedMethod(t *testing.T) {
	v := grayscaleVolume(10, 200)

	manual, err := Segment(Manual, 100, v)
	if err != nil {
		t.Fatalf("Segment(Manual) returned an error: %v", err)
	}
	if manual.Data[0] != volume.Pore || manual.Data[1] != volume.Solid {
		t.Fatalf("Segment(Manual) did not match GlobalManual's output")
	}

	if _, err := Segment(Method("bogus"), 0, v); err == nil {
		t.Fatalf("expected an error for an unrecognised method")
	}
}
