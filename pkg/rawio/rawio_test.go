package rawio

import (
	"os"
	"path/filepath"
	"testing"

	"porenet/pkg/config"
	"porenet/pkg/volume"
)

func TestReadVolume_MatchingShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volume.raw")
	data := make([]byte, 2*3*4)
	for i := range data {
		data[i] = byte(i % 2)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg := &config.Config{Shape: [3]uint64{2, 3, 4}, InputPath: path}
	v, err := ReadVolume(cfg)
	if err != nil {
		t.Fatalf("ReadVolume returned an error: %v", err)
	}
	if v.NX != 2 || v.NY != 3 || v.NZ != 4 {
		t.Fatalf("got shape (%d,%d,%d), want (2,3,4)", v.NX, v.NY, v.NZ)
	}
}

func TestReadVolume_ShapeMismatchIsAConfigurationError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volume.raw")
	if err := os.WriteFile(path, make([]byte, 10), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg := &config.Config{Shape: [3]uint64{2, 3, 4}, InputPath: path}
	if _, err := ReadVolume(cfg); err == nil {
		t.Fatalf("expected a shape-mismatch error")
	}
}

func TestReadVolume_MissingFile(t *testing.T) {
	cfg := &config.Config{Shape: [3]uint64{1, 1, 1}, InputPath: filepath.Join(t.TempDir(), "missing.raw")}
	if _, err := ReadVolume(cfg); err == nil {
		t.Fatalf("expected an error for a missing input file")
	}
}

func TestWriteVolume_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.raw")

	v := volume.New(2, 2, 2)
	for i := range v.Data {
		v.Data[i] = byte(i % 2)
	}
	if err := WriteVolume(path, v); err != nil {
		t.Fatalf("WriteVolume returned an error: %v", err)
	}

	cfg := &config.Config{Shape: [3]uint64{2, 2, 2}, InputPath: path}
	roundTripped, err := ReadVolume(cfg)
	if err != nil {
		t.Fatalf("ReadVolume after WriteVolume returned an error: %v", err)
	}
	for i := range v.Data {
		if roundTripped.Data[i] != v.Data[i] {
			t.Fatalf("byte %d: got %d, want %d", i, roundTripped.Data[i], v.Data[i])
		}
	}
}
