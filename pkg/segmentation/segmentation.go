// Package segmentation turns a grayscale voxel volume into the binary
// pore/solid mask the core pipeline consumes. Only the two global
// thresholding methods the pipeline actually exercises are implemented:
// a caller-supplied manual threshold, and Otsu's histogram-variance
// maximization.
package segmentation

import (
	"fmt"

	"porenet/pkg/volume"
)

// Method names a segmentation method selectable from configuration.
type Method string

const (
	Manual Method = "manual"
	Otsu   Method = "otsu"
)

// Segment runs the named method against a grayscale volume and returns a
// new binary volume (volume.Pore/volume.Solid). threshold is only used by
// Manual; Otsu ignores it and computes its own.
func Segment(method Method, threshold byte, grayscale *volume.Volume) (*volume.Volume, error) {
	switch method {
	case Manual:
		return GlobalManual(threshold, grayscale), nil
	case Otsu:
		return GlobalOtsu(grayscale), nil
	default:
		return nil, fmt.Errorf("segmentation: unrecognised method %q", method)
	}
}

// GlobalManual marks every voxel strictly below threshold as pore and
// everything else as solid.
func GlobalManual(threshold byte, grayscale *volume.Volume) *volume.Volume {
	out := volume.New(grayscale.NX, grayscale.NY, grayscale.NZ)
	for i, val := range grayscale.Data {
		if val < threshold {
			out.Data[i] = volume.Pore
		} else {
			out.Data[i] = volume.Solid
		}
	}
	return out
}

// GlobalOtsu computes the single threshold that maximises inter-class
// variance over the volume's 256-bin intensity histogram, then segments
// with GlobalManual at that threshold.
func GlobalOtsu(grayscale *volume.Volume) *volume.Volume {
	threshold := otsuThreshold(grayscale)
	return GlobalManual(threshold, grayscale)
}

func otsuThreshold(grayscale *volume.Volume) byte {
	var histogram [256]int
	for _, val := range grayscale.Data {
		histogram[val]++
	}

	total := len(grayscale.Data)
	var sumAll float64
	for level, count := range histogram {
		sumAll += float64(level) * float64(count)
	}

	var (
		bestThreshold   byte
		bestVariance    float64
		weightBelow     float64
		sumBelow        float64
	)

	for level := 0; level < 256; level++ {
		weightBelow += float64(histogram[level])
		if weightBelow == 0 {
			continue
		}
		weightAbove := float64(total) - weightBelow
		if weightAbove == 0 {
			break
		}

		sumBelow += float64(level) * float64(histogram[level])
		meanBelow := sumBelow / weightBelow
		meanAbove := (sumAll - sumBelow) / weightAbove

		diff := meanBelow - meanAbove
		betweenClassVariance := weightBelow * weightAbove * diff * diff

		if betweenClassVariance > bestVariance {
			bestVariance = betweenClassVariance
			// GlobalManual keeps values strictly below the threshold, so
			// the threshold is the first level of the upper class. level
			// is at most 254 here, since weightAbove > 0.
			bestThreshold = byte(level + 1)
		}
	}
	return bestThreshold
}
