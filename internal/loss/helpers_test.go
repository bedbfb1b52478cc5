package loss

import (
	"math"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

func float64Near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// testImage builds a deterministic image batch with values in [0, 1],
// varied enough to exercise the windowed statistics.
func testImage(n, h, w, c int, seed float64) *tensor.Tensor {
	img := tensor.New(n, h, w, c)
	for i := range img.Data {
		img.Data[i] = 0.5 + 0.5*math.Sin(seed+0.37*float64(i))
	}
	return img
}
