package loss

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// GaussianKernel builds a unit-sum 2-D Gaussian convolution kernel of
// shape (size, size, 1, 1) for depthwise use. The kernel is formed from
// 1-D offsets centered at zero: each offset is squared, scaled by
// -0.5/sigma^2, outer-summed into a 2-D quadratic bowl, and normalized
// with a numerically stable softmax over the flattened kernel, which is
// exactly the normalized exponential of the negative squared distance.
//
// size should be odd for a symmetric kernel; size < 1 or sigma <= 0
// fail with ErrInvalidParameter.
func GaussianKernel(size int, sigma float64) (*tensor.Tensor, error) {
	if size < 1 {
		return nil, fmt.Errorf("gaussian kernel: %w: filter size %d must be positive", ErrInvalidParameter, size)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("gaussian kernel: %w: filter sigma %v must be positive", ErrInvalidParameter, sigma)
	}

	coords := make([]float64, size)
	for i := range coords {
		offset := float64(i) - float64(size-1)/2
		coords[i] = offset * offset * (-0.5 / (sigma * sigma))
	}

	kernel := tensor.New(size, size, 1, 1)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			kernel.Data[row*size+col] = coords[row] + coords[col]
		}
	}

	// Stable softmax over the flattened kernel.
	max := floats.Max(kernel.Data)
	for i, v := range kernel.Data {
		kernel.Data[i] = math.Exp(v - max)
	}
	floats.Scale(1/floats.Sum(kernel.Data), kernel.Data)
	return kernel, nil
}
