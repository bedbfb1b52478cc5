package loss

import (
	"fmt"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// scharrCoeffs is a 5x5 modified Scharr kernel holding [dy, dx] filter
// pairs, laid out (kh, kw, 1, 2) for depthwise convolution.
var scharrCoeffs = []float64{
	0.0007, 0.0007, 0.0052, 0.0037, 0.0370, 0.0000, 0.0052, -0.0037, 0.0007, -0.0007,
	0.0037, 0.0052, 0.1187, 0.1187, 0.2589, 0.0000, 0.1187, -0.1187, 0.0037, -0.0052,
	0.0000, 0.0370, 0.0000, 0.2589, 0.0000, 0.0000, 0.0000, -0.2589, 0.0000, -0.0370,
	-0.0037, 0.0052, -0.1187, 0.1187, -0.2589, 0.0000, -0.1187, -0.1187, -0.0037, -0.0052,
	-0.0007, 0.0007, -0.0052, 0.0037, -0.0370, 0.0000, -0.0052, -0.0037, -0.0007, -0.0007,
}

// GMSD is the Gradient Magnitude Similarity Deviation loss: an edge
// based image quality metric with simpler calculations than MS-SSIM.
//
// References:
//
//	http://www4.comp.polyu.edu.hk/~cslzhang/IQA/GMSD/GMSD.htm
//	https://arxiv.org/ftp/arxiv/papers/1308/1308.3052.pdf
type GMSD struct {
	disabled bool
}

// GMSDOption adjusts a GMSD loss at construction.
type GMSDOption func(*GMSD)

// GMSDDisabled marks the loss unavailable. Calls fail with
// ErrFeatureUnavailable; intended for embedders whose execution backend
// lacks the static shape introspection the edge maps need.
func GMSDDisabled() GMSDOption {
	return func(g *GMSD) { g.disabled = true }
}

// NewGMSD creates a GMSD loss, enabled unless an option disables it.
func NewGMSD(opts ...GMSDOption) *GMSD {
	g := &GMSD{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Call returns the per-sample standard deviation of the gradient
// magnitude similarity map. Images must be at least 2x2.
func (g *GMSD) Call(yTrue, yPred *tensor.Tensor) (*tensor.Tensor, error) {
	if g.disabled {
		return nil, fmt.Errorf("gmsd: %w: disabled in this execution context, select a different loss",
			ErrFeatureUnavailable)
	}
	if err := checkImagePair("gmsd", yTrue, yPred); err != nil {
		return nil, err
	}
	if yTrue.Dim(1) < 3 || yTrue.Dim(2) < 3 {
		return nil, fmt.Errorf("gmsd: %w: %dx%d image too small to reflect-pad for the 5x5 filter",
			ErrShapeMismatch, yTrue.Dim(1), yTrue.Dim(2))
	}

	trueEdge := scharrEdges(yTrue)
	predEdge := scharrEdges(yPred)

	// Per-pixel gradient magnitude similarity.
	const epsilon = 0.0025
	upper := tensor.Scale(tensor.Mul(trueEdge, predEdge), 2)
	lower := tensor.Add(tensor.Square(trueEdge), tensor.Square(predEdge))
	gms := tensor.Div(tensor.AddScalar(upper, epsilon), tensor.AddScalar(lower, epsilon))

	return tensor.StdPerSample(gms), nil
}

// scharrEdges computes per-channel Scharr edge responses. The image is
// reflect-padded by 2 on each spatial edge so the output keeps the
// input's spatial size; dy and dx responses for channel c land on
// output channels 2c and 2c+1.
func scharrEdges(image *tensor.Tensor) *tensor.Tensor {
	kernel := tensor.TileChannels(tensor.NewFrom(scharrCoeffs, 5, 5, 1, 2), image.Dim(3))
	padded := tensor.ReflectPad2D(image, 2, 2, 2, 2)
	return tensor.DepthwiseConv2D(padded, kernel)
}
