// Package faceswap re-exports the image similarity loss API for easier
// access.
package faceswap

import (
	"github.com/dn0418/Deepfake-FaceSwap/internal/align"
	"github.com/dn0418/Deepfake-FaceSwap/internal/loss"
	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// Re-export common types for easier access
type (
	Tensor        = tensor.Tensor
	Loss          = loss.Loss
	LossWrapper   = loss.LossWrapper
	Aligner       = align.Aligner
	PosePredictor = align.PosePredictor
)

// Error taxonomy
var (
	ErrShapeMismatch      = loss.ErrShapeMismatch
	ErrInvalidParameter   = loss.ErrInvalidParameter
	ErrFeatureUnavailable = loss.ErrFeatureUnavailable
)

// Tensors
func NewTensor(shape ...int) *Tensor {
	return tensor.New(shape...)
}

func TensorFrom(data []float64, shape ...int) *Tensor {
	return tensor.NewFrom(data, shape...)
}

// Losses
func DSSIM(opts ...loss.SSIMOption) (*loss.DSSIM, error) {
	return loss.NewDSSIM(opts...)
}

func MSSSIM(powerFactors []float64, opts ...loss.SSIMOption) (*loss.MSSSIM, error) {
	return loss.NewMSSSIM(powerFactors, opts...)
}

func Generalized(alpha, beta float64) (*loss.Generalized, error) {
	return loss.NewGeneralized(alpha, beta)
}

func LInfNorm() *loss.LInfNorm {
	return loss.NewLInfNorm()
}

func Gradient() *loss.Gradient {
	return loss.NewGradient()
}

func GMSD(opts ...loss.GMSDOption) *loss.GMSD {
	return loss.NewGMSD(opts...)
}

// Aggregation
func NewLossWrapper() *LossWrapper {
	return loss.NewLossWrapper()
}

// FixedShape marks a wrapper registration whose loss needs a fully
// known prediction shape (the SSIM family).
func FixedShape() loss.RegistrationOption {
	return loss.FixedShape()
}

// Alignment
func NewAligner(model PosePredictor) *Aligner {
	return align.NewAligner(model)
}
