// Package loss provides the perceptual and pixel-space image similarity
// loss functions used to score reconstructed faces against their ground
// truth, and a weighted, maskable aggregator that combines them into one
// value per batch sample.
//
// All losses operate on channels-last (N, H, W, C) tensors with values
// conventionally in [0, 1], and are pure functions of their inputs.
package loss

import (
	"errors"
	"fmt"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// Sentinel errors. Every failure returned by this package wraps exactly
// one of these together with the name of the component that detected it.
var (
	// ErrShapeMismatch reports ground truth and prediction tensors of
	// differing shape, or a mask channel index outside the reference
	// tensor's channel range.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidParameter reports a configuration value outside a
	// component's domain, such as a non-positive filter size or a
	// Generalized loss alpha at one of its singular points.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrFeatureUnavailable reports a loss that has been disabled for
	// the current execution context.
	ErrFeatureUnavailable = errors.New("feature unavailable")
)

// Loss computes a per-sample loss tensor for a batch of image pairs.
// Implementations must not retain or modify their inputs. The result
// keeps the batch as its leading axis; any trailing axes are averaged
// away by the aggregator.
type Loss interface {
	Call(yTrue, yPred *tensor.Tensor) (*tensor.Tensor, error)
}

// checkImagePair validates the shared entry contract of every loss:
// both tensors rank 4 and identically shaped.
func checkImagePair(name string, yTrue, yPred *tensor.Tensor) error {
	if yTrue.Rank() != 4 || yPred.Rank() != 4 {
		return fmt.Errorf("%s: %w: want rank-4 NHWC tensors, got ranks %d and %d",
			name, ErrShapeMismatch, yTrue.Rank(), yPred.Rank())
	}
	if !yTrue.SameShape(yPred) {
		return fmt.Errorf("%s: %w: y_true %v vs y_pred %v",
			name, ErrShapeMismatch, yTrue.Shape, yPred.Shape)
	}
	return nil
}
