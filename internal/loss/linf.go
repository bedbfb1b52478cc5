package loss

import (
	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// LInfNorm scores the single worst pixel deviation: the maximum
// absolute difference over the spatial axes, averaged over channels.
type LInfNorm struct{}

// NewLInfNorm creates an L-inf norm loss. It has no parameters.
func NewLInfNorm() *LInfNorm {
	return &LInfNorm{}
}

// Call returns one value per sample: mean over channels of the spatial
// maximum of |y_true - y_pred|.
func (l *LInfNorm) Call(yTrue, yPred *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkImagePair("linf", yTrue, yPred); err != nil {
		return nil, err
	}
	return tensor.MeanLast(tensor.MaxSpatial(tensor.Abs(tensor.Sub(yTrue, yPred)))), nil
}
