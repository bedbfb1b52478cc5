package loss

import (
	"fmt"
	"math"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// Generalized is Barron's continuously parameterized robust loss family
// (A More General Robust Loss Function, arxiv 1701.03077). The shape
// parameter alpha interpolates between L1-like behavior near 0 and
// L2/MSE behavior near 2; its primary benefit here is a smooth,
// differentiable version of L1 loss.
//
// Example: alpha=1.0, beta=1.0/255 gives a smooth L1/MAE loss;
// alpha=1.9999 (the limit toward 2), beta=1.0/255 gives L2/RMSE loss.
type Generalized struct {
	alpha float64
	beta  float64
}

// NewGeneralized creates a Generalized loss. alpha is the penalty shape:
// larger values weight large deviations more heavily. beta scales the
// loss to the input range (for inputs of mean 1e-4 versus 256). The
// formula divides by both alpha and |2 - alpha|, so alpha exactly 0 or
// exactly 2 fails with ErrInvalidParameter; use a nearby value instead.
func NewGeneralized(alpha, beta float64) (*Generalized, error) {
	if alpha == 0 || alpha == 2 {
		return nil, fmt.Errorf("generalized: %w: alpha must not be exactly 0 or 2, got %v",
			ErrInvalidParameter, alpha)
	}
	return &Generalized{alpha: alpha, beta: beta}, nil
}

// Call evaluates the loss of y_pred - y_true, averaged over the channel
// axis and scaled by beta, producing an (N, H, W) tensor.
func (g *Generalized) Call(yTrue, yPred *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkImagePair("generalized", yTrue, yPred); err != nil {
		return nil, err
	}

	shape := math.Abs(2 - g.alpha)
	out := tensor.New(yTrue.Shape...)
	for i := range out.Data {
		d := (yPred.Data[i] - yTrue.Data[i]) / g.beta
		out.Data[i] = (shape / g.alpha) * (math.Pow(d*d/shape+1, g.alpha/2) - 1)
	}
	return tensor.Scale(tensor.MeanLast(out), g.beta), nil
}
