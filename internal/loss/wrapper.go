package loss

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// maskProportion is the amount of mask propagation: 1.0 applies the
// mask channel as-is, 0.0 degrades to full coverage.
const maskProportion = 1.0

// registration is one entry of the loss chain.
type registration struct {
	loss        Loss
	weight      float64
	maskChannel int
	fixedShape  bool
}

// RegistrationOption adjusts a single loss registration.
type RegistrationOption func(*registration)

// FixedShape marks a registration whose loss requires its prediction
// input at an exactly known shape. The wrapper reshapes the masked
// prediction back to its full (N, H, W, 3) form before the call,
// guarding against shape erasure by upstream reshaping. SSIM-family
// losses need this.
func FixedShape() RegistrationOption {
	return func(r *registration) { r.fixedShape = true }
}

// LossWrapper chains multiple weighted loss functions over a single
// output, with optional per-loss masking from a ground-truth channel.
// Registrations are append-only and evaluated in registration order,
// which keeps the floating-point summation reproducible.
type LossWrapper struct {
	registrations []registration
}

// NewLossWrapper creates an empty loss chain.
func NewLossWrapper() *LossWrapper {
	return &LossWrapper{}
}

// AddLoss appends a loss to the chain. weight scales the loss's
// contribution. maskChannel names the channel of y_true holding the
// mask for this loss, or -1 for no mask.
func (w *LossWrapper) AddLoss(fn Loss, weight float64, maskChannel int, opts ...RegistrationOption) {
	reg := registration{loss: fn, weight: weight, maskChannel: maskChannel}
	for _, opt := range opts {
		opt(&reg)
	}
	slog.Debug("adding loss", "weight", weight, "mask_channel", maskChannel, "fixed_shape", reg.fixedShape)
	w.registrations = append(w.registrations, reg)
}

// Call evaluates every registered loss on the masked image pair and
// returns the weighted sum, one value per batch sample. Each sub-loss
// result is averaged over its non-batch axes before weighting. The
// first failing sub-loss aborts the whole call.
func (w *LossWrapper) Call(yTrue, yPred *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkImagePair("loss wrapper", yTrue, yPred); err != nil {
		return nil, err
	}

	total := tensor.New(yTrue.Dim(0))
	for i, reg := range w.registrations {
		slog.Debug("processing loss", "index", i, "weight", reg.weight, "mask_channel", reg.maskChannel)
		maskedTrue, maskedPred, err := applyMask(yTrue, yPred, reg.maskChannel)
		if err != nil {
			return nil, fmt.Errorf("loss %d: %w", i, err)
		}
		if reg.fixedShape {
			maskedPred = maskedPred.Reshape(maskedTrue.Shape...)
		}
		result, err := reg.loss.Call(maskedTrue, maskedPred)
		if err != nil {
			return nil, fmt.Errorf("loss %d: %w", i, err)
		}
		floats.AddScaled(total.Data, reg.weight, tensor.MeanPerSample(result).Data)
	}
	return total, nil
}

// applyMask prepares the image pair for one registration. Without a
// mask the first three channels pass through unmodified; otherwise the
// named y_true channel is broadcast to three channels, blended with a
// full-coverage mask at maskProportion, and multiplied into both
// three-channel images. The mask always comes from the ground truth,
// never the prediction.
func applyMask(yTrue, yPred *tensor.Tensor, maskChannel int) (*tensor.Tensor, *tensor.Tensor, error) {
	channels := yTrue.Dim(3)
	colorChannels := min(channels, 3)
	if maskChannel == -1 {
		return tensor.SliceChannels(yTrue, 0, colorChannels),
			tensor.SliceChannels(yPred, 0, colorChannels), nil
	}
	if maskChannel < 0 || maskChannel >= channels {
		return nil, nil, fmt.Errorf("%w: mask channel %d out of range for %d channels",
			ErrShapeMismatch, maskChannel, channels)
	}

	mask := tensor.RepeatChannel(tensor.SliceChannels(yTrue, maskChannel, maskChannel+1), colorChannels)
	mask = tensor.AddScalar(tensor.Scale(mask, maskProportion), 1-maskProportion)

	return tensor.Mul(tensor.SliceChannels(yTrue, 0, colorChannels), mask),
		tensor.Mul(tensor.SliceChannels(yPred, 0, colorChannels), mask), nil
}
