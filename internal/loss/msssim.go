package loss

import (
	"fmt"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// defaultPowerFactors are the per-scale weights from the original
// MS-SSIM paper. Index 0 weights the unscaled resolution; each further
// index weights one more 2x downsampling.
var defaultPowerFactors = []float64{0.0448, 0.2856, 0.3001, 0.2363, 0.1333}

// MSSSIM is the Multiscale Structural Similarity loss. The image pair
// is repeatedly halved with 2x2 average pooling and the per-scale
// contrast terms are recombined under the configured power factors.
//
// Instances are immutable: when a scale pyramid bottoms out below the
// configured filter size, the window is rebuilt for that call only, so
// one instance may serve differently sized batches concurrently.
type MSSSIM struct {
	cfg          ssimConfig
	powerFactors []float64
	kernel       *tensor.Tensor
}

// NewMSSSIM creates an MS-SSIM loss. powerFactors may be nil for the
// original paper's five weights; an empty slice is rejected.
func NewMSSSIM(powerFactors []float64, opts ...SSIMOption) (*MSSSIM, error) {
	cfg := defaultSSIMConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if powerFactors == nil {
		powerFactors = defaultPowerFactors
	}
	if len(powerFactors) == 0 {
		return nil, fmt.Errorf("ms-ssim: %w: power factors must not be empty", ErrInvalidParameter)
	}
	kernel, err := GaussianKernel(cfg.filterSize, cfg.filterSigma)
	if err != nil {
		return nil, fmt.Errorf("ms-ssim: %w", err)
	}
	return &MSSSIM{
		cfg:          cfg,
		powerFactors: append([]float64(nil), powerFactors...),
		kernel:       kernel,
	}, nil
}

// smallestScale returns the spatial size after halving size once per
// downsampled scale (integer floor division).
func (m *MSSSIM) smallestScale(size int) int {
	for i := 0; i < len(m.powerFactors)-1; i++ {
		size /= 2
	}
	return size
}

// Call computes mean(1 - ms_ssim) over channels, one value per sample.
// With a single power factor no downsampling occurs and the result
// reduces to mean(1 - ssim^weight).
func (m *MSSSIM) Call(yTrue, yPred *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkImagePair("ms-ssim", yTrue, yPred); err != nil {
		return nil, err
	}

	// The filter cannot be larger than the smallest scale of the
	// pyramid. Resolve the effective window size per call instead of
	// mutating the configured one.
	smallest := m.smallestScale(yTrue.Dim(1))
	if smallest < 1 {
		return nil, fmt.Errorf("ms-ssim: %w: %d scales reduce a %dx%d image below one pixel",
			ErrInvalidParameter, len(m.powerFactors), yTrue.Dim(1), yTrue.Dim(2))
	}
	kernel := m.kernel
	if smallest < m.cfg.filterSize {
		var err error
		kernel, err = GaussianKernel(smallest, m.cfg.filterSigma)
		if err != nil {
			return nil, fmt.Errorf("ms-ssim: %w", err)
		}
	}

	scales := len(m.powerFactors)
	terms := make([]*tensor.Tensor, 0, scales)
	curTrue, curPred := yTrue, yPred
	for idx := 0; idx < scales; idx++ {
		if idx > 0 {
			curTrue = shrinkHalf(curTrue)
			curPred = shrinkHalf(curPred)
		}
		ssim, contrast := windowedSSIM(curTrue, curPred, kernel, m.cfg.c1(), m.cfg.c2())
		if idx < scales-1 {
			terms = append(terms, tensor.ReLU(contrast))
		} else {
			terms = append(terms, tensor.ReLU(ssim))
		}
	}

	// Weighted geometric combination: each scale raised to its power
	// factor, multiplied together with a plain fold.
	msSSIM := tensor.PowScalar(terms[0], m.powerFactors[0])
	for idx := 1; idx < scales; idx++ {
		msSSIM = tensor.Mul(msSSIM, tensor.PowScalar(terms[idx], m.powerFactors[idx]))
	}

	return tensor.MeanLast(tensor.AddScalar(tensor.Scale(msSSIM, -1), 1)), nil
}

// shrinkHalf halves both spatial dimensions with 2x2 stride-2 average
// pooling, reflect-padding the trailing edges first when a dimension
// is odd.
func shrinkHalf(t *tensor.Tensor) *tensor.Tensor {
	if t.Dim(1)%2 != 0 || t.Dim(2)%2 != 0 {
		t = tensor.ReflectPad2D(t, 0, 1, 0, 1)
	}
	return tensor.AvgPool2D(t, 2, 2)
}
