package loss

import (
	"fmt"

	"github.com/dn0418/Deepfake-FaceSwap/internal/tensor"
)

// ssimConfig holds the parameters shared by the SSIM family.
type ssimConfig struct {
	k1          float64
	k2          float64
	filterSize  int
	filterSigma float64
	maxValue    float64
}

func defaultSSIMConfig() ssimConfig {
	return ssimConfig{
		k1:          0.01,
		k2:          0.03,
		filterSize:  11,
		filterSigma: 1.5,
		maxValue:    1.0,
	}
}

// c1 is the luminance stabilizing constant (k1 * max_value)^2.
func (c ssimConfig) c1() float64 { return (c.k1 * c.maxValue) * (c.k1 * c.maxValue) }

// c2 is the contrast stabilizing constant (k2 * max_value)^2.
func (c ssimConfig) c2() float64 { return (c.k2 * c.maxValue) * (c.k2 * c.maxValue) }

// SSIMOption adjusts an SSIM-family loss at construction.
type SSIMOption func(*ssimConfig)

// WithK1 sets the luminance stabilization parameter. Default 0.01.
func WithK1(k1 float64) SSIMOption { return func(c *ssimConfig) { c.k1 = k1 } }

// WithK2 sets the contrast stabilization parameter. Default 0.03.
func WithK2(k2 float64) SSIMOption { return func(c *ssimConfig) { c.k2 = k2 } }

// WithFilterSize sets the Gaussian window size. Default 11.
func WithFilterSize(size int) SSIMOption { return func(c *ssimConfig) { c.filterSize = size } }

// WithFilterSigma sets the Gaussian window width. Default 1.5.
func WithFilterSigma(sigma float64) SSIMOption { return func(c *ssimConfig) { c.filterSigma = sigma } }

// WithMaxValue sets the maximum value of the input range. Default 1.0.
func WithMaxValue(max float64) SSIMOption { return func(c *ssimConfig) { c.maxValue = max } }

// DSSIM is the Difference of Structural Similarity loss. Channels last
// only; input images are assumed square and all the same size.
//
// A regularization term such as an L2 loss should be used alongside it.
type DSSIM struct {
	cfg    ssimConfig
	kernel *tensor.Tensor
}

// NewDSSIM creates a DSSIM loss. The Gaussian window is built once here
// and reused across calls.
func NewDSSIM(opts ...SSIMOption) (*DSSIM, error) {
	cfg := defaultSSIMConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	kernel, err := GaussianKernel(cfg.filterSize, cfg.filterSigma)
	if err != nil {
		return nil, fmt.Errorf("dssim: %w", err)
	}
	return &DSSIM{cfg: cfg, kernel: kernel}, nil
}

// Call computes mean((1 - ssim) / 2) over channels, one value per
// sample. 0 means identical; larger is less similar.
func (d *DSSIM) Call(yTrue, yPred *tensor.Tensor) (*tensor.Tensor, error) {
	if err := checkImagePair("dssim", yTrue, yPred); err != nil {
		return nil, err
	}
	if yTrue.Dim(1) < d.cfg.filterSize || yTrue.Dim(2) < d.cfg.filterSize {
		return nil, fmt.Errorf("dssim: %w: %dx%d image smaller than %d filter",
			ErrShapeMismatch, yTrue.Dim(1), yTrue.Dim(2), d.cfg.filterSize)
	}

	ssim, _ := windowedSSIM(yTrue, yPred, d.kernel, d.cfg.c1(), d.cfg.c2())
	return tensor.MeanLast(tensor.Scale(tensor.AddScalar(tensor.Scale(ssim, -1), 1), 0.5)), nil
}

// windowedSSIM computes the per-window structural similarity of a batch
// of image pairs and reduces it over the spatial axes.
//
// kernel is a single-filter (kh, kw, 1, 1) window; it is tiled across
// the image's channels before the depthwise convolutions. Both returned
// tensors have shape (N, C): the mean ssim map (luminance * contrast)
// and the mean contrast-structure map.
func windowedSSIM(yTrue, yPred, kernel *tensor.Tensor, c1, c2 float64) (ssim, contrast *tensor.Tensor) {
	channels := yTrue.Dim(3)
	tiled := tensor.TileChannels(kernel, channels)

	// Luminance is (2*mu_t*mu_p + c1) / (mu_t^2 + mu_p^2 + c1) with the
	// local means taken over the Gaussian window.
	meanTrue := tensor.DepthwiseConv2D(yTrue, tiled)
	meanPred := tensor.DepthwiseConv2D(yPred, tiled)
	numLum := tensor.Scale(tensor.Mul(meanTrue, meanPred), 2)
	denLum := tensor.Add(tensor.Square(meanTrue), tensor.Square(meanPred))
	luminance := tensor.Div(tensor.AddScalar(numLum, c1), tensor.AddScalar(denLum, c1))

	// Contrast-structure is (2*cov_tp + c2) / (cov_tt + cov_pp + c2).
	numCon := tensor.Scale(tensor.DepthwiseConv2D(tensor.Mul(yTrue, yPred), tiled), 2)
	denCon := tensor.DepthwiseConv2D(tensor.Add(tensor.Square(yTrue), tensor.Square(yPred)), tiled)
	contrastMap := tensor.Div(
		tensor.AddScalar(tensor.Sub(numCon, numLum), c2),
		tensor.AddScalar(tensor.Sub(denCon, denLum), c2))

	ssim = tensor.MeanSpatial(tensor.Mul(luminance, contrastMap))
	contrast = tensor.MeanSpatial(contrastMap)
	return ssim, contrast
}
