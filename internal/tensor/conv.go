package tensor

import "fmt"

// DepthwiseConv2D convolves a rank-4 NHWC image batch with a
// (kh, kw, C, M) kernel, stride 1, valid padding. Each input channel is
// convolved independently with its own M filters; channels are never
// mixed. The output has shape (N, H-kh+1, W-kw+1, C*M) with the M
// filter responses for channel c stored at channels c*M..c*M+M-1.
//
// Convolution here is the cross-correlation form used by the numeric
// backends this mirrors: the kernel is not flipped.
func DepthwiseConv2D(t, kernel *Tensor) *Tensor {
	t.check4("DepthwiseConv2D")
	kernel.check4("DepthwiseConv2D kernel")
	n, h, w, c := t.Shape[0], t.Shape[1], t.Shape[2], t.Shape[3]
	kh, kw, kc, m := kernel.Shape[0], kernel.Shape[1], kernel.Shape[2], kernel.Shape[3]
	if kc != c {
		panic(fmt.Sprintf("tensor: DepthwiseConv2D kernel has %d channels, image has %d", kc, c))
	}
	if kh > h || kw > w {
		panic(fmt.Sprintf("tensor: DepthwiseConv2D kernel %dx%d larger than %dx%d image", kh, kw, h, w))
	}

	outH := h - kh + 1
	outW := w - kw + 1
	outC := c * m
	out := New(n, outH, outW, outC)

	for b := 0; b < n; b++ {
		for oh := 0; oh < outH; oh++ {
			for ow := 0; ow < outW; ow++ {
				dstBase := out.index4(b, oh, ow, 0)
				for kr := 0; kr < kh; kr++ {
					srcRow := t.index4(b, oh+kr, ow, 0)
					kerRow := kr * kw * c * m
					for kq := 0; kq < kw; kq++ {
						srcBase := srcRow + kq*c
						kerBase := kerRow + kq*c*m
						for ch := 0; ch < c; ch++ {
							v := t.Data[srcBase+ch]
							for f := 0; f < m; f++ {
								out.Data[dstBase+ch*m+f] += v * kernel.Data[kerBase+ch*m+f]
							}
						}
					}
				}
			}
		}
	}
	return out
}

// TileChannels repeats a (kh, kw, 1, M) kernel across the channel axis
// so it can be applied depthwise to a C-channel image.
func TileChannels(kernel *Tensor, channels int) *Tensor {
	kernel.check4("TileChannels")
	if kernel.Shape[2] != 1 {
		panic(fmt.Sprintf("tensor: TileChannels requires a single-channel kernel, got %d", kernel.Shape[2]))
	}
	kh, kw, m := kernel.Shape[0], kernel.Shape[1], kernel.Shape[3]
	out := New(kh, kw, channels, m)
	for i := 0; i < kh*kw; i++ {
		src := kernel.Data[i*m : (i+1)*m]
		for c := 0; c < channels; c++ {
			copy(out.Data[(i*channels+c)*m:(i*channels+c+1)*m], src)
		}
	}
	return out
}
