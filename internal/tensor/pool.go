package tensor

import "fmt"

// AvgPool2D downsamples a rank-4 NHWC tensor by averaging over
// kernel x kernel windows moved by stride, with valid padding: only
// fully covered windows contribute, so the output spatial size is
// (dim - kernel)/stride + 1.
func AvgPool2D(t *Tensor, kernel, stride int) *Tensor {
	t.check4("AvgPool2D")
	if kernel < 1 || stride < 1 {
		panic(fmt.Sprintf("tensor: AvgPool2D kernel %d stride %d must be positive", kernel, stride))
	}
	n, h, w, c := t.Shape[0], t.Shape[1], t.Shape[2], t.Shape[3]
	if kernel > h || kernel > w {
		panic(fmt.Sprintf("tensor: AvgPool2D kernel %d larger than %dx%d image", kernel, h, w))
	}

	outH := (h-kernel)/stride + 1
	outW := (w-kernel)/stride + 1
	out := New(n, outH, outW, c)
	norm := 1.0 / float64(kernel*kernel)

	for b := 0; b < n; b++ {
		for oh := 0; oh < outH; oh++ {
			for ow := 0; ow < outW; ow++ {
				dstBase := out.index4(b, oh, ow, 0)
				for kh := 0; kh < kernel; kh++ {
					srcBase := t.index4(b, oh*stride+kh, ow*stride, 0)
					for kw := 0; kw < kernel; kw++ {
						for ch := 0; ch < c; ch++ {
							out.Data[dstBase+ch] += t.Data[srcBase+kw*c+ch]
						}
					}
				}
				for ch := 0; ch < c; ch++ {
					out.Data[dstBase+ch] *= norm
				}
			}
		}
	}
	return out
}
