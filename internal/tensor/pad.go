package tensor

import "fmt"

// ReflectPad2D pads the spatial axes of a rank-4 NHWC tensor by
// mirroring interior pixels across each edge. The edge pixel itself is
// not repeated: with top padding 2, output rows 0 and 1 are copies of
// input rows 2 and 1. Padding must be smaller than the corresponding
// spatial dimension.
func ReflectPad2D(t *Tensor, top, bottom, left, right int) *Tensor {
	t.check4("ReflectPad2D")
	n, h, w, c := t.Shape[0], t.Shape[1], t.Shape[2], t.Shape[3]
	if top >= h || bottom >= h || left >= w || right >= w {
		panic(fmt.Sprintf("tensor: reflect padding (%d, %d, %d, %d) too large for %dx%d image",
			top, bottom, left, right, h, w))
	}

	outH := h + top + bottom
	outW := w + left + right
	out := New(n, outH, outW, c)
	for b := 0; b < n; b++ {
		for oh := 0; oh < outH; oh++ {
			ih := reflectIndex(oh-top, h)
			for ow := 0; ow < outW; ow++ {
				iw := reflectIndex(ow-left, w)
				srcBase := t.index4(b, ih, iw, 0)
				dstBase := out.index4(b, oh, ow, 0)
				copy(out.Data[dstBase:dstBase+c], t.Data[srcBase:srcBase+c])
			}
		}
	}
	return out
}

// reflectIndex maps an out-of-range coordinate back into [0, size) by
// mirroring without repeating the border element.
func reflectIndex(i, size int) int {
	if i < 0 {
		return -i
	}
	if i >= size {
		return 2*size - 2 - i
	}
	return i
}
