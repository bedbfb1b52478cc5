package tensor

import "image"

// FromImage converts a decoded image into a (1, H, W, 3) tensor with
// RGB values scaled to [0, 1]. Alpha is dropped.
func FromImage(img image.Image) *Tensor {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()
	out := New(1, h, w, 3)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			out.Data[i] = float64(r) / 0xffff
			out.Data[i+1] = float64(g) / 0xffff
			out.Data[i+2] = float64(b) / 0xffff
			i += 3
		}
	}
	return out
}
